package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/trandrew/microblog/internal/common/db"
	commonerrors "github.com/trandrew/microblog/internal/common/errors"
	userdomain "github.com/trandrew/microblog/internal/user/domain"
)

// Repository owns the directed follow edges. Uniqueness of an edge is
// enforced by the follows primary key, so racing Follow calls settle in
// the store, not with in-process locks.
type Repository interface {
	Follow(ctx context.Context, follower, followed userdomain.ID) (bool, error)
	Unfollow(ctx context.Context, follower, followed userdomain.ID) (bool, error)
	IsFollowing(ctx context.Context, follower, followed userdomain.ID) (bool, error)
	FollowerCount(ctx context.Context, user userdomain.ID) (int, error)
	FollowingCount(ctx context.Context, user userdomain.ID) (int, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Follow inserts the edge, reporting whether it was created. An existing
// edge is a no-op, not an error.
func (r *PgRepository) Follow(ctx context.Context, follower, followed userdomain.ID) (bool, error) {
	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		`INSERT INTO follows (follower_id, followed_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		int64(follower),
		int64(followed),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" {
			db.MeasureQueryDuration("create follow edge", start)
			return false, commonerrors.ErrSelfFollow
		}
		return false, db.HandleExecError(err, "create follow edge", start)
	}

	db.MeasureQueryDuration("create follow edge", start)
	return tag.RowsAffected() > 0, nil
}

func (r *PgRepository) Unfollow(ctx context.Context, follower, followed userdomain.ID) (bool, error) {
	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`,
		int64(follower),
		int64(followed),
	)
	if err != nil {
		return false, db.HandleExecError(err, "delete follow edge", start)
	}

	db.MeasureQueryDuration("delete follow edge", start)
	return tag.RowsAffected() > 0, nil
}

func (r *PgRepository) IsFollowing(ctx context.Context, follower, followed userdomain.ID) (bool, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT EXISTS (
			SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2
		)`,
		int64(follower),
		int64(followed),
	)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, db.HandleExecError(err, "check follow edge", start)
	}

	db.MeasureQueryDuration("check follow edge", start)
	return exists, nil
}

func (r *PgRepository) FollowerCount(ctx context.Context, user userdomain.ID) (int, error) {
	return r.count(ctx, "count followers",
		`SELECT count(*) FROM follows WHERE followed_id = $1`, user)
}

func (r *PgRepository) FollowingCount(ctx context.Context, user userdomain.ID) (int, error) {
	return r.count(ctx, "count following",
		`SELECT count(*) FROM follows WHERE follower_id = $1`, user)
}

func (r *PgRepository) count(ctx context.Context, operation, query string, user userdomain.ID) (int, error) {
	start := time.Now()
	row := r.pool.QueryRow(ctx, query, int64(user))

	var n int
	if err := row.Scan(&n); err != nil {
		return 0, db.HandleExecError(err, operation, start)
	}

	db.MeasureQueryDuration(operation, start)
	return n, nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/trandrew/microblog/internal/common/db"
	commonerrors "github.com/trandrew/microblog/internal/common/errors"
	"github.com/trandrew/microblog/internal/user/domain"
)

type Repository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateProfile(ctx context.Context, id domain.ID, username, aboutMe string) error
	UpdateLastSeen(ctx context.Context, id domain.ID, seenAt time.Time) error
	UpdateLastSeenBatch(ctx context.Context, ids []domain.ID, seenAt time.Time) error
	Delete(ctx context.Context, id domain.ID) error
	TxManager() TxManager
}

var ErrUserNotFound = commonerrors.ErrUserNotFound

const userColumns = `id, username, email, password_hash, about_me, last_seen, created_at`

type PgRepository struct {
	pool  *pgxpool.Pool
	txMgr *PgTxManager
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{
		pool:  pool,
		txMgr: NewPgTxManager(pool),
	}
}

func (r *PgRepository) TxManager() TxManager {
	return r.txMgr
}

func (r *PgRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO users (username, email, password_hash, about_me)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, last_seen, created_at`,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.AboutMe,
	)

	err := row.Scan(&user.ID, &user.LastSeen, &user.CreatedAt)
	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			db.MeasureQueryDuration("create user", start)
			return domain.User{}, dup
		}
		return domain.User{}, db.HandleExecError(err, "create user", start)
	}

	db.MeasureQueryDuration("create user", start)
	return user, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	return r.findBy(ctx, "find user by id", `WHERE id = $1`, int64(id))
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findBy(ctx, "find user by username", `WHERE username = $1`, username)
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findBy(ctx, "find user by email", `WHERE email = $1`, email)
}

func (r *PgRepository) findBy(ctx context.Context, operation, where string, arg interface{}) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users `+where, arg)

	user, err := scanUser(row)
	if err != nil {
		return domain.User{}, db.HandleQueryError(err, ErrUserNotFound, operation, start)
	}

	db.MeasureQueryDuration(operation, start)
	return user, nil
}

func (r *PgRepository) UpdateProfile(ctx context.Context, id domain.ID, username, aboutMe string) error {
	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE users SET username = $2, about_me = $3 WHERE id = $1`,
		int64(id),
		username,
		aboutMe,
	)
	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			db.MeasureQueryDuration("update user profile", start)
			return dup
		}
		return db.HandleExecError(err, "update user profile", start)
	}
	if tag.RowsAffected() == 0 {
		db.MeasureQueryDuration("update user profile", start)
		return ErrUserNotFound
	}

	db.MeasureQueryDuration("update user profile", start)
	return nil
}

// UpdateLastSeen uses GREATEST so last_seen only ever advances, even when
// writes from concurrent interactions land out of order.
func (r *PgRepository) UpdateLastSeen(ctx context.Context, id domain.ID, seenAt time.Time) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`UPDATE users SET last_seen = GREATEST(last_seen, $2) WHERE id = $1`,
		int64(id),
		seenAt,
	)
	return db.HandleExecError(err, "update user last_seen", start)
}

func (r *PgRepository) UpdateLastSeenBatch(ctx context.Context, ids []domain.ID, seenAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]int64, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, int64(id))
	}

	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`UPDATE users SET last_seen = GREATEST(last_seen, $2) WHERE id = ANY($1)`,
		raw,
		seenAt,
	)
	return db.HandleExecError(err, "batch update user last_seen", start)
}

// Delete removes the user row; posts and follow edges go with it via
// ON DELETE CASCADE.
func (r *PgRepository) Delete(ctx context.Context, id domain.ID) error {
	start := time.Now()
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, int64(id))
	if err != nil {
		return db.HandleExecError(err, "delete user", start)
	}
	if tag.RowsAffected() == 0 {
		db.MeasureQueryDuration("delete user", start)
		return ErrUserNotFound
	}

	db.MeasureQueryDuration("delete user", start)
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.AboutMe,
		&user.LastSeen,
		&user.CreatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	if pgErr.ConstraintName == "users_email_key" {
		return commonerrors.ErrEmailAlreadyExists
	}
	return commonerrors.ErrUsernameAlreadyExists
}

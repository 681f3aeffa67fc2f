package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/trandrew/microblog/internal/common/db"
	"github.com/trandrew/microblog/internal/post/domain"
	userdomain "github.com/trandrew/microblog/internal/user/domain"
)

type Repository interface {
	Create(ctx context.Context, post domain.Post) (domain.Post, error)
	ListByAuthor(ctx context.Context, authorID userdomain.ID, req domain.PageRequest) (domain.Page, error)
	ListAll(ctx context.Context, req domain.PageRequest) (domain.Page, error)
	ListFeed(ctx context.Context, userID userdomain.ID, req domain.PageRequest) (domain.Page, error)
}

// Every listing shares one ORDER BY: created_at descending with id as the
// deterministic tie-break, so pagination never duplicates or skips a row
// when timestamps collide.
const postOrder = `ORDER BY created_at DESC, id DESC`

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, post domain.Post) (domain.Post, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO posts (author_id, body, created_at) VALUES ($1, $2, $3) RETURNING id`,
		int64(post.AuthorID),
		post.Body,
		post.CreatedAt,
	)

	if err := row.Scan(&post.ID); err != nil {
		return domain.Post{}, db.HandleExecError(err, "create post", start)
	}

	db.MeasureQueryDuration("create post", start)
	return post, nil
}

func (r *PgRepository) ListByAuthor(ctx context.Context, authorID userdomain.ID, req domain.PageRequest) (domain.Page, error) {
	query := `SELECT id, author_id, body, created_at FROM posts
		 WHERE author_id = $1 ` + postOrder + ` LIMIT $2 OFFSET $3`
	return r.list(ctx, "list posts by author", query, req,
		int64(authorID), req.FetchLimit(), req.Offset())
}

func (r *PgRepository) ListAll(ctx context.Context, req domain.PageRequest) (domain.Page, error) {
	query := `SELECT id, author_id, body, created_at FROM posts ` +
		postOrder + ` LIMIT $1 OFFSET $2`
	return r.list(ctx, "list all posts", query, req,
		req.FetchLimit(), req.Offset())
}

// ListFeed is the personalized timeline: the user's own posts plus posts of
// everyone the user follows, as one query so the total order holds across
// authors.
func (r *PgRepository) ListFeed(ctx context.Context, userID userdomain.ID, req domain.PageRequest) (domain.Page, error) {
	query := `SELECT id, author_id, body, created_at FROM posts
		 WHERE author_id = $1
		    OR author_id IN (SELECT followed_id FROM follows WHERE follower_id = $1)
		 ` + postOrder + ` LIMIT $2 OFFSET $3`
	return r.list(ctx, "list feed posts", query, req,
		int64(userID), req.FetchLimit(), req.Offset())
}

func (r *PgRepository) list(ctx context.Context, operation, query string, req domain.PageRequest, args ...interface{}) (domain.Page, error) {
	start := time.Now()
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return domain.Page{}, db.HandleExecError(err, operation, start)
	}
	defer rows.Close()

	items := make([]domain.Post, 0, req.PageSize)
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Body, &p.CreatedAt); err != nil {
			return domain.Page{}, fmt.Errorf("failed to scan post: %w", err)
		}
		items = append(items, p)
	}
	if rows.Err() != nil {
		return domain.Page{}, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	db.MeasureQueryDuration(operation, start)
	return domain.NewPage(items, req), nil
}

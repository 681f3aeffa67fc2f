package repository

import (
	"context"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/trandrew/microblog/internal/common/db"
	"github.com/trandrew/microblog/internal/user/domain"
)

// Tx exposes the user operations the password-reset flow needs inside a
// single transaction: lock the row, rewrite the hash, commit or roll back
// as one unit.
type Tx interface {
	FindByIDForUpdate(ctx context.Context, id domain.ID) (domain.User, error)
	UpdatePassword(ctx context.Context, id domain.ID, passwordHash string) error
}

type TxManager interface {
	WithTx(ctx context.Context, fn func(context.Context, Tx) error) error
}

type PgTxManager struct {
	inner *db.PgTxManager
}

func NewPgTxManager(pool *pgxpool.Pool) *PgTxManager {
	return &PgTxManager{inner: db.NewPgTxManager(pool)}
}

func (m *PgTxManager) WithTx(ctx context.Context, fn func(context.Context, Tx) error) error {
	return m.inner.WithTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		return fn(txCtx, &pgUserTx{tx: tx})
	})
}

type pgUserTx struct {
	tx pgx.Tx
}

func (t *pgUserTx) FindByIDForUpdate(ctx context.Context, id domain.ID) (domain.User, error) {
	start := time.Now()
	row := t.tx.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`,
		int64(id),
	)

	user, err := scanUser(row)
	if err != nil {
		return domain.User{}, db.HandleQueryError(err, ErrUserNotFound, "find user for update", start)
	}

	db.MeasureQueryDuration("find user for update", start)
	return user, nil
}

func (t *pgUserTx) UpdatePassword(ctx context.Context, id domain.ID, passwordHash string) error {
	start := time.Now()
	tag, err := t.tx.Exec(
		ctx,
		`UPDATE users SET password_hash = $2 WHERE id = $1`,
		int64(id),
		passwordHash,
	)
	if err != nil {
		return db.HandleExecError(err, "update user password", start)
	}
	if tag.RowsAffected() == 0 {
		db.MeasureQueryDuration("update user password", start)
		return ErrUserNotFound
	}

	db.MeasureQueryDuration("update user password", start)
	return nil
}

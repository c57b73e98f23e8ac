package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultOperationTimeout bounds a repository call when none is configured.
const DefaultOperationTimeout = 5 * time.Second

// pgInvalidTextRepresentation is raised when text cannot be cast, e.g. a malformed uuid.
const pgInvalidTextRepresentation = "22P02"

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool      *pgxpool.Pool
	OpTimeout time.Duration
}

// withTimeout derives the context every storage round-trip runs under.
func (r *BaseRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := r.OpTimeout
	if timeout <= 0 {
		timeout = DefaultOperationTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, opts)
	if err != nil {
		return nil, translateError(ctx, err, "failed to begin transaction")
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return translateError(ctx, err, "failed to commit transaction")
	}
	return nil
}

// Rollback rolls back a transaction. Rolling back a committed transaction is a no-op.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) {
	_ = tx.Rollback(ctx)
}

// Ping performs one round-trip to the database.
func (r *BaseRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.Pool.Ping(ctx); err != nil {
		return translateError(ctx, err, "database ping failed")
	}
	return nil
}

// translateError turns a driver error into an apperrors kind. Errors that
// already carry a kind pass through untouched.
func translateError(ctx context.Context, err error, msg string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(msg, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation {
		return apperrors.NewInvalidIDError(pgErr.Message)
	}
	return apperrors.NewStorageError(msg, err)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

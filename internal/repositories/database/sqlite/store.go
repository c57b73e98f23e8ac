// Package sqlite is the embedded single-file storage backend. Writers are
// serialised through a single connection.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker_app/internal/repositories/database/sqlite/migrations"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// DefaultOperationTimeout bounds a store call when none is configured.
const DefaultOperationTimeout = 5 * time.Second

// Store provides SQLite-backed persistence for projects and appointments.
type Store struct {
	sqlDB     *sql.DB
	opTimeout time.Duration
}

func dsn(path string) string {
	return filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
}

// Open opens the database file at path. Migrations are applied separately with Migrate.
func Open(path string, opTimeout time.Duration) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	sqlDB, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if opTimeout <= 0 {
		opTimeout = DefaultOperationTimeout
	}
	return &Store{sqlDB: sqlDB, opTimeout: opTimeout}, nil
}

// Migrate applies the embedded schema to the database file at path.
func Migrate(path string) (bool, error) {
	migrationDB, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return false, fmt.Errorf("open sqlite db for migrations: %w", err)
	}
	return migrations.Up(migrationDB)
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping performs one round-trip to the database.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.sqlDB.PingContext(ctx); err != nil {
		return translateError(ctx, err, "database ping failed")
	}
	return nil
}

// Repositories exposes the store through the repository ports.
func (s *Store) Repositories() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ProjectRepo:     &projectRepository{store: s},
		AppointmentRepo: &appointmentRepository{store: s},
		Health:          s,
	}
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

// inTx runs fn inside a transaction, committing only when fn succeeds.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return translateError(ctx, err, "failed to begin transaction")
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return translateError(ctx, err, "failed to commit transaction")
	}
	return nil
}

func translateError(ctx context.Context, err error, msg string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(msg, err)
	}
	return apperrors.NewStorageError(msg, err)
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func parseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("stored amount %q is not a number: %w", raw, err)
	}
	return d, nil
}

package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker_app/internal/models"
	"github.com/SscSPs/finance_tracker_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const projectColumns = `project_id, name, description, transaction_count, created_at, updated_at`

const transactionColumns = `transaction_id, project_id, position, description, kind, amount, transaction_date, created_at, updated_at`

type PgxProjectRepository struct {
	BaseRepository
}

// newPgxProjectRepository creates a new repository for projects and their transactions.
func newPgxProjectRepository(pool *pgxpool.Pool, opTimeout time.Duration) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{
		BaseRepository: BaseRepository{Pool: pool, OpTimeout: opTimeout},
	}
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func scanProject(row pgx.Row) (models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ProjectID, &p.Name, &p.Description, &p.TransactionCount, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.ProjectID,
		&t.Position,
		&t.Description,
		&t.Kind,
		&t.Amount,
		&t.TransactionDate,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

func collectTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
}

func (r *PgxProjectRepository) loadTransactions(ctx context.Context, q querier, projectID string) ([]models.Transaction, error) {
	rows, err := q.Query(ctx, `SELECT `+transactionColumns+` FROM project_transactions WHERE project_id = $1 ORDER BY position`, projectID)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

// FindProjectByID reads the project and its transactions from one snapshot.
func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.Begin(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	row, err := scanProject(tx.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE project_id = $1`, projectID))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFoundError("project not found")
		}
		return nil, translateError(ctx, err, "failed to find project")
	}
	txns, err := r.loadTransactions(ctx, tx, projectID)
	if err != nil {
		return nil, translateError(ctx, err, "failed to load project transactions")
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	project := mapping.ToDomainProject(row, txns)
	return &project, nil
}

// ListProjects retrieves all projects, most recently created first, with two queries.
func (r *PgxProjectRepository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.Begin(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	rows, err := tx.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC, project_id`)
	if err != nil {
		return nil, translateError(ctx, err, "failed to query projects")
	}
	projectRows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Project, error) {
		return scanProject(row)
	})
	if err != nil {
		return nil, translateError(ctx, err, "failed to scan projects")
	}
	if len(projectRows) == 0 {
		return []domain.Project{}, nil
	}

	ids := make([]string, len(projectRows))
	for i, p := range projectRows {
		ids[i] = p.ProjectID
	}
	rows, err = tx.Query(ctx,
		`SELECT `+transactionColumns+` FROM project_transactions WHERE project_id = ANY($1::uuid[]) ORDER BY project_id, position`,
		ids)
	if err != nil {
		return nil, translateError(ctx, err, "failed to query transactions")
	}
	txnRows, err := collectTransactions(rows)
	if err != nil {
		return nil, translateError(ctx, err, "failed to scan transactions")
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	grouped := mapping.GroupTransactionsByProject(txnRows)
	projects := make([]domain.Project, len(projectRows))
	for i, p := range projectRows {
		projects[i] = mapping.ToDomainProject(p, grouped[p.ProjectID])
	}
	return projects, nil
}

// SaveProject inserts a new project with an empty transaction sequence.
func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelProject(project)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO projects (project_id, name, description, transaction_count, created_at, updated_at)
		VALUES ($1, $2, $3, 0, $4, $5)`,
		m.ProjectID, m.Name, m.Description, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return translateError(ctx, err, "failed to save project")
	}
	return nil
}

func (r *PgxProjectRepository) UpdateProjectDetails(ctx context.Context, projectID, name, description string, updatedAt time.Time) (*domain.Project, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.Begin(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	row, err := scanProject(tx.QueryRow(ctx, `
		UPDATE projects SET name = $2, description = $3, updated_at = $4
		WHERE project_id = $1
		RETURNING `+projectColumns,
		projectID, name, description, updatedAt,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFoundError("project not found")
		}
		return nil, translateError(ctx, err, "failed to update project")
	}
	txns, err := r.loadTransactions(ctx, tx, projectID)
	if err != nil {
		return nil, translateError(ctx, err, "failed to load project transactions")
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	project := mapping.ToDomainProject(row, txns)
	return &project, nil
}

// DeleteProject returns the project as it was just before removal. The
// transactions are removed by the ON DELETE CASCADE of the same statement.
func (r *PgxProjectRepository) DeleteProject(ctx context.Context, projectID string) (*domain.Project, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.Begin(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	row, err := scanProject(tx.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE project_id = $1 FOR UPDATE`, projectID))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFoundError("project not found")
		}
		return nil, translateError(ctx, err, "failed to find project")
	}
	txns, err := r.loadTransactions(ctx, tx, projectID)
	if err != nil {
		return nil, translateError(ctx, err, "failed to load project transactions")
	}
	if _, err := tx.Exec(ctx, `DELETE FROM projects WHERE project_id = $1`, projectID); err != nil {
		return nil, translateError(ctx, err, "failed to delete project")
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	project := mapping.ToDomainProject(row, txns)
	return &project, nil
}

// appendTransactionQuery claims the next position and writes the row in one
// statement. The UPDATE row lock serialises concurrent appends to a project.
const appendTransactionQuery = `
	WITH claimed AS (
		UPDATE projects
		SET transaction_count = transaction_count + 1, updated_at = $2
		WHERE project_id = $1
		RETURNING transaction_count - 1 AS position
	)
	INSERT INTO project_transactions (` + transactionColumns + `)
	SELECT $3::uuid, $1::uuid, claimed.position, $4::text, $5::text, $6::numeric, $7::timestamptz, $8::timestamptz, $9::timestamptz
	FROM claimed
	RETURNING position`

func (r *PgxProjectRepository) AppendTransaction(ctx context.Context, projectID string, txn domain.Transaction) (*domain.Transaction, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelTransaction(projectID, txn)
	err := r.Pool.QueryRow(ctx, appendTransactionQuery,
		projectID,
		m.UpdatedAt,
		m.TransactionID,
		m.Description,
		m.Kind,
		m.Amount,
		m.TransactionDate,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&m.Position)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFoundError("project not found")
		}
		return nil, translateError(ctx, err, "failed to append transaction")
	}

	saved := mapping.ToDomainTransaction(m)
	return &saved, nil
}

func (r *PgxProjectRepository) UpdateTransactionByID(ctx context.Context, projectID, transactionID string, fields domain.TransactionFields, updatedAt time.Time) (*domain.Transaction, error) {
	return r.updateTransaction(ctx, projectID, "transaction_id = $2", transactionID, fields, updatedAt,
		apperrors.NewNotFoundError("transaction not found in project"))
}

func (r *PgxProjectRepository) UpdateTransactionAt(ctx context.Context, projectID string, index int, fields domain.TransactionFields, updatedAt time.Time) (*domain.Transaction, error) {
	return r.updateTransaction(ctx, projectID, "position = $2", index, fields, updatedAt,
		apperrors.NewIndexOutOfRangeError(index))
}

// updateTransaction locks the project, replaces the addressed transaction and
// refreshes the project's updated_at. missing is returned when the project
// exists but nothing matches the predicate.
func (r *PgxProjectRepository) updateTransaction(ctx context.Context, projectID, predicate string, key any, fields domain.TransactionFields, updatedAt time.Time, missing error) (*domain.Transaction, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.Begin(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var locked string
	err = tx.QueryRow(ctx, `SELECT project_id FROM projects WHERE project_id = $1 FOR UPDATE`, projectID).Scan(&locked)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFoundError("project not found")
		}
		return nil, translateError(ctx, err, "failed to lock project")
	}

	m, err := scanTransaction(tx.QueryRow(ctx, `
		UPDATE project_transactions
		SET description = $3, kind = $4, amount = $5, transaction_date = $6, updated_at = $7
		WHERE project_id = $1 AND `+predicate+`
		RETURNING `+transactionColumns,
		projectID, key, fields.Description, string(fields.Kind), fields.Amount, fields.Date, updatedAt,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, missing
		}
		return nil, translateError(ctx, err, "failed to update transaction")
	}

	if _, err := tx.Exec(ctx, `UPDATE projects SET updated_at = $2 WHERE project_id = $1`, projectID, updatedAt); err != nil {
		return nil, translateError(ctx, err, "failed to touch project")
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	updated := mapping.ToDomainTransaction(m)
	return &updated, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker_app/internal/models"
	"github.com/SscSPs/finance_tracker_app/internal/utils/mapping"
)

const projectColumns = `project_id, name, description, transaction_count, created_at, updated_at`

const transactionColumns = `transaction_id, project_id, position, description, kind, amount, transaction_date, created_at, updated_at`

type projectRepository struct {
	store *Store
}

var _ portsrepo.ProjectRepositoryFacade = (*projectRepository)(nil)

func scanProject(row scanner) (models.Project, error) {
	var (
		p                    models.Project
		createdAt, updatedAt int64
	)
	if err := row.Scan(&p.ProjectID, &p.Name, &p.Description, &p.TransactionCount, &createdAt, &updatedAt); err != nil {
		return p, err
	}
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	return p, nil
}

func scanTransaction(row scanner) (models.Transaction, error) {
	var (
		t                          models.Transaction
		amount                     string
		date, createdAt, updatedAt int64
	)
	if err := row.Scan(&t.TransactionID, &t.ProjectID, &t.Position, &t.Description, &t.Kind, &amount, &date, &createdAt, &updatedAt); err != nil {
		return t, err
	}
	parsed, err := parseAmount(amount)
	if err != nil {
		return t, err
	}
	t.Amount = parsed
	t.TransactionDate = fromMillis(date)
	t.CreatedAt = fromMillis(createdAt)
	t.UpdatedAt = fromMillis(updatedAt)
	return t, nil
}

func queryTransactions(ctx context.Context, q queryer, query string, args ...any) ([]models.Transaction, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

func loadTransactions(ctx context.Context, q queryer, projectID string) ([]models.Transaction, error) {
	return queryTransactions(ctx, q,
		`SELECT `+transactionColumns+` FROM project_transactions WHERE project_id = ? ORDER BY position`,
		projectID)
}

// loadProject reads the project row and its transactions. A missing row is NotFound.
func loadProject(ctx context.Context, q queryer, projectID string) (*domain.Project, error) {
	row, err := scanProject(q.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE project_id = ?`, projectID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("project not found")
		}
		return nil, translateError(ctx, err, "failed to find project")
	}
	txns, err := loadTransactions(ctx, q, projectID)
	if err != nil {
		return nil, translateError(ctx, err, "failed to load project transactions")
	}
	project := mapping.ToDomainProject(row, txns)
	return &project, nil
}

func (r *projectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	var project *domain.Project
	err := r.store.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		project, err = loadProject(ctx, tx, projectID)
		return err
	})
	return project, err
}

func (r *projectRepository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	var projects []domain.Project
	err := r.store.inTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC, project_id`)
		if err != nil {
			return translateError(ctx, err, "failed to query projects")
		}
		var projectRows []models.Project
		for rows.Next() {
			p, err := scanProject(rows)
			if err != nil {
				rows.Close()
				return translateError(ctx, err, "failed to scan projects")
			}
			projectRows = append(projectRows, p)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return translateError(ctx, err, "failed to scan projects")
		}
		if len(projectRows) == 0 {
			projects = []domain.Project{}
			return nil
		}

		// Every project is listed, so no IN filter is needed.
		txnRows, err := queryTransactions(ctx, tx,
			`SELECT `+transactionColumns+` FROM project_transactions ORDER BY project_id, position`)
		if err != nil {
			return translateError(ctx, err, "failed to query transactions")
		}

		grouped := mapping.GroupTransactionsByProject(txnRows)
		projects = make([]domain.Project, len(projectRows))
		for i, p := range projectRows {
			projects[i] = mapping.ToDomainProject(p, grouped[p.ProjectID])
		}
		return nil
	})
	return projects, err
}

func (r *projectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelProject(project)
	_, err := r.store.sqlDB.ExecContext(ctx, `
		INSERT INTO projects (project_id, name, description, transaction_count, created_at, updated_at)
		VALUES (?, ?, ?, 0, ?, ?)`,
		m.ProjectID, m.Name, m.Description, toMillis(m.CreatedAt), toMillis(m.UpdatedAt),
	)
	if err != nil {
		return translateError(ctx, err, "failed to save project")
	}
	return nil
}

func (r *projectRepository) UpdateProjectDetails(ctx context.Context, projectID, name, description string, updatedAt time.Time) (*domain.Project, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	var project *domain.Project
	err := r.store.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE projects SET name = ?, description = ?, updated_at = ? WHERE project_id = ?`,
			name, description, toMillis(updatedAt), projectID)
		if err != nil {
			return translateError(ctx, err, "failed to update project")
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return apperrors.NewNotFoundError("project not found")
		}
		project, err = loadProject(ctx, tx, projectID)
		return err
	})
	return project, err
}

// DeleteProject returns the project as it was before removal; ON DELETE
// CASCADE removes the transactions with the project row.
func (r *projectRepository) DeleteProject(ctx context.Context, projectID string) (*domain.Project, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	var project *domain.Project
	err := r.store.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		project, err = loadProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE project_id = ?`, projectID); err != nil {
			return translateError(ctx, err, "failed to delete project")
		}
		return nil
	})
	return project, err
}

// AppendTransaction claims the next position with UPDATE ... RETURNING and
// inserts the row in the same transaction.
func (r *projectRepository) AppendTransaction(ctx context.Context, projectID string, txn domain.Transaction) (*domain.Transaction, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelTransaction(projectID, txn)
	err := r.store.inTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			UPDATE projects SET transaction_count = transaction_count + 1, updated_at = ?
			WHERE project_id = ?
			RETURNING transaction_count - 1`,
			toMillis(m.UpdatedAt), projectID,
		).Scan(&m.Position)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NewNotFoundError("project not found")
			}
			return translateError(ctx, err, "failed to claim transaction position")
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO project_transactions (`+transactionColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.TransactionID, m.ProjectID, m.Position, m.Description, m.Kind, m.Amount.String(),
			toMillis(m.TransactionDate), toMillis(m.CreatedAt), toMillis(m.UpdatedAt),
		)
		if err != nil {
			return translateError(ctx, err, "failed to append transaction")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	saved := mapping.ToDomainTransaction(m)
	return &saved, nil
}

func (r *projectRepository) UpdateTransactionByID(ctx context.Context, projectID, transactionID string, fields domain.TransactionFields, updatedAt time.Time) (*domain.Transaction, error) {
	return r.updateTransaction(ctx, projectID, "transaction_id = ?", transactionID, fields, updatedAt,
		apperrors.NewNotFoundError("transaction not found in project"))
}

func (r *projectRepository) UpdateTransactionAt(ctx context.Context, projectID string, index int, fields domain.TransactionFields, updatedAt time.Time) (*domain.Transaction, error) {
	return r.updateTransaction(ctx, projectID, "position = ?", index, fields, updatedAt,
		apperrors.NewIndexOutOfRangeError(index))
}

func (r *projectRepository) updateTransaction(ctx context.Context, projectID, predicate string, key any, fields domain.TransactionFields, updatedAt time.Time, missing error) (*domain.Transaction, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	var updated domain.Transaction
	err := r.store.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE projects SET updated_at = ? WHERE project_id = ?`, toMillis(updatedAt), projectID)
		if err != nil {
			return translateError(ctx, err, "failed to touch project")
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return apperrors.NewNotFoundError("project not found")
		}

		m, err := scanTransaction(tx.QueryRowContext(ctx, `
			UPDATE project_transactions
			SET description = ?, kind = ?, amount = ?, transaction_date = ?, updated_at = ?
			WHERE project_id = ? AND `+predicate+`
			RETURNING `+transactionColumns,
			fields.Description, string(fields.Kind), fields.Amount.String(), toMillis(fields.Date), toMillis(updatedAt),
			projectID, key,
		))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return missing
			}
			return translateError(ctx, err, "failed to update transaction")
		}
		updated = mapping.ToDomainTransaction(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}


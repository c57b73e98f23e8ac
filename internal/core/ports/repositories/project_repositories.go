package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
)

// ProjectReader defines read operations for project data.
type ProjectReader interface {
	// FindProjectByID retrieves a project with its transactions in index order.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjects retrieves all projects, most recently created first.
	ListProjects(ctx context.Context) ([]domain.Project, error)
}

// ProjectWriter defines write operations for project data.
type ProjectWriter interface {
	// SaveProject inserts a new project. The project must not carry transactions.
	SaveProject(ctx context.Context, project domain.Project) error

	// UpdateProjectDetails replaces name and description and refreshes updatedAt.
	UpdateProjectDetails(ctx context.Context, projectID, name, description string, updatedAt time.Time) (*domain.Project, error)

	// DeleteProject removes a project together with all of its transactions.
	DeleteProject(ctx context.Context, projectID string) (*domain.Project, error)
}

// TransactionWriter defines mutations of the transactions embedded in a project.
// Every call also refreshes the owning project's updatedAt.
type TransactionWriter interface {
	// AppendTransaction stores txn at the end of the project's sequence. The index
	// is assigned by the same atomic operation that writes the row, so concurrent
	// appends to one project always receive distinct indices. The returned
	// transaction carries the assigned index.
	AppendTransaction(ctx context.Context, projectID string, txn domain.Transaction) (*domain.Transaction, error)

	// UpdateTransactionByID replaces the fields of the transaction with the given id.
	UpdateTransactionByID(ctx context.Context, projectID, transactionID string, fields domain.TransactionFields, updatedAt time.Time) (*domain.Transaction, error)

	// UpdateTransactionAt replaces the fields of the transaction at index. It never
	// creates an element: a missing position is apperrors.ErrIndexOutOfRange.
	UpdateTransactionAt(ctx context.Context, projectID string, index int, fields domain.TransactionFields, updatedAt time.Time) (*domain.Transaction, error)
}

// ProjectRepositoryFacade combines all project-related repository interfaces.
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
	TransactionWriter
}

package services

import (
	"context"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
)

// ProjectReaderSvc defines read operations for project data
type ProjectReaderSvc interface {
	// ListProjects retrieves every project, most recently created first.
	ListProjects(ctx context.Context) ([]domain.Project, error)

	// GetProjectByID retrieves a specific project by its ID.
	GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error)
}

// ProjectWriterSvc defines write operations for project data
type ProjectWriterSvc interface {
	CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*domain.Project, error)
	UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error)

	// DeleteProject removes the project and its transactions, returning what was removed.
	DeleteProject(ctx context.Context, projectID string) (*domain.Project, error)
}

// TransactionWriterSvc defines mutations of the transactions embedded in a project
type TransactionWriterSvc interface {
	// AppendTransaction adds a transaction at the end of the project and returns it
	// (with its index) together with the updated project.
	AppendTransaction(ctx context.Context, projectID string, fields domain.TransactionFields) (*domain.Transaction, *domain.Project, error)

	// UpdateTransaction replaces a transaction addressed by ref, which is either the
	// transaction ID or its zero-based index.
	UpdateTransaction(ctx context.Context, projectID string, ref string, fields domain.TransactionFields) (*domain.Transaction, *domain.Project, error)
}

// ProjectSvcFacade combines all project-related service interfaces
type ProjectSvcFacade interface {
	ProjectReaderSvc
	ProjectWriterSvc
	TransactionWriterSvc
}

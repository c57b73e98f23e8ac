package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/google/uuid"
)

type projectService struct {
	BaseService
	projectRepo portsrepo.ProjectRepositoryFacade
}

// NewProjectService creates the service owning project and transaction rules.
func NewProjectService(repo portsrepo.ProjectRepositoryFacade, options ...Option) portssvc.ProjectSvcFacade {
	return &projectService{
		BaseService: newBaseService(options...),
		projectRepo: repo,
	}
}

func (s *projectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.projectRepo.ListProjects(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects")
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if projects == nil {
		return []domain.Project{}, nil
	}
	s.LogDebug(ctx, "Projects listed", slog.Int("count", len(projects)))
	return projects, nil
}

func (s *projectService) GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	id, err := parseID(projectID, "project")
	if err != nil {
		return nil, err
	}
	project, err := s.projectRepo.FindProjectByID(ctx, id)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find project", slog.String("project_id", id))
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*domain.Project, error) {
	project := domain.Project{
		ProjectID:    uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Transactions: []domain.Transaction{},
		AuditFields:  domain.NewAuditFields(s.Now()),
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		s.LogError(ctx, err, "Failed to save project", slog.String("project_id", project.ProjectID))
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.LogInfo(ctx, "Project created", slog.String("project_id", project.ProjectID))
	return &project, nil
}

func (s *projectService) UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error) {
	id, err := parseID(projectID, "project")
	if err != nil {
		return nil, err
	}
	candidate := domain.Project{Name: strings.TrimSpace(req.Name), Description: strings.TrimSpace(req.Description)}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.UpdateProjectDetails(ctx, id, candidate.Name, candidate.Description, s.Now())
	if err != nil {
		s.logFailure(ctx, err, "Failed to update project", slog.String("project_id", id))
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.LogInfo(ctx, "Project updated", slog.String("project_id", id))
	return project, nil
}

func (s *projectService) DeleteProject(ctx context.Context, projectID string) (*domain.Project, error) {
	id, err := parseID(projectID, "project")
	if err != nil {
		return nil, err
	}
	project, err := s.projectRepo.DeleteProject(ctx, id)
	if err != nil {
		s.logFailure(ctx, err, "Failed to delete project", slog.String("project_id", id))
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}

	s.LogInfo(ctx, "Project deleted",
		slog.String("project_id", id),
		slog.Int("transactions_removed", project.TransactionCount()))
	return project, nil
}

func (s *projectService) AppendTransaction(ctx context.Context, projectID string, fields domain.TransactionFields) (*domain.Transaction, *domain.Project, error) {
	id, err := parseID(projectID, "project")
	if err != nil {
		return nil, nil, err
	}
	fields, err = fields.Normalize()
	if err != nil {
		return nil, nil, err
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AuditFields:   domain.NewAuditFields(s.Now()),
	}
	fields.Apply(&txn)

	saved, err := s.projectRepo.AppendTransaction(ctx, id, txn)
	if err != nil {
		s.logFailure(ctx, err, "Failed to append transaction", slog.String("project_id", id))
		return nil, nil, fmt.Errorf("failed to append transaction: %w", err)
	}

	project, err := s.projectRepo.FindProjectByID(ctx, id)
	if err != nil {
		s.LogError(ctx, err, "Failed to reload project after append", slog.String("project_id", id))
		return nil, nil, fmt.Errorf("failed to reload project: %w", err)
	}

	s.LogInfo(ctx, "Transaction appended",
		slog.String("project_id", id),
		slog.String("transaction_id", saved.TransactionID),
		slog.Int("index", saved.Index))
	return saved, project, nil
}

func (s *projectService) UpdateTransaction(ctx context.Context, projectID string, ref string, fields domain.TransactionFields) (*domain.Transaction, *domain.Project, error) {
	id, err := parseID(projectID, "project")
	if err != nil {
		return nil, nil, err
	}
	target, err := parseTransactionRef(ref)
	if err != nil {
		return nil, nil, err
	}
	fields, err = fields.Normalize()
	if err != nil {
		return nil, nil, err
	}

	now := s.Now()
	var updated *domain.Transaction
	if target.byID {
		updated, err = s.projectRepo.UpdateTransactionByID(ctx, id, target.id, fields, now)
	} else {
		updated, err = s.projectRepo.UpdateTransactionAt(ctx, id, target.index, fields, now)
	}
	if err != nil {
		s.logFailure(ctx, err, "Failed to update transaction",
			slog.String("project_id", id),
			slog.String("ref", ref))
		return nil, nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	project, err := s.projectRepo.FindProjectByID(ctx, id)
	if err != nil {
		s.LogError(ctx, err, "Failed to reload project after transaction update", slog.String("project_id", id))
		return nil, nil, fmt.Errorf("failed to reload project: %w", err)
	}

	s.LogInfo(ctx, "Transaction updated",
		slog.String("project_id", id),
		slog.String("transaction_id", updated.TransactionID),
		slog.Int("index", updated.Index))
	return updated, project, nil
}

// transactionRef addresses a transaction either by its id or by its position.
type transactionRef struct {
	byID  bool
	id    string
	index int
}

// parseTransactionRef accepts a UUID or a non-negative integer.
// An integer that can never address an element (negative or too large) is reported as out of range.
func parseTransactionRef(ref string) (transactionRef, error) {
	ref = strings.TrimSpace(ref)
	if id, err := uuid.Parse(ref); err == nil {
		return transactionRef{byID: true, id: id.String()}, nil
	}
	index, err := strconv.Atoi(ref)
	if errors.Is(err, strconv.ErrRange) {
		return transactionRef{}, apperrors.NewRefOutOfRangeError(ref)
	}
	if err != nil {
		return transactionRef{}, apperrors.NewInvalidIDError(fmt.Sprintf("invalid transaction reference %q: expected an id or an index", ref))
	}
	// Positions are stored as INTEGER; anything wider cannot address an element.
	if index < 0 || index > math.MaxInt32 {
		return transactionRef{}, apperrors.NewIndexOutOfRangeError(index)
	}
	return transactionRef{index: index}, nil
}

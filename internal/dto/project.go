package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest defines the data needed to create a new project.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"` // Optional, defaults to empty
}

// UpdateProjectRequest defines the data allowed for updating a project.
type UpdateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// TransactionRequest is the body for appending or replacing a transaction.
type TransactionRequest struct {
	Description string       `json:"description" binding:"required"`
	Kind        string       `json:"kind" binding:"required"`
	Amount      NumericInput `json:"amount"`
	Date        DateInput    `json:"date"`
}

// ToTransactionFields coerces the request into domain fields. Amount and date
// are parsed here so that malformed input never reaches the store.
func (r TransactionRequest) ToTransactionFields() (domain.TransactionFields, error) {
	amount, err := r.Amount.Decimal("amount")
	if err != nil {
		return domain.TransactionFields{}, err
	}
	date, err := r.Date.Time("date")
	if err != nil {
		return domain.TransactionFields{}, err
	}
	return domain.TransactionFields{
		Description: r.Description,
		Kind:        domain.TransactionKind(r.Kind),
		Amount:      amount,
		Date:        date,
	}, nil
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"id"`
	Index         int             `json:"index"`
	Description   string          `json:"description"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ProjectID    string                `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	Transactions []TransactionResponse `json:"transactions"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// ProjectEnvelope wraps a project returned by a mutation.
type ProjectEnvelope struct {
	Message string          `json:"message"`
	Project ProjectResponse `json:"project"`
}

// AppendTransactionResponse is returned after a transaction is appended.
type AppendTransactionResponse struct {
	Message     string              `json:"message"`
	Transaction TransactionResponse `json:"transaction"`
	Index       int                 `json:"index"`
	Project     ProjectResponse     `json:"project"`
}

// UpdateTransactionResponse is returned after a transaction is replaced.
type UpdateTransactionResponse struct {
	Message     string              `json:"message"`
	Transaction TransactionResponse `json:"transaction"`
	Project     ProjectResponse     `json:"project"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Index:         txn.Index,
		Description:   txn.Description,
		Kind:          string(txn.Kind),
		Amount:        txn.Amount,
		Date:          txn.Date,
		CreatedAt:     txn.CreatedAt,
		UpdatedAt:     txn.UpdatedAt,
	}
}

// ToProjectResponse converts a domain.Project to ProjectResponse DTO.
// Transactions is always a non-nil slice so it encodes as [].
func ToProjectResponse(p *domain.Project) ProjectResponse {
	txns := make([]TransactionResponse, len(p.Transactions))
	for i := range p.Transactions {
		txns[i] = ToTransactionResponse(&p.Transactions[i])
	}
	return ProjectResponse{
		ProjectID:    p.ProjectID,
		Name:         p.Name,
		Description:  p.Description,
		Transactions: txns,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToListProjectResponse converts a slice of domain.Project to a slice of ProjectResponse DTOs
func ToListProjectResponse(projects []domain.Project) []ProjectResponse {
	res := make([]ProjectResponse, len(projects))
	for i := range projects {
		res[i] = ToProjectResponse(&projects[i])
	}
	return res
}

package domain

import (
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionKind tells whether a transaction adds to or takes from a project.
type TransactionKind string

const (
	Income  TransactionKind = "income"
	Expense TransactionKind = "expense"
)

// ParseTransactionKind normalises raw input (case-insensitive) to a known kind.
func ParseTransactionKind(raw string) (TransactionKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch TransactionKind(normalized) {
	case Income, Expense:
		return TransactionKind(normalized), nil
	case "":
		return "", validationError("transaction kind is required")
	default:
		return "", validationError("transaction kind must be one of: income, expense")
	}
}

// Transaction is a single income/expense entry embedded in exactly one project.
// Index is the zero-based position assigned at append time and never changes afterwards.
type Transaction struct {
	TransactionID string          `json:"id"`
	Index         int             `json:"index"`
	Description   string          `json:"description"`
	Kind          TransactionKind `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	AuditFields
}

// TransactionFields are the caller-controlled fields of a transaction.
// An update replaces all of them at once.
type TransactionFields struct {
	Description string
	Kind        TransactionKind
	Amount      decimal.Decimal
	Date        time.Time
}

// Normalize trims the description, lowercases the kind and validates the result.
func (f TransactionFields) Normalize() (TransactionFields, error) {
	f.Description = strings.TrimSpace(f.Description)
	if f.Description == "" {
		return f, validationError("transaction description is required")
	}
	kind, err := ParseTransactionKind(string(f.Kind))
	if err != nil {
		return f, err
	}
	f.Kind = kind
	if f.Date.IsZero() {
		return f, validationError("transaction date is required")
	}
	f.Date = f.Date.UTC()
	return f, nil
}

// Apply copies the fields onto t.
func (f TransactionFields) Apply(t *Transaction) {
	t.Description = f.Description
	t.Kind = f.Kind
	t.Amount = f.Amount
	t.Date = f.Date
}

func validationError(msg string) error {
	return apperrors.NewValidationFailedError(msg)
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the project_transactions table.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"` // Primary Key (UUID)
	ProjectID       string          `db:"project_id"`     // FK to projects, ON DELETE CASCADE
	Position        int             `db:"position"`       // UNIQUE with project_id
	Description     string          `db:"description"`
	Kind            string          `db:"kind"` // income | expense
	Amount          decimal.Decimal `db:"amount"`
	TransactionDate time.Time       `db:"transaction_date"`
	AuditFields
}

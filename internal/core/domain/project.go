package domain

import "strings"

// Project is a named grouping that owns an ordered list of transactions.
type Project struct {
	ProjectID    string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Transactions []Transaction `json:"transactions"`
	AuditFields
}

// Validate checks the fields a caller controls.
func (p Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return validationError("project name is required")
	}
	return nil
}

// TransactionCount returns the number of transactions currently embedded in the project.
func (p Project) TransactionCount() int {
	return len(p.Transactions)
}

package models

// Project is a row of the projects table.
type Project struct {
	ProjectID        string `db:"project_id"` // Primary Key (UUID)
	Name             string `db:"name"`
	Description      string `db:"description"`
	TransactionCount int    `db:"transaction_count"` // Next free position
	AuditFields
}

package mapping

import (
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/models"
)

// ToModelProject converts a domain Project to a model Project.
// TransactionCount is taken from the embedded transactions.
func ToModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID:        d.ProjectID,
		Name:             d.Name,
		Description:      d.Description,
		TransactionCount: d.TransactionCount(),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProject converts a project row and its transaction rows to a domain Project.
// txns must already be in position order.
func ToDomainProject(m models.Project, txns []models.Transaction) domain.Project {
	return domain.Project{
		ProjectID:    m.ProjectID,
		Name:         m.Name,
		Description:  m.Description,
		Transactions: ToDomainTransactionSlice(txns),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTransaction converts a domain Transaction owned by projectID to a model Transaction
func ToModelTransaction(projectID string, d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		ProjectID:       projectID,
		Position:        d.Index,
		Description:     d.Description,
		Kind:            string(d.Kind),
		Amount:          d.Amount,
		TransactionDate: d.Date,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		Index:         m.Position,
		Description:   m.Description,
		Kind:          domain.TransactionKind(m.Kind),
		Amount:        m.Amount,
		Date:          m.TransactionDate.UTC(),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts model Transactions, always returning a non-nil slice.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// GroupTransactionsByProject buckets rows by project id, keeping their order.
func GroupTransactionsByProject(ms []models.Transaction) map[string][]models.Transaction {
	grouped := make(map[string][]models.Transaction)
	for _, m := range ms {
		grouped[m.ProjectID] = append(grouped[m.ProjectID], m)
	}
	return grouped
}

package domain

import "time"

// AuditFields holds the timestamps every stored entity carries.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewAuditFields returns audit fields stamped with the same instant for creation and update.
func NewAuditFields(now time.Time) AuditFields {
	now = now.UTC()
	return AuditFields{CreatedAt: now, UpdatedAt: now}
}

// Touch refreshes UpdatedAt.
func (a *AuditFields) Touch(now time.Time) {
	a.UpdatedAt = now.UTC()
}

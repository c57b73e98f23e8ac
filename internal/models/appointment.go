package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Appointment is a row of the appointments table.
type Appointment struct {
	AppointmentID   string          `db:"appointment_id"`
	Client          string          `db:"client"`
	Service         string          `db:"service"`
	AppointmentDate time.Time       `db:"appointment_date"`
	AppointmentTime string          `db:"appointment_time"`
	DurationMinutes int             `db:"duration_minutes"`
	Amount          decimal.Decimal `db:"amount"`
	Status          string          `db:"status"`
	Reminder        string          `db:"reminder"`
	Location        string          `db:"location"`
	PianoType       string          `db:"piano_type"`
	AuditFields
}

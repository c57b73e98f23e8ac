package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PianoType is the kind of instrument an appointment is booked for.
type PianoType string

const (
	Upright PianoType = "upright"
	Grand   PianoType = "grand"
	Digital PianoType = "digital"
)

// AppointmentStatus tracks where a booking is in its lifecycle.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is a scheduling record for a service booking.
type Appointment struct {
	AppointmentID   string            `json:"id"`
	Client          string            `json:"client"`
	Service         string            `json:"service"`
	Date            time.Time         `json:"date"`
	Time            string            `json:"time"`
	DurationMinutes int               `json:"durationMinutes"`
	Amount          decimal.Decimal   `json:"amount"`
	Status          AppointmentStatus `json:"status"`
	Reminder        string            `json:"reminder"`
	Location        string            `json:"location"`
	PianoType       PianoType         `json:"pianoType"`
	AuditFields
}

// Validate checks required fields and enum membership. An empty status is
// defaulted to pending before the checks run.
func (a *Appointment) Validate() error {
	required := []struct {
		name  string
		value *string
	}{
		{"client", &a.Client},
		{"service", &a.Service},
		{"time", &a.Time},
		{"reminder", &a.Reminder},
		{"location", &a.Location},
	}
	for _, field := range required {
		*field.value = strings.TrimSpace(*field.value)
		if *field.value == "" {
			return validationError(field.name + " is required")
		}
	}
	if a.Date.IsZero() {
		return validationError("date is required")
	}
	if a.DurationMinutes <= 0 {
		return validationError("duration must be a positive number of minutes")
	}

	a.PianoType = PianoType(strings.ToLower(strings.TrimSpace(string(a.PianoType))))
	switch a.PianoType {
	case Upright, Grand, Digital:
	case "":
		return validationError("pianoType is required")
	default:
		return validationError("pianoType must be one of: upright, grand, digital")
	}

	a.Status = AppointmentStatus(strings.ToLower(strings.TrimSpace(string(a.Status))))
	switch a.Status {
	case "":
		a.Status = StatusPending
	case StatusPending, StatusCompleted, StatusCancelled:
	default:
		return validationError("status must be one of: pending, completed, cancelled")
	}
	return nil
}

package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AppointmentRequest is the full field set for creating or replacing an appointment.
type AppointmentRequest struct {
	Client    string       `json:"client" binding:"required"`
	Service   string       `json:"service" binding:"required"`
	Date      DateInput    `json:"date"`
	Time      string       `json:"time" binding:"required"`
	Duration  NumericInput `json:"duration"`
	Amount    NumericInput `json:"amount"`
	Status    string       `json:"status" binding:"omitempty,oneof=pending completed cancelled"`
	Reminder  string       `json:"reminder" binding:"required"`
	Location  string       `json:"location" binding:"required"`
	PianoType string       `json:"pianoType" binding:"required,oneof=upright grand digital"`
}

// ToAppointment coerces the request into a domain appointment. Numeric and
// date fields are parsed here and rejected with a validation error when malformed.
func (r AppointmentRequest) ToAppointment() (domain.Appointment, error) {
	amount, err := r.Amount.Decimal("amount")
	if err != nil {
		return domain.Appointment{}, err
	}
	duration, err := r.Duration.Int("duration")
	if err != nil {
		return domain.Appointment{}, err
	}
	date, err := r.Date.Time("date")
	if err != nil {
		return domain.Appointment{}, err
	}
	return domain.Appointment{
		Client:          r.Client,
		Service:         r.Service,
		Date:            date,
		Time:            r.Time,
		DurationMinutes: duration,
		Amount:          amount,
		Status:          domain.AppointmentStatus(r.Status),
		Reminder:        r.Reminder,
		Location:        r.Location,
		PianoType:       domain.PianoType(r.PianoType),
	}, nil
}

// AppointmentResponse defines the data returned for an appointment.
type AppointmentResponse struct {
	AppointmentID   string          `json:"id"`
	Client          string          `json:"client"`
	Service         string          `json:"service"`
	Date            time.Time       `json:"date"`
	Time            string          `json:"time"`
	DurationMinutes int             `json:"duration"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	Reminder        string          `json:"reminder"`
	Location        string          `json:"location"`
	PianoType       string          `json:"pianoType"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ToAppointmentResponse converts a domain.Appointment to AppointmentResponse DTO
func ToAppointmentResponse(a *domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		AppointmentID:   a.AppointmentID,
		Client:          a.Client,
		Service:         a.Service,
		Date:            a.Date,
		Time:            a.Time,
		DurationMinutes: a.DurationMinutes,
		Amount:          a.Amount,
		Status:          string(a.Status),
		Reminder:        a.Reminder,
		Location:        a.Location,
		PianoType:       string(a.PianoType),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// ToListAppointmentResponse converts a slice of domain.Appointment to a slice of DTOs
func ToListAppointmentResponse(appointments []domain.Appointment) []AppointmentResponse {
	res := make([]AppointmentResponse, len(appointments))
	for i := range appointments {
		res[i] = ToAppointmentResponse(&appointments[i])
	}
	return res
}

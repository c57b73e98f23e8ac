package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
)

// AppointmentReader defines read operations for appointment data.
type AppointmentReader interface {
	FindAppointmentByID(ctx context.Context, appointmentID string) (*domain.Appointment, error)

	// ListAppointments retrieves all appointments ordered by date, latest first.
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
}

// AppointmentWriter defines write operations for appointment data.
type AppointmentWriter interface {
	SaveAppointment(ctx context.Context, appointment domain.Appointment) error

	// ReplaceAppointment overwrites every caller-controlled field. CreatedAt is preserved.
	ReplaceAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error)

	DeleteAppointment(ctx context.Context, appointmentID string) error
}

// AppointmentRepositoryFacade combines all appointment-related repository interfaces.
type AppointmentRepositoryFacade interface {
	AppointmentReader
	AppointmentWriter
}

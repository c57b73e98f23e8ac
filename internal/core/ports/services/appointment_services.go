package services

import (
	"context"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
)

// AppointmentReaderSvc defines read operations for appointment data
type AppointmentReaderSvc interface {
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
	GetAppointmentByID(ctx context.Context, appointmentID string) (*domain.Appointment, error)
}

// AppointmentWriterSvc defines write operations for appointment data
type AppointmentWriterSvc interface {
	CreateAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error)

	// UpdateAppointment replaces every field of an existing appointment.
	UpdateAppointment(ctx context.Context, appointmentID string, appointment domain.Appointment) (*domain.Appointment, error)

	DeleteAppointment(ctx context.Context, appointmentID string) error
}

// AppointmentSvcFacade combines all appointment-related service interfaces
type AppointmentSvcFacade interface {
	AppointmentReaderSvc
	AppointmentWriterSvc
}

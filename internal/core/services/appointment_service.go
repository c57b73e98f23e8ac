package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/google/uuid"
)

type appointmentService struct {
	BaseService
	appointmentRepo portsrepo.AppointmentRepositoryFacade
}

func NewAppointmentService(repo portsrepo.AppointmentRepositoryFacade, options ...Option) portssvc.AppointmentSvcFacade {
	return &appointmentService{
		BaseService:     newBaseService(options...),
		appointmentRepo: repo,
	}
}

func (s *appointmentService) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	appointments, err := s.appointmentRepo.ListAppointments(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list appointments")
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	if appointments == nil {
		return []domain.Appointment{}, nil
	}
	return appointments, nil
}

func (s *appointmentService) GetAppointmentByID(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	id, err := parseID(appointmentID, "appointment")
	if err != nil {
		return nil, err
	}
	appointment, err := s.appointmentRepo.FindAppointmentByID(ctx, id)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find appointment", slog.String("appointment_id", id))
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

func (s *appointmentService) CreateAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error) {
	if err := appointment.Validate(); err != nil {
		return nil, err
	}
	appointment.AppointmentID = uuid.NewString()
	appointment.Date = appointment.Date.UTC()
	appointment.AuditFields = domain.NewAuditFields(s.Now())

	if err := s.appointmentRepo.SaveAppointment(ctx, appointment); err != nil {
		s.LogError(ctx, err, "Failed to save appointment", slog.String("appointment_id", appointment.AppointmentID))
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.LogInfo(ctx, "Appointment created",
		slog.String("appointment_id", appointment.AppointmentID),
		slog.String("status", string(appointment.Status)))
	return &appointment, nil
}

// UpdateAppointment replaces the stored appointment. A status omitted by the
// caller resets to pending, matching create.
func (s *appointmentService) UpdateAppointment(ctx context.Context, appointmentID string, appointment domain.Appointment) (*domain.Appointment, error) {
	id, err := parseID(appointmentID, "appointment")
	if err != nil {
		return nil, err
	}
	if err := appointment.Validate(); err != nil {
		return nil, err
	}
	appointment.AppointmentID = id
	appointment.Date = appointment.Date.UTC()
	appointment.Touch(s.Now())

	updated, err := s.appointmentRepo.ReplaceAppointment(ctx, appointment)
	if err != nil {
		s.logFailure(ctx, err, "Failed to update appointment", slog.String("appointment_id", id))
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	s.LogInfo(ctx, "Appointment updated", slog.String("appointment_id", id))
	return updated, nil
}

func (s *appointmentService) DeleteAppointment(ctx context.Context, appointmentID string) error {
	id, err := parseID(appointmentID, "appointment")
	if err != nil {
		return err
	}
	if err := s.appointmentRepo.DeleteAppointment(ctx, id); err != nil {
		s.logFailure(ctx, err, "Failed to delete appointment", slog.String("appointment_id", id))
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	s.LogInfo(ctx, "Appointment deleted", slog.String("appointment_id", id))
	return nil
}

package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker_app/internal/models"
	"github.com/SscSPs/finance_tracker_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const appointmentColumns = `appointment_id, client, service, appointment_date, appointment_time, duration_minutes,
	amount, status, reminder, location, piano_type, created_at, updated_at`

type PgxAppointmentRepository struct {
	BaseRepository
}

func newPgxAppointmentRepository(pool *pgxpool.Pool, opTimeout time.Duration) portsrepo.AppointmentRepositoryFacade {
	return &PgxAppointmentRepository{
		BaseRepository: BaseRepository{Pool: pool, OpTimeout: opTimeout},
	}
}

var _ portsrepo.AppointmentRepositoryFacade = (*PgxAppointmentRepository)(nil)

func scanAppointment(row pgx.Row) (models.Appointment, error) {
	var a models.Appointment
	err := row.Scan(
		&a.AppointmentID,
		&a.Client,
		&a.Service,
		&a.AppointmentDate,
		&a.AppointmentTime,
		&a.DurationMinutes,
		&a.Amount,
		&a.Status,
		&a.Reminder,
		&a.Location,
		&a.PianoType,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

func (r *PgxAppointmentRepository) SaveAppointment(ctx context.Context, appointment domain.Appointment) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelAppointment(appointment)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		m.AppointmentID, m.Client, m.Service, m.AppointmentDate, m.AppointmentTime, m.DurationMinutes,
		m.Amount, m.Status, m.Reminder, m.Location, m.PianoType, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return translateError(ctx, err, "failed to save appointment")
	}
	return nil
}

func (r *PgxAppointmentRepository) FindAppointmentByID(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m, err := scanAppointment(r.Pool.QueryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE appointment_id = $1`, appointmentID))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFoundError("appointment not found")
		}
		return nil, translateError(ctx, err, "failed to find appointment")
	}
	appointment := mapping.ToDomainAppointment(m)
	return &appointment, nil
}

// ListAppointments retrieves all appointments ordered by date, latest first.
func (r *PgxAppointmentRepository) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.Pool.Query(ctx, `SELECT `+appointmentColumns+` FROM appointments ORDER BY appointment_date DESC, created_at DESC`)
	if err != nil {
		return nil, translateError(ctx, err, "failed to query appointments")
	}
	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Appointment, error) {
		return scanAppointment(row)
	})
	if err != nil {
		return nil, translateError(ctx, err, "failed to scan appointments")
	}
	return mapping.ToDomainAppointmentSlice(ms), nil
}

// ReplaceAppointment overwrites every caller-controlled field; created_at is kept.
func (r *PgxAppointmentRepository) ReplaceAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelAppointment(appointment)
	stored, err := scanAppointment(r.Pool.QueryRow(ctx, `
		UPDATE appointments SET
			client = $2, service = $3, appointment_date = $4, appointment_time = $5, duration_minutes = $6,
			amount = $7, status = $8, reminder = $9, location = $10, piano_type = $11, updated_at = $12
		WHERE appointment_id = $1
		RETURNING `+appointmentColumns,
		m.AppointmentID, m.Client, m.Service, m.AppointmentDate, m.AppointmentTime, m.DurationMinutes,
		m.Amount, m.Status, m.Reminder, m.Location, m.PianoType, m.UpdatedAt,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFoundError("appointment not found")
		}
		return nil, translateError(ctx, err, "failed to update appointment")
	}
	updated := mapping.ToDomainAppointment(stored)
	return &updated, nil
}

func (r *PgxAppointmentRepository) DeleteAppointment(ctx context.Context, appointmentID string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM appointments WHERE appointment_id = $1`, appointmentID)
	if err != nil {
		return translateError(ctx, err, "failed to delete appointment")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("appointment not found")
	}
	return nil
}

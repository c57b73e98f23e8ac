package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker_app/internal/models"
	"github.com/SscSPs/finance_tracker_app/internal/utils/mapping"
)

const appointmentColumns = `appointment_id, client, service, appointment_date, appointment_time, duration_minutes,
	amount, status, reminder, location, piano_type, created_at, updated_at`

type appointmentRepository struct {
	store *Store
}

var _ portsrepo.AppointmentRepositoryFacade = (*appointmentRepository)(nil)

func scanAppointment(row scanner) (models.Appointment, error) {
	var (
		a                          models.Appointment
		amount                     string
		date, createdAt, updatedAt int64
	)
	err := row.Scan(
		&a.AppointmentID,
		&a.Client,
		&a.Service,
		&date,
		&a.AppointmentTime,
		&a.DurationMinutes,
		&amount,
		&a.Status,
		&a.Reminder,
		&a.Location,
		&a.PianoType,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return a, err
	}
	if a.Amount, err = parseAmount(amount); err != nil {
		return a, err
	}
	a.AppointmentDate = fromMillis(date)
	a.CreatedAt = fromMillis(createdAt)
	a.UpdatedAt = fromMillis(updatedAt)
	return a, nil
}

func (r *appointmentRepository) SaveAppointment(ctx context.Context, appointment domain.Appointment) error {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelAppointment(appointment)
	_, err := r.store.sqlDB.ExecContext(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.AppointmentID, m.Client, m.Service, toMillis(m.AppointmentDate), m.AppointmentTime, m.DurationMinutes,
		m.Amount.String(), m.Status, m.Reminder, m.Location, m.PianoType, toMillis(m.CreatedAt), toMillis(m.UpdatedAt),
	)
	if err != nil {
		return translateError(ctx, err, "failed to save appointment")
	}
	return nil
}

func (r *appointmentRepository) FindAppointmentByID(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	m, err := scanAppointment(r.store.sqlDB.QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE appointment_id = ?`, appointmentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("appointment not found")
		}
		return nil, translateError(ctx, err, "failed to find appointment")
	}
	appointment := mapping.ToDomainAppointment(m)
	return &appointment, nil
}

func (r *appointmentRepository) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	rows, err := r.store.sqlDB.QueryContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments ORDER BY appointment_date DESC, created_at DESC`)
	if err != nil {
		return nil, translateError(ctx, err, "failed to query appointments")
	}
	defer rows.Close()

	var ms []models.Appointment
	for rows.Next() {
		m, err := scanAppointment(rows)
		if err != nil {
			return nil, translateError(ctx, err, "failed to scan appointments")
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(ctx, err, "failed to scan appointments")
	}
	return mapping.ToDomainAppointmentSlice(ms), nil
}

func (r *appointmentRepository) ReplaceAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelAppointment(appointment)
	stored, err := scanAppointment(r.store.sqlDB.QueryRowContext(ctx, `
		UPDATE appointments SET
			client = ?, service = ?, appointment_date = ?, appointment_time = ?, duration_minutes = ?,
			amount = ?, status = ?, reminder = ?, location = ?, piano_type = ?, updated_at = ?
		WHERE appointment_id = ?
		RETURNING `+appointmentColumns,
		m.Client, m.Service, toMillis(m.AppointmentDate), m.AppointmentTime, m.DurationMinutes,
		m.Amount.String(), m.Status, m.Reminder, m.Location, m.PianoType, toMillis(m.UpdatedAt),
		m.AppointmentID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("appointment not found")
		}
		return nil, translateError(ctx, err, "failed to update appointment")
	}
	updated := mapping.ToDomainAppointment(stored)
	return &updated, nil
}

func (r *appointmentRepository) DeleteAppointment(ctx context.Context, appointmentID string) error {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	res, err := r.store.sqlDB.ExecContext(ctx, `DELETE FROM appointments WHERE appointment_id = ?`, appointmentID)
	if err != nil {
		return translateError(ctx, err, "failed to delete appointment")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return translateError(ctx, err, "failed to delete appointment")
	}
	if n == 0 {
		return apperrors.NewNotFoundError("appointment not found")
	}
	return nil
}

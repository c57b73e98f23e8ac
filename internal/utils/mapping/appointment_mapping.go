package mapping

import (
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/models"
)

// ToModelAppointment converts a domain Appointment to a model Appointment
func ToModelAppointment(d domain.Appointment) models.Appointment {
	return models.Appointment{
		AppointmentID:   d.AppointmentID,
		Client:          d.Client,
		Service:         d.Service,
		AppointmentDate: d.Date,
		AppointmentTime: d.Time,
		DurationMinutes: d.DurationMinutes,
		Amount:          d.Amount,
		Status:          string(d.Status),
		Reminder:        d.Reminder,
		Location:        d.Location,
		PianoType:       string(d.PianoType),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAppointment converts a model Appointment to a domain Appointment
func ToDomainAppointment(m models.Appointment) domain.Appointment {
	return domain.Appointment{
		AppointmentID:   m.AppointmentID,
		Client:          m.Client,
		Service:         m.Service,
		Date:            m.AppointmentDate.UTC(),
		Time:            m.AppointmentTime,
		DurationMinutes: m.DurationMinutes,
		Amount:          m.Amount,
		Status:          domain.AppointmentStatus(m.Status),
		Reminder:        m.Reminder,
		Location:        m.Location,
		PianoType:       domain.PianoType(m.PianoType),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAppointmentSlice converts a slice of model Appointments to a slice of domain Appointments
func ToDomainAppointmentSlice(ms []models.Appointment) []domain.Appointment {
	ds := make([]domain.Appointment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAppointment(m)
	}
	return ds
}

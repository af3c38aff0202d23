package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCanceled  AppointmentStatus = "canceled"
)

// Appointment represents a booked appointment in the system.
// Appointments are never physically deleted: cancellation is a status change,
// canceled rows stay for history and stop counting against slot exclusivity.
type Appointment struct {
	ID int64

	// StartUTC и EndUTC абсолютные моменты времени в UTC.
	// EndUTC всегда равен StartUTC + ServiceDuration и никогда не меняется отдельно.
	StartUTC time.Time
	EndUTC   time.Time

	// PhoneNumber контакт клиента, нормализованный к международному формату
	PhoneNumber string

	// ConfirmationCode публичный ключ доступа к бронированию.
	// Хранится в верхнем регистре, уникален среди всех когда-либо созданных записей.
	ConfirmationCode string

	Status AppointmentStatus

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the appointment blocks its slot (pending or confirmed)
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsConfirmed returns true if the appointment has been confirmed
func (a *Appointment) IsConfirmed() bool {
	return a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been canceled.
// Canceled is a terminal status: no further transitions are allowed.
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCanceled
}

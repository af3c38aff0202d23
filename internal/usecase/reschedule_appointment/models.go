package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на перенос бронирования
type Request struct {
	ConfirmationCode string // Код подтверждения существующего бронирования
	NewDate          string // Новая дата "2025-06-02"
	NewTime          string // Новая метка времени "09:00 AM"
}

// Appointment данные одного бронирования в ответе
type Appointment struct {
	ID               int64      // ID бронирования
	StartDatetimeUTC time.Time  // Момент начала в UTC
	EndDatetimeUTC   time.Time  // Момент окончания в UTC
	PhoneNumber      string     // Телефон клиента
	ConfirmationCode string     // Код подтверждения
	Status           string     // Статус
	CancelledAt      *time.Time // Время отмены (для старого бронирования)
	CreatedAt        time.Time  // Время создания
}

// Response модель ответа: отменённое старое бронирование и новое подтверждённое.
// У нового бронирования свежий код подтверждения.
type Response struct {
	Old *Appointment
	New *Appointment
}

// fromDomain конвертирует доменную модель в DTO ответа
func fromDomain(a *domain.Appointment) *Appointment {
	return &Appointment{
		ID:               a.ID,
		StartDatetimeUTC: a.StartUTC,
		EndDatetimeUTC:   a.EndUTC,
		PhoneNumber:      a.PhoneNumber,
		ConfirmationCode: a.ConfirmationCode,
		Status:           string(a.Status),
		CancelledAt:      a.CancelledAt,
		CreatedAt:        a.CreatedAt,
	}
}

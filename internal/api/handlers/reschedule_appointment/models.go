package reschedule_appointment

import (
	"time"

	rescheduleAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/reschedule_appointment"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	ConfirmationCode string `json:"confirmationCode"`
	NewDate          string `json:"newDate"` // "2025-06-02"
	NewTime          string `json:"newTime"` // "09:00 AM"
}

// AppointmentPayload данные одного бронирования в ответе
type AppointmentPayload struct {
	ID               int64      `json:"id"`
	StartDatetimeUTC time.Time  `json:"startDatetimeUtc"`
	EndDatetimeUTC   time.Time  `json:"endDatetimeUtc"`
	PhoneNumber      string     `json:"phoneNumber"`
	ConfirmationCode string     `json:"confirmationCode"`
	Status           string     `json:"status"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// RescheduleAppointmentResponse HTTP response model: отменённое старое
// бронирование и новое со свежим кодом подтверждения
type RescheduleAppointmentResponse struct {
	Success        bool               `json:"success"`
	Message        string             `json:"message"`
	OldAppointment AppointmentPayload `json:"oldAppointment"`
	NewAppointment AppointmentPayload `json:"newAppointment"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest() *rescheduleAppointment.Request {
	return &rescheduleAppointment.Request{
		ConfirmationCode: r.ConfirmationCode,
		NewDate:          r.NewDate,
		NewTime:          r.NewTime,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduleAppointmentResponse {
	return &RescheduleAppointmentResponse{
		Success:        true,
		Message:        msgRescheduled,
		OldAppointment: toPayload(resp.Old),
		NewAppointment: toPayload(resp.New),
	}
}

func toPayload(a *rescheduleAppointment.Appointment) AppointmentPayload {
	return AppointmentPayload{
		ID:               a.ID,
		StartDatetimeUTC: a.StartDatetimeUTC,
		EndDatetimeUTC:   a.EndDatetimeUTC,
		PhoneNumber:      a.PhoneNumber,
		ConfirmationCode: a.ConfirmationCode,
		Status:           a.Status,
		CancelledAt:      a.CancelledAt,
		CreatedAt:        a.CreatedAt,
	}
}

package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// VerifyRequest запрос на подтверждение бронирования кодом
type VerifyRequest struct {
	AppointmentID    int64  `json:"appointmentId"`
	ConfirmationCode string `json:"confirmationCode"`
}

// Response модели

// AppointmentResponse ответ с данными бронирования
type AppointmentResponse struct {
	ID               int64      `json:"id"`
	StartDatetimeUTC time.Time  `json:"startDatetimeUtc"`
	EndDatetimeUTC   time.Time  `json:"endDatetimeUtc"`
	PhoneNumber      string     `json:"phoneNumber"`
	ConfirmationCode string     `json:"confirmationCode"`
	Status           string     `json:"status"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
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

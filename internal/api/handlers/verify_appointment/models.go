package verify_appointment

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// VerifyAppointmentRequest HTTP request model
type VerifyAppointmentRequest struct {
	AppointmentID    int64  `json:"appointmentId"`
	ConfirmationCode string `json:"confirmationCode"`
}

// AppointmentPayload данные подтверждённого бронирования в ответе
type AppointmentPayload struct {
	ID               int64  `json:"id"`
	ConfirmationCode string `json:"confirmationCode"`
	Status           string `json:"status"`
}

// VerifyAppointmentResponse HTTP response model
type VerifyAppointmentResponse struct {
	Success     bool               `json:"success"`
	Message     string             `json:"message"`
	Appointment AppointmentPayload `json:"appointment"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *VerifyAppointmentRequest) ToServiceRequest() *models.VerifyRequest {
	return &models.VerifyRequest{
		AppointmentID:    r.AppointmentID,
		ConfirmationCode: r.ConfirmationCode,
	}
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.AppointmentResponse) *VerifyAppointmentResponse {
	return &VerifyAppointmentResponse{
		Success: true,
		Message: msgVerified,
		Appointment: AppointmentPayload{
			ID:               resp.ID,
			ConfirmationCode: resp.ConfirmationCode,
			Status:           resp.Status,
		},
	}
}

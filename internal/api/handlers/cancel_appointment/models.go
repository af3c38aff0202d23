package cancel_appointment

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	ConfirmationCode string `json:"confirmationCode"`
}

// CancelAppointmentResponse HTTP response model
type CancelAppointmentResponse struct {
	Success     bool                        `json:"success"`
	Message     string                      `json:"message"`
	Appointment *models.AppointmentResponse `json:"appointment"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.AppointmentResponse) *CancelAppointmentResponse {
	return &CancelAppointmentResponse{
		Success:     true,
		Message:     msgCancelled,
		Appointment: resp,
	}
}

package create_appointment

import (
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	Date  string `json:"date"`  // "2025-06-02"
	Time  string `json:"time"`  // "09:00 AM"
	Name  string `json:"name"`  // Имя клиента
	Phone string `json:"phone"` // Телефон клиента
}

// AppointmentPayload данные созданного бронирования в ответе
type AppointmentPayload struct {
	ID               int64  `json:"id"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	ConfirmationCode string `json:"confirmationCode"`
	Status           string `json:"status"`
}

// CreateAppointmentResponse HTTP response model
type CreateAppointmentResponse struct {
	Success     bool               `json:"success"`
	Message     string             `json:"message"`
	Appointment AppointmentPayload `json:"appointment"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() *createAppointment.Request {
	return &createAppointment.Request{
		Date:  r.Date,
		Time:  r.Time,
		Name:  r.Name,
		Phone: r.Phone,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		Success: true,
		Message: msgCreated,
		Appointment: AppointmentPayload{
			ID:               resp.ID,
			Date:             resp.Date,
			Time:             resp.Time,
			Name:             resp.Name,
			Phone:            resp.Phone,
			ConfirmationCode: resp.ConfirmationCode,
			Status:           resp.Status,
		},
	}
}

package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на создание бронирования.
// Поля приходят от клиента как есть и валидируются usecase-ом.
type Request struct {
	Date  string // Дата слота "2025-06-02"
	Time  string // Метка времени слота "09:00 AM"
	Name  string // Имя клиента (не сохраняется, возвращается в ответе)
	Phone string // Телефон клиента
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               int64     // ID созданного бронирования
	Date             string    // Дата слота, как была запрошена
	Time             string    // Метка времени слота, как была запрошена
	Name             string    // Имя клиента
	Phone            string    // Телефон, нормализованный к международному формату
	ConfirmationCode string    // Код подтверждения
	Status           string    // Статус бронирования (pending)
	StartDatetimeUTC time.Time // Момент начала в UTC
	EndDatetimeUTC   time.Time // Момент окончания в UTC
	CreatedAt        time.Time // Время создания
}

// newResponse собирает ответ из созданной доменной записи и исходного запроса
func newResponse(appt *domain.Appointment, req *Request) *Response {
	return &Response{
		ID:               appt.ID,
		Date:             req.Date,
		Time:             req.Time,
		Name:             req.Name,
		Phone:            appt.PhoneNumber,
		ConfirmationCode: appt.ConfirmationCode,
		Status:           string(appt.Status),
		StartDatetimeUTC: appt.StartUTC,
		EndDatetimeUTC:   appt.EndUTC,
		CreatedAt:        appt.CreatedAt,
	}
}

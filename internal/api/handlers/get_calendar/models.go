package get_calendar

import (
	"time"

	getCalendar "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_calendar"
)

// CalendarResponse HTTP response model с календарём доступности
type CalendarResponse struct {
	Success        bool                                `json:"success"`
	AvailableDates []string                            `json:"availableDates"`
	Availability   map[string][]getCalendar.SlotStatus `json:"availability"`
	Timestamp      time.Time                           `json:"timestamp"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	return &CalendarResponse{
		Success:        true,
		AvailableDates: resp.AvailableDates,
		Availability:   resp.Availability,
		Timestamp:      resp.GeneratedAt,
	}
}

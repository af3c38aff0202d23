package get_calendar

import "time"

// Slot statuses
const (
	StatusAvailable = "available"
	StatusBooked    = "booked"
)

// SlotStatus статус одного слота в календаре
type SlotStatus struct {
	Time   string `json:"time"`   // Метка времени слота, например "09:00 AM"
	Status string `json:"status"` // "available" или "booked"
}

// Response модель ответа с календарём доступности.
// AvailableDates содержит только даты, у которых остался хотя бы один
// свободный слот; Availability содержит все даты окна со всеми слотами.
type Response struct {
	AvailableDates []string                // Даты со свободными слотами, по порядку
	Availability   map[string][]SlotStatus // Дата -> слоты этой даты в порядке расписания
	GeneratedAt    time.Time               // Момент расчёта
}

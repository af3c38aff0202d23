package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Default schedule values
const (
	DefaultTimezone   = "Asia/Dubai"
	DefaultWindowDays = 30
)

// DefaultBusinessDays рабочие дни по умолчанию (Пн-Пт)
var DefaultBusinessDays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
}

// DefaultDailyLabels метки слотов на каждый рабочий день, в порядке отображения
var DefaultDailyLabels = []types.TimeLabel{
	"09:00 AM",
	"11:00 AM",
	"01:00 PM",
	"03:00 PM",
	"05:00 PM",
}

// ScheduleConfig недельное расписание, из которого выводятся бронируемые слоты.
// Все метки интерпретируются в одном фиксированном часовом поясе бизнеса.
type ScheduleConfig struct {
	Timezone     string
	WindowDays   int
	BusinessDays []time.Weekday
	DailyLabels  []types.TimeLabel
}

// DefaultScheduleConfig возвращает расписание по умолчанию
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		Timezone:     DefaultTimezone,
		WindowDays:   DefaultWindowDays,
		BusinessDays: DefaultBusinessDays,
		DailyLabels:  DefaultDailyLabels,
	}
}

// Location резолвит часовой пояс бизнеса по правилам IANA tz database.
// Никаких фиксированных смещений: если пояс наблюдает DST, конвертация
// остается корректной.
func (c ScheduleConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// IsBusinessDay проверяет, входит ли день недели в рабочие дни
func (c ScheduleConfig) IsBusinessDay(d time.Weekday) bool {
	for _, b := range c.BusinessDays {
		if b == d {
			return true
		}
	}
	return false
}

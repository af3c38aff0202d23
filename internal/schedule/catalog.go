// Package schedule выводит бронируемые слоты из фиксированного недельного
// расписания и конвертирует пары (дата, метка времени) в абсолютные UTC моменты.
//
// Пакет чистый: никакого состояния кроме конфигурации, никаких обращений к БД.
// Каталог слотов - ленивая перезапускаемая последовательность, детерминированная
// относительно переданного "сейчас"; пересоздавать ее дешево.
package schedule

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var (
	// ErrInvalidDate возвращается при некорректном формате или несуществующей дате
	ErrInvalidDate = errors.New("schedule: invalid date, expected YYYY-MM-DD")

	// ErrInvalidTimezone возвращается, когда часовой пояс из конфигурации не резолвится
	ErrInvalidTimezone = errors.New("schedule: invalid business timezone")

	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Slot бронируемый слот: дата и метка времени в поясе бизнеса
// плюс предвычисленный абсолютный момент начала в UTC
type Slot struct {
	Date     string
	Label    types.TimeLabel
	StartUTC time.Time
}

// Catalog каталог бронируемых слотов для скользящего окна
type Catalog struct {
	cfg domain.ScheduleConfig
	loc *time.Location
}

// NewCatalog создает каталог, резолвя часовой пояс и валидируя метки расписания
func NewCatalog(cfg domain.ScheduleConfig) (*Catalog, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, cfg.Timezone, err)
	}

	for _, label := range cfg.DailyLabels {
		if err := label.Validate(); err != nil {
			return nil, fmt.Errorf("schedule: invalid daily label %q: %w", label, err)
		}
	}

	return &Catalog{cfg: cfg, loc: loc}, nil
}

// Location возвращает часовой пояс бизнеса
func (c *Catalog) Location() *time.Location {
	return c.loc
}

// WindowDays возвращает размер окна бронирования в днях
func (c *Catalog) WindowDays() int {
	return c.cfg.WindowDays
}

// ToUTC конвертирует дату "YYYY-MM-DD" и 12-часовую метку времени в момент UTC.
// Настенное время интерпретируется в поясе бизнеса по правилам IANA tz database,
// поэтому переходы на летнее время (если пояс их наблюдает) учитываются корректно.
func (c *Catalog) ToUTC(dateStr string, label types.TimeLabel) (time.Time, error) {
	if !dateRegex.MatchString(dateStr) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, dateStr)
	}

	// ParseInLocation отбрасывает несуществующие даты вроде 2025-02-30
	day, err := time.ParseInLocation(domain.DateFormat, dateStr, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, dateStr)
	}

	hour, minute, err := label.Clock()
	if err != nil {
		return time.Time{}, err
	}

	local := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, c.loc)
	return local.UTC(), nil
}

// Slots возвращает ленивую последовательность слотов окна, начиная с "сегодня"
// в поясе бизнеса: WindowDays подряд идущих календарных дней, только рабочие дни,
// метки в порядке конфигурации. Последовательность можно обходить многократно.
func (c *Catalog) Slots(now time.Time) iter.Seq[Slot] {
	local := now.In(c.loc)
	first := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)

	return func(yield func(Slot) bool) {
		for i := 0; i < c.cfg.WindowDays; i++ {
			day := first.AddDate(0, 0, i)
			if !c.cfg.IsBusinessDay(day.Weekday()) {
				continue
			}

			dateStr := day.Format(domain.DateFormat)
			for _, label := range c.cfg.DailyLabels {
				// Метки провалидированы в NewCatalog, Clock не может вернуть ошибку
				hour, minute, _ := label.Clock()
				start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, c.loc)

				if !yield(Slot{Date: dateStr, Label: label, StartUTC: start.UTC()}) {
					return
				}
			}
		}
	}
}

// Contains проверяет, что слот (дата, метка) входит в каталог окна:
// дата в пределах окна, день рабочий, метка из расписания
func (c *Catalog) Contains(now time.Time, dateStr string, label types.TimeLabel) bool {
	day, err := time.ParseInLocation(domain.DateFormat, dateStr, c.loc)
	if err != nil {
		return false
	}

	local := now.In(c.loc)
	first := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
	last := first.AddDate(0, 0, c.cfg.WindowDays-1)

	if day.Before(first) || day.After(last) {
		return false
	}
	if !c.cfg.IsBusinessDay(day.Weekday()) {
		return false
	}

	for _, l := range c.cfg.DailyLabels {
		if l == label {
			return true
		}
	}
	return false
}

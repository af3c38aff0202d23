package get_calendar

import (
	"context"
	"iter"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/schedule"
)

// AppointmentRepository интерфейс репозитория бронирований
type AppointmentRepository interface {
	// ListActiveInRange получает активные бронирования с началом в [from, to)
	ListActiveInRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
}

// SlotCatalog интерфейс каталога слотов расписания
type SlotCatalog interface {
	Slots(now time.Time) iter.Seq[schedule.Slot]
	Location() *time.Location
	WindowDays() int
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

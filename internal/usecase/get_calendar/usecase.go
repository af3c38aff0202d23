package get_calendar

import (
	"context"
	"fmt"
	"time"
)

// UseCase use case расчёта календаря доступности: каталог слотов окна
// пересекается с активными бронированиями из хранилища
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalog         SlotCatalog
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalog SlotCatalog,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalog:         catalog,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет расчёт календаря доступности.
//
// Слот занят тогда и только тогда, когда момент начала какого-либо активного
// бронирования В ТОЧНОСТИ равен моменту начала слота в UTC. Сравниваются
// абсолютные моменты, а не строки дат и меток: обе стороны могли быть
// вычислены независимо, и равенство обязано сходиться с точностью до секунды.
//
// Чтение чистое: либо весь расчёт успешен, либо вызывающий получает ошибку
// без частично заполненного календаря.
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()

	// 1. Границы окна: от "сейчас" до конца последнего дня окна в поясе бизнеса
	local := now.In(uc.catalog.Location())
	windowEnd := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, uc.catalog.Location()).
		AddDate(0, 0, uc.catalog.WindowDays()).UTC()

	// 2. Активные бронирования окна; прошедшие моменты слоты уже не блокируют
	active, err := uc.appointmentRepo.ListActiveInRange(ctx, now.UTC(), windowEnd)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to list active appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list active appointments: %v", ErrUnavailable, err)
	}

	bookedInstants := make(map[int64]struct{}, len(active))
	for _, appt := range active {
		bookedInstants[appt.StartUTC.Unix()] = struct{}{}
	}

	// 3. Обходим каталог и классифицируем каждый слот
	availability := make(map[string][]SlotStatus)
	dateOrder := make([]string, 0, uc.catalog.WindowDays())

	for slot := range uc.catalog.Slots(now) {
		if _, seen := availability[slot.Date]; !seen {
			dateOrder = append(dateOrder, slot.Date)
		}

		status := StatusAvailable
		if _, booked := bookedInstants[slot.StartUTC.Unix()]; booked {
			status = StatusBooked
		}

		availability[slot.Date] = append(availability[slot.Date], SlotStatus{
			Time:   slot.Label.String(),
			Status: status,
		})
	}

	// 4. В списке дат остаются только даты с хотя бы одним свободным слотом
	availableDates := make([]string, 0, len(dateOrder))
	for _, date := range dateOrder {
		for _, slot := range availability[date] {
			if slot.Status == StatusAvailable {
				availableDates = append(availableDates, date)
				break
			}
		}
	}

	uc.logger.Info("GetCalendar: %d dates in window, %d with free slots, %d active appointments",
		len(dateOrder), len(availableDates), len(active))

	return &Response{
		AvailableDates: availableDates,
		Availability:   availability,
		GeneratedAt:    now.UTC(),
	}, nil
}

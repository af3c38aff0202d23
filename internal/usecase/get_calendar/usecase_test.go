package get_calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/schedule"
)

// fakeRepo возвращает заранее заданный список активных бронирований
type fakeRepo struct {
	active []*domain.Appointment
	err    error
}

func (r *fakeRepo) ListActiveInRange(_ context.Context, _, _ time.Time) ([]*domain.Appointment, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.active, nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(t *testing.T, repo AppointmentRepository) *UseCase {
	t.Helper()

	catalog, err := schedule.NewCatalog(domain.DefaultScheduleConfig())
	require.NoError(t, err)

	uc := NewUseCase(repo, catalog, nopLogger{})
	// Понедельник 2025-06-02 08:00 по Дубаю
	uc.timeProvider = &fixedTime{now: time.Date(2025, 6, 2, 4, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_EmptyStore(t *testing.T) {
	uc := newTestUseCase(t, &fakeRepo{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	// 30 дней с понедельника 2025-06-02: 22 рабочих дня, все полностью свободны
	assert.Len(t, resp.AvailableDates, 22)
	assert.Len(t, resp.Availability, 22)

	for date, slots := range resp.Availability {
		require.Len(t, slots, 5, "date %s", date)
		for _, slot := range slots {
			assert.Equal(t, StatusAvailable, slot.Status)
		}
	}
}

func TestExecute_BookedSlotMarked(t *testing.T) {
	// Активное бронирование на 2025-06-02 09:00 AM (05:00 UTC в Дубае)
	booked := &domain.Appointment{
		ID:       1,
		StartUTC: time.Date(2025, 6, 2, 5, 0, 0, 0, time.UTC),
		EndUTC:   time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC),
		Status:   domain.StatusConfirmed,
	}
	uc := newTestUseCase(t, &fakeRepo{active: []*domain.Appointment{booked}})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	slots := resp.Availability["2025-06-02"]
	require.Len(t, slots, 5)
	assert.Equal(t, SlotStatus{Time: "09:00 AM", Status: StatusBooked}, slots[0])
	assert.Equal(t, SlotStatus{Time: "11:00 AM", Status: StatusAvailable}, slots[1])

	// Дата с оставшимися свободными слотами всё ещё доступна
	assert.Contains(t, resp.AvailableDates, "2025-06-02")
}

func TestExecute_FullyBookedDateExcluded(t *testing.T) {
	labels := []string{"09:00 AM", "11:00 AM", "01:00 PM", "03:00 PM", "05:00 PM"}
	starts := []int{5, 7, 9, 11, 13} // часы UTC для Дубая (UTC+4)

	var active []*domain.Appointment
	for i := range labels {
		active = append(active, &domain.Appointment{
			ID:       int64(i + 1),
			StartUTC: time.Date(2025, 6, 3, starts[i], 0, 0, 0, time.UTC),
			Status:   domain.StatusPending,
		})
	}
	uc := newTestUseCase(t, &fakeRepo{active: active})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	for _, slot := range resp.Availability["2025-06-03"] {
		assert.Equal(t, StatusBooked, slot.Status)
	}

	assert.NotContains(t, resp.AvailableDates, "2025-06-03")
	assert.Contains(t, resp.AvailableDates, "2025-06-02")
	// Полностью занятая дата остаётся в календаре со статусами слотов
	assert.Contains(t, resp.Availability, "2025-06-03")
}

func TestExecute_OffScheduleInstantIgnored(t *testing.T) {
	// Активная запись на момент, не совпадающий ни с одним слотом каталога
	offSchedule := &domain.Appointment{
		ID:       1,
		StartUTC: time.Date(2025, 6, 2, 5, 30, 0, 0, time.UTC),
		Status:   domain.StatusConfirmed,
	}
	uc := newTestUseCase(t, &fakeRepo{active: []*domain.Appointment{offSchedule}})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	for _, slot := range resp.Availability["2025-06-02"] {
		assert.Equal(t, StatusAvailable, slot.Status)
	}
}

func TestExecute_StoreFailure(t *testing.T) {
	uc := newTestUseCase(t, &fakeRepo{err: errors.New("connection refused")})

	resp, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Nil(t, resp)
}

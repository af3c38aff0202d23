package create_appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/schedule"
)

// fakeRepo in-memory репозиторий, воспроизводящий контракт уникальности БД:
// не более одного активного бронирования на момент начала
type fakeRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*domain.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[int64]*domain.Appointment)}
}

func (r *fakeRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.IsActive() && existing.StartUTC.Equal(appt.StartUTC) {
			return nil, appointmentRepo.ErrSlotTaken
		}
		if existing.ConfirmationCode == appt.ConfirmationCode {
			return nil, appointmentRepo.ErrCodeConflict
		}
	}

	r.nextID++
	stored := *appt
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.byID[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *fakeRepo) activeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, appt := range r.byID {
		if appt.IsActive() {
			n++
		}
	}
	return n
}

// fixedTime детерминированный провайдер времени
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

func validRequest() *Request {
	return &Request{
		Date:  "2025-06-02",
		Time:  "09:00 AM",
		Name:  "John O'Brien",
		Phone: "555-1234",
	}
}

func TestExecute_Success(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(t, repo)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2025-06-02", resp.Date)
	assert.Equal(t, "09:00 AM", resp.Time)
	assert.Equal(t, "John O'Brien", resp.Name)
	assert.Equal(t, "+2305551234", resp.Phone)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Len(t, resp.ConfirmationCode, 8)

	// Дубай UTC+4: 09:00 AM -> 05:00 UTC, окончание через час
	wantStart := time.Date(2025, 6, 2, 5, 0, 0, 0, time.UTC)
	assert.True(t, wantStart.Equal(resp.StartDatetimeUTC))
	assert.True(t, wantStart.Add(time.Hour).Equal(resp.EndDatetimeUTC))
}

func TestExecute_SlotTaken(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(t, repo)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1, repo.activeCount())
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "bad date format", mutate: func(r *Request) { r.Date = "02.06.2025" }},
		{name: "empty date", mutate: func(r *Request) { r.Date = "" }},
		{name: "24-hour time", mutate: func(r *Request) { r.Time = "09:00" }},
		{name: "empty name", mutate: func(r *Request) { r.Name = "" }},
		{name: "name with digits", mutate: func(r *Request) { r.Name = "R2D2" }},
		{name: "single letter name", mutate: func(r *Request) { r.Name = "J" }},
		{name: "phone too short", mutate: func(r *Request) { r.Phone = "12345" }},
		{name: "phone with letters", mutate: func(r *Request) { r.Phone = "555-CALL-NOW" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(t, newFakeRepo())

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_OutsideSchedule(t *testing.T) {
	uc := newTestUseCase(t, newFakeRepo())

	// Суббота
	req := validRequest()
	req.Date = "2025-06-07"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideSchedule)

	// За пределами окна
	req = validRequest()
	req.Date = "2025-08-01"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideSchedule)

	// Метка не из расписания
	req = validRequest()
	req.Time = "10:00 AM"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideSchedule)
}

func TestExecute_SlotInPast(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(t, repo)

	// "Сейчас" 10:00 по Дубаю: утренний слот сегодняшнего дня уже прошёл
	uc.timeProvider = &fixedTime{now: time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestExecute_ConcurrentSameSlot(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(t, repo)

	const numGoroutines = 10
	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	results := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), validRequest())
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	successCount := 0
	conflictCount := 0
	for err := range results {
		switch {
		case err == nil:
			successCount++
		case assert.ErrorIs(t, err, ErrSlotNotAvailable):
			conflictCount++
		}
	}

	// Ровно один запрос выигрывает слот, остальные получают конфликт
	assert.Equal(t, 1, successCount)
	assert.Equal(t, numGoroutines-1, conflictCount)
	assert.Equal(t, 1, repo.activeCount())
}

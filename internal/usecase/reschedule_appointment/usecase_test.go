package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/schedule"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// fakeRepo in-memory репозиторий с контрактом уникальности активного слота
type fakeRepo struct {
	nextID int64
	byID   map[int64]*domain.Appointment
}

func newFakeRepo(appts ...*domain.Appointment) *fakeRepo {
	r := &fakeRepo{byID: make(map[int64]*domain.Appointment)}
	for _, a := range appts {
		r.byID[a.ID] = a
		if a.ID > r.nextID {
			r.nextID = a.ID
		}
	}
	return r
}

func (r *fakeRepo) GetByCode(_ context.Context, code string) (*domain.Appointment, error) {
	for _, appt := range r.byID {
		if appt.ConfirmationCode == code {
			out := *appt
			return &out, nil
		}
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := r.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	out := *appt
	return &out, nil
}

func (r *fakeRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
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

func (r *fakeRepo) Cancel(_ context.Context, id int64) error {
	appt, ok := r.byID[id]
	if !ok || !appt.IsActive() {
		return appointmentRepo.ErrStaleStatus
	}
	appt.Status = domain.StatusCanceled
	appt.CancelledAt = ptr.Ptr(time.Now())
	return nil
}

func (r *fakeRepo) snapshot() map[int64]domain.Appointment {
	snap := make(map[int64]domain.Appointment, len(r.byID))
	for id, appt := range r.byID {
		snap[id] = *appt
	}
	return snap
}

func (r *fakeRepo) restore(snap map[int64]domain.Appointment) {
	r.byID = make(map[int64]*domain.Appointment, len(snap))
	for id, appt := range snap {
		a := appt
		r.byID[id] = &a
	}
}

// fakeTxManager выполняет fn и откатывает состояние репозитория при ошибке,
// воспроизводя атомарность транзакции
type fakeTxManager struct {
	repo *fakeRepo
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := m.repo.snapshot()
	if err := fn(ctx); err != nil {
		m.repo.restore(snap)
		return err
	}
	return nil
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

func newTestUseCase(t *testing.T, repo *fakeRepo) *UseCase {
	t.Helper()

	catalog, err := schedule.NewCatalog(domain.DefaultScheduleConfig())
	require.NoError(t, err)

	uc := NewUseCase(repo, catalog, &fakeTxManager{repo: repo}, nopLogger{})
	// Понедельник 2025-06-02 08:00 по Дубаю
	uc.timeProvider = &fixedTime{now: time.Date(2025, 6, 2, 4, 0, 0, 0, time.UTC)}
	return uc
}

func confirmedAppointment() *domain.Appointment {
	// 2025-06-02 09:00 AM по Дубаю
	return &domain.Appointment{
		ID:               1,
		StartUTC:         time.Date(2025, 6, 2, 5, 0, 0, 0, time.UTC),
		EndUTC:           time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC),
		PhoneNumber:      "+2305551234",
		ConfirmationCode: "A1B2C3D4",
		Status:           domain.StatusConfirmed,
	}
}

func TestExecute_Success(t *testing.T) {
	repo := newFakeRepo(confirmedAppointment())
	uc := newTestUseCase(t, repo)

	resp, err := uc.Execute(context.Background(), &Request{
		ConfirmationCode: "a1b2c3d4",
		NewDate:          "2025-06-03",
		NewTime:          "11:00 AM",
	})
	require.NoError(t, err)

	// Старое бронирование отменено с отметкой времени
	assert.Equal(t, int64(1), resp.Old.ID)
	assert.Equal(t, string(domain.StatusCanceled), resp.Old.Status)
	assert.NotNil(t, resp.Old.CancelledAt)

	// Новое бронирование подтверждено, код свежий, телефон унаследован
	assert.Equal(t, int64(2), resp.New.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.New.Status)
	assert.Equal(t, "+2305551234", resp.New.PhoneNumber)
	assert.NotEqual(t, resp.Old.ConfirmationCode, resp.New.ConfirmationCode)
	assert.Len(t, resp.New.ConfirmationCode, 8)

	// Дубай UTC+4: 11:00 AM -> 07:00 UTC
	wantStart := time.Date(2025, 6, 3, 7, 0, 0, 0, time.UTC)
	assert.True(t, wantStart.Equal(resp.New.StartDatetimeUTC))
	assert.True(t, wantStart.Add(time.Hour).Equal(resp.New.EndDatetimeUTC))
}

func TestExecute_NewSlotTaken_OldUntouched(t *testing.T) {
	other := &domain.Appointment{
		ID:               2,
		StartUTC:         time.Date(2025, 6, 3, 7, 0, 0, 0, time.UTC),
		ConfirmationCode: "FFFF0000",
		Status:           domain.StatusPending,
	}
	repo := newFakeRepo(confirmedAppointment(), other)
	uc := newTestUseCase(t, repo)

	_, err := uc.Execute(context.Background(), &Request{
		ConfirmationCode: "A1B2C3D4",
		NewDate:          "2025-06-03",
		NewTime:          "11:00 AM",
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Транзакция откатилась: старое бронирование осталось активным
	old, getErr := repo.GetByID(context.Background(), 1)
	require.NoError(t, getErr)
	assert.Equal(t, domain.StatusConfirmed, old.Status)
	assert.Nil(t, old.CancelledAt)
}

func TestExecute_SameSlot(t *testing.T) {
	// Перенос на собственный слот: отмена старой записи освобождает момент
	// до вставки новой, конфликта нет
	repo := newFakeRepo(confirmedAppointment())
	uc := newTestUseCase(t, repo)

	resp, err := uc.Execute(context.Background(), &Request{
		ConfirmationCode: "A1B2C3D4",
		NewDate:          "2025-06-02",
		NewTime:          "09:00 AM",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceled), resp.Old.Status)
	assert.Equal(t, string(domain.StatusConfirmed), resp.New.Status)
	assert.True(t, resp.Old.StartDatetimeUTC.Equal(resp.New.StartDatetimeUTC))
}

func TestExecute_NotFound(t *testing.T) {
	uc := newTestUseCase(t, newFakeRepo())

	_, err := uc.Execute(context.Background(), &Request{
		ConfirmationCode: "FFFFFFFF",
		NewDate:          "2025-06-03",
		NewTime:          "11:00 AM",
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_AlreadyCancelled(t *testing.T) {
	appt := confirmedAppointment()
	appt.Status = domain.StatusCanceled
	appt.CancelledAt = ptr.Ptr(time.Now())
	uc := newTestUseCase(t, newFakeRepo(appt))

	_, err := uc.Execute(context.Background(), &Request{
		ConfirmationCode: "A1B2C3D4",
		NewDate:          "2025-06-03",
		NewTime:          "11:00 AM",
	})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(t, newFakeRepo(confirmedAppointment()))

	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "malformed code",
			req:  &Request{ConfirmationCode: "!!", NewDate: "2025-06-03", NewTime: "11:00 AM"},
		},
		{
			name: "bad date",
			req:  &Request{ConfirmationCode: "A1B2C3D4", NewDate: "03.06.2025", NewTime: "11:00 AM"},
		},
		{
			name: "bad time",
			req:  &Request{ConfirmationCode: "A1B2C3D4", NewDate: "2025-06-03", NewTime: "11:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_OutsideSchedule(t *testing.T) {
	uc := newTestUseCase(t, newFakeRepo(confirmedAppointment()))

	// Суббота
	_, err := uc.Execute(context.Background(), &Request{
		ConfirmationCode: "A1B2C3D4",
		NewDate:          "2025-06-07",
		NewTime:          "09:00 AM",
	})
	assert.ErrorIs(t, err, ErrOutsideSchedule)
}

func TestExecute_SlotInPast(t *testing.T) {
	repo := newFakeRepo(confirmedAppointment())
	uc := newTestUseCase(t, repo)

	// "Сейчас" 10:00 по Дубаю: утренний слот сегодняшнего дня уже прошёл
	uc.timeProvider = &fixedTime{now: time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), &Request{
		ConfirmationCode: "A1B2C3D4",
		NewDate:          "2025-06-02",
		NewTime:          "09:00 AM",
	})
	assert.ErrorIs(t, err, ErrSlotInPast)
}

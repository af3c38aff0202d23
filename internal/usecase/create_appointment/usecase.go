package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/confirmcode"
	"github.com/m04kA/SMC-AppointmentService/pkg/phonefmt"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// codeAttempts число попыток вставки при коллизии кода подтверждения.
// Коллизия на пространстве 16^8 практически невероятна, но ограничение
// уникальности в БД всё равно её отвергнет - тогда генерируем новый код.
const codeAttempts = 2

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования.
//
// Эксклюзивность слота обеспечивается ИСКЛЮЧИТЕЛЬНО атомарной вставкой
// с ограничением уникальности в БД. Никакой проверки "занят ли слот" перед
// вставкой не делается: между проверкой и вставкой было бы окно гонки,
// в котором два конкурентных запроса забронировали бы один слот.
// Из двух конкурентных запросов ровно один получает успех, второй - конфликт.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: date=%s, time=%s", req.Date, req.Time)

	// 1. Валидация форматов входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	label := types.TimeLabel(req.Time)
	now := uc.timeProvider.Now()

	// 2. Конвертируем слот в абсолютный момент UTC
	startUTC, err := uc.catalog.ToUTC(req.Date, label)
	if err != nil {
		uc.logger.Warn("CreateAppointment: time conversion failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Слот должен входить в каталог расписания и быть в будущем
	if !uc.catalog.Contains(now, req.Date, label) {
		uc.logger.Warn("CreateAppointment: slot %s %s outside schedule", req.Date, req.Time)
		return nil, ErrOutsideSchedule
	}
	if startUTC.Before(now) {
		uc.logger.Warn("CreateAppointment: slot %s %s already in the past", req.Date, req.Time)
		return nil, ErrSlotInPast
	}

	// 4. Нормализуем телефон к международному формату
	phone := phonefmt.Format(req.Phone)

	// 5. Атомарная вставка; ограничение уникальности - единственный арбитр конфликта
	var created *domain.Appointment

	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := confirmcode.Generate()
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to generate confirmation code: %v", err)
			return nil, fmt.Errorf("%w: failed to generate confirmation code: %v", ErrInternal, err)
		}

		created, err = uc.appointmentRepo.Create(ctx, &domain.Appointment{
			StartUTC:         startUTC,
			EndUTC:           startUTC.Add(domain.ServiceDuration),
			PhoneNumber:      phone,
			ConfirmationCode: code,
			Status:           domain.StatusPending,
		})

		if err == nil {
			break
		}

		switch {
		case errors.Is(err, appointmentRepo.ErrSlotTaken):
			uc.logger.Warn("CreateAppointment: slot %s %s already taken", req.Date, req.Time)
			return nil, ErrSlotNotAvailable

		case errors.Is(err, appointmentRepo.ErrCodeConflict):
			// Крайне маловероятно; генерируем новый код и пробуем ещё раз
			uc.logger.Warn("CreateAppointment: confirmation code collision, retrying")
			continue

		default:
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}
	}

	if created == nil {
		uc.logger.Error("CreateAppointment: confirmation code collisions exhausted retries")
		return nil, fmt.Errorf("%w: confirmation code collisions exhausted retries", ErrInternal)
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, code=%s",
		created.ID, created.ConfirmationCode)

	return newResponse(created, req), nil
}

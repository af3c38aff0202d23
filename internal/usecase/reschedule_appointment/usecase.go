package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/confirmcode"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// codeAttempts число попыток вставки при коллизии кода подтверждения
const codeAttempts = 2

var (
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRegex = regexp.MustCompile(`^\d{2}:\d{2} (AM|PM)$`)
)

// UseCase use case переноса бронирования на другой слот
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalog         SlotCatalog
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalog SlotCatalog,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalog:         catalog,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет перенос бронирования: старое бронирование отменяется,
// на новый слот создаётся НОВОЕ подтверждённое бронирование со свежим кодом.
//
// Обе записи меняются в одной serializable-транзакции. Если новый слот занят,
// ограничение уникальности отвергает вставку, транзакция откатывается и
// старое бронирование остаётся нетронутым. Перенос на собственный слот
// разрешается естественно: отмена старой записи освобождает слот до вставки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: newDate=%s, newTime=%s", req.NewDate, req.NewTime)

	// 1. Валидация форматов входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	code := confirmcode.Normalize(req.ConfirmationCode)
	label := types.TimeLabel(req.NewTime)
	now := uc.timeProvider.Now()

	// 2. Конвертируем новый слот в абсолютный момент UTC
	newStartUTC, err := uc.catalog.ToUTC(req.NewDate, label)
	if err != nil {
		uc.logger.Warn("RescheduleAppointment: time conversion failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Новый слот должен входить в каталог расписания и быть в будущем
	if !uc.catalog.Contains(now, req.NewDate, label) {
		uc.logger.Warn("RescheduleAppointment: slot %s %s outside schedule", req.NewDate, req.NewTime)
		return nil, ErrOutsideSchedule
	}
	if newStartUTC.Before(now) {
		uc.logger.Warn("RescheduleAppointment: slot %s %s already in the past", req.NewDate, req.NewTime)
		return nil, ErrSlotInPast
	}

	// 4. Отмена старого и вставка нового атомарно в serializable-транзакции
	var oldAppt, newAppt *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		oldAppt = nil
		newAppt = nil

		existing, err := uc.appointmentRepo.GetByCode(txCtx, code)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		if existing.IsCancelled() {
			return ErrAlreadyCancelled
		}

		if err := uc.appointmentRepo.Cancel(txCtx, existing.ID); err != nil {
			return fmt.Errorf("%w: failed to cancel old appointment: %v", ErrInternal, err)
		}

		// Перечитываем старую запись уже с проставленным cancelled_at
		oldAppt, err = uc.appointmentRepo.GetByID(txCtx, existing.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to reread old appointment: %v", ErrInternal, err)
		}

		for attempt := 0; attempt < codeAttempts; attempt++ {
			newCode, err := confirmcode.Generate()
			if err != nil {
				return fmt.Errorf("%w: failed to generate confirmation code: %v", ErrInternal, err)
			}

			newAppt, err = uc.appointmentRepo.Create(txCtx, &domain.Appointment{
				StartUTC:         newStartUTC,
				EndUTC:           newStartUTC.Add(domain.ServiceDuration),
				PhoneNumber:      existing.PhoneNumber,
				ConfirmationCode: newCode,
				Status:           domain.StatusConfirmed,
			})

			if err == nil {
				return nil
			}

			switch {
			case errors.Is(err, appointmentRepo.ErrSlotTaken):
				return ErrSlotNotAvailable

			case errors.Is(err, appointmentRepo.ErrCodeConflict):
				continue

			default:
				return fmt.Errorf("%w: failed to create new appointment: %v", ErrInternal, err)
			}
		}

		return fmt.Errorf("%w: confirmation code collisions exhausted retries", ErrInternal)
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound),
			errors.Is(err, ErrAlreadyCancelled),
			errors.Is(err, ErrSlotNotAvailable):
			uc.logger.Warn("RescheduleAppointment: rejected: %v", err)
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.logger.Error("RescheduleAppointment: failed: %v", err)
			return nil, err
		default:
			uc.logger.Error("RescheduleAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("RescheduleAppointment: appointment id=%d rescheduled to id=%d, code=%s",
		oldAppt.ID, newAppt.ID, newAppt.ConfirmationCode)

	return &Response{
		Old: fromDomain(oldAppt),
		New: fromDomain(newAppt),
	}, nil
}

// validateRequest валидирует форматы входных данных запроса
func validateRequest(req *Request) error {
	if _, err := confirmcode.Validate(req.ConfirmationCode); err != nil {
		return fmt.Errorf("%w: invalid confirmation code format", ErrInvalidInput)
	}
	if req.NewDate == "" {
		return fmt.Errorf("%w: new date is required", ErrInvalidInput)
	}
	if !dateRegex.MatchString(req.NewDate) {
		return fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}
	if req.NewTime == "" {
		return fmt.Errorf("%w: new time is required", ErrInvalidInput)
	}
	if !timeRegex.MatchString(req.NewTime) {
		return fmt.Errorf("%w: invalid time format, expected HH:MM AM|PM", ErrInvalidInput)
	}
	return nil
}

package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/confirmcode"
)

// Service сервис для работы с существующими бронированиями:
// поиск по коду, подтверждение, отмена
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByCode получает бронирование по коду подтверждения.
// Код - единственный ключ доступа: никакой дополнительной аутентификации нет.
func (s *Service) GetByCode(ctx context.Context, code string) (*models.AppointmentResponse, error) {
	normalized, err := confirmcode.Validate(code)
	if err != nil {
		s.logger.Warn("GetByCode: invalid code format")
		return nil, ErrInvalidCode
	}

	appt, err := s.appointmentRepo.GetByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByCode: appointment not found for code=%s", normalized)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByCode: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByCode: successfully fetched appointment id=%d", appt.ID)
	return models.FromDomainAppointment(appt), nil
}

// Verify подтверждает бронирование по ID и коду подтверждения.
// Операция намеренно НЕ идемпотентна: повторное подтверждение возвращает
// ErrAlreadyConfirmed, чтобы клиент увидел двойную отправку формы.
// Отменённое бронирование подтвердить нельзя - статус терминальный.
func (s *Service) Verify(ctx context.Context, req *models.VerifyRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Verify: verifying appointment id=%d", req.AppointmentID)

	appt, err := s.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Verify: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Verify: repository error for id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: Verify - repository error: %v", ErrInternal, err)
	}

	if confirmcode.Normalize(req.ConfirmationCode) != appt.ConfirmationCode {
		s.logger.Warn("Verify: code mismatch for appointment id=%d", req.AppointmentID)
		return nil, ErrCodeMismatch
	}

	switch {
	case appt.IsConfirmed():
		s.logger.Warn("Verify: appointment id=%d already confirmed", req.AppointmentID)
		return nil, ErrAlreadyConfirmed
	case appt.IsCancelled():
		s.logger.Warn("Verify: appointment id=%d already cancelled", req.AppointmentID)
		return nil, ErrAlreadyCancelled
	}

	if err := s.appointmentRepo.Confirm(ctx, appt.ID); err != nil {
		if errors.Is(err, appointmentRepo.ErrStaleStatus) {
			// Статус изменился между чтением и обновлением - классифицируем заново
			return nil, s.classifyStaleVerify(ctx, appt.ID)
		}
		s.logger.Error("Verify: repository error for id=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: Verify - repository error: %v", ErrInternal, err)
	}

	appt.Status = domain.StatusConfirmed

	s.logger.Info("Verify: successfully confirmed appointment id=%d", appt.ID)
	return models.FromDomainAppointment(appt), nil
}

// Cancel отменяет бронирование по коду подтверждения.
// Операция идемпотентна: отмена уже отменённого бронирования - успех
// с неизменённой записью, а не ошибка.
func (s *Service) Cancel(ctx context.Context, code string) (*models.AppointmentResponse, error) {
	normalized, err := confirmcode.Validate(code)
	if err != nil {
		s.logger.Warn("Cancel: invalid code format")
		return nil, ErrInvalidCode
	}

	appt, err := s.appointmentRepo.GetByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment not found for code=%s", normalized)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error: %v", err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if appt.IsCancelled() {
		s.logger.Info("Cancel: appointment id=%d already cancelled, idempotent success", appt.ID)
		return models.FromDomainAppointment(appt), nil
	}

	if err := s.appointmentRepo.Cancel(ctx, appt.ID); err != nil && !errors.Is(err, appointmentRepo.ErrStaleStatus) {
		s.logger.Error("Cancel: repository error for id=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Перечитываем запись: либо отменили мы, либо конкурентный запрос -
	// в обоих случаях результат одинаковый (идемпотентность)
	updated, err := s.appointmentRepo.GetByID(ctx, appt.ID)
	if err != nil {
		s.logger.Error("Cancel: failed to re-read appointment id=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", updated.ID)
	return models.FromDomainAppointment(updated), nil
}

// classifyStaleVerify перечитывает бронирование после неудавшегося условного
// обновления и возвращает подходящую доменную ошибку
func (s *Service) classifyStaleVerify(ctx context.Context, id int64) error {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: Verify - failed to classify stale status: %v", ErrInternal, err)
	}

	switch {
	case appt.IsConfirmed():
		return ErrAlreadyConfirmed
	case appt.IsCancelled():
		return ErrAlreadyCancelled
	default:
		return fmt.Errorf("%w: Verify - unexpected status %s", ErrInternal, appt.Status)
	}
}

package reschedule_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	rescheduleAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/reschedule_appointment"
)

const (
	msgRescheduled        = "Appointment rescheduled. A new confirmation code has been issued."
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInput       = "invalid reschedule data"
	msgNotFound           = "appointment not found"
	msgAlreadyCancelled   = "appointment has been cancelled and cannot be rescheduled"
	msgSlotNotAvailable   = "the new time slot is no longer available"
	msgOutsideSchedule    = "the new slot is outside the booking schedule"
	msgSlotInPast         = "the new slot is in the past"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/reschedule - Appointment not found")
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrAlreadyCancelled):
			h.logger.Warn("POST /appointments/reschedule - Appointment already cancelled")
			handlers.RespondBadRequest(w, msgAlreadyCancelled)

		case errors.Is(err, rescheduleAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments/reschedule - New slot not available: newDate=%s, newTime=%s",
				req.NewDate, req.NewTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, rescheduleAppointment.ErrOutsideSchedule):
			h.logger.Warn("POST /appointments/reschedule - New slot outside schedule: newDate=%s, newTime=%s",
				req.NewDate, req.NewTime)
			handlers.RespondBadRequest(w, msgOutsideSchedule)

		case errors.Is(err, rescheduleAppointment.ErrSlotInPast):
			h.logger.Warn("POST /appointments/reschedule - New slot in the past: newDate=%s, newTime=%s",
				req.NewDate, req.NewTime)
			handlers.RespondBadRequest(w, msgSlotInPast)

		default:
			h.logger.Error("POST /appointments/reschedule - Failed to reschedule appointment: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/reschedule - Appointment rescheduled successfully: old_id=%d, new_id=%d",
		result.Old.ID, result.New.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgCreated            = "Appointment booked successfully. Use your confirmation code to manage it."
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInput       = "invalid appointment data"
	msgSlotNotAvailable   = "this time slot is no longer available"
	msgOutsideSchedule    = "selected slot is outside the booking schedule"
	msgSlotInPast         = "selected slot is in the past"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /book - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /book - Slot not available: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrOutsideSchedule):
			h.logger.Warn("POST /book - Slot outside schedule: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgOutsideSchedule)

		case errors.Is(err, createAppointment.ErrSlotInPast):
			h.logger.Warn("POST /book - Slot in the past: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgSlotInPast)

		default:
			h.logger.Error("POST /book - Failed to create appointment: date=%s, time=%s, error=%v",
				req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /book - Appointment created successfully: appointment_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgCancelled          = "Appointment cancelled."
	msgInvalidRequestBody = "invalid request body"
	msgInvalidCode        = "invalid confirmation code format"
	msgNotFound           = "appointment not found"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/cancel
//
// Отмена идемпотентна: повторный запрос с тем же кодом возвращает 200
// с уже отменённой записью.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CancelAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Cancel(r.Context(), req.ConfirmationCode)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidCode):
			h.logger.Warn("POST /appointments/cancel - Invalid code format")
			handlers.RespondBadRequest(w, msgInvalidCode)

		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/cancel - Appointment not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("POST /appointments/cancel - Failed to cancel appointment: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/cancel - Appointment cancelled successfully: appointment_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

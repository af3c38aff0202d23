package verify_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgVerified           = "Appointment confirmed successfully."
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "appointment not found"
	msgCodeMismatch       = "confirmation code does not match"
	msgAlreadyConfirmed   = "appointment is already confirmed"
	msgAlreadyCancelled   = "appointment has been cancelled"
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

// Handle POST /api/v1/book/verify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req VerifyAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /book/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Verify(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /book/verify - Appointment not found: appointment_id=%d", req.AppointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrCodeMismatch):
			h.logger.Warn("POST /book/verify - Code mismatch: appointment_id=%d", req.AppointmentID)
			handlers.RespondBadRequest(w, msgCodeMismatch)

		case errors.Is(err, appointments.ErrAlreadyConfirmed):
			h.logger.Warn("POST /book/verify - Already confirmed: appointment_id=%d", req.AppointmentID)
			handlers.RespondBadRequest(w, msgAlreadyConfirmed)

		case errors.Is(err, appointments.ErrAlreadyCancelled):
			h.logger.Warn("POST /book/verify - Already cancelled: appointment_id=%d", req.AppointmentID)
			handlers.RespondBadRequest(w, msgAlreadyCancelled)

		default:
			h.logger.Error("POST /book/verify - Failed to verify appointment: appointment_id=%d, error=%v",
				req.AppointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /book/verify - Appointment verified successfully: appointment_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

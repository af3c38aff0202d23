package get_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

const (
	msgInvalidCode = "invalid confirmation code format"
	msgNotFound    = "appointment not found"
)

// GetAppointmentResponse HTTP response model
type GetAppointmentResponse struct {
	Success     bool                        `json:"success"`
	Appointment *models.AppointmentResponse `json:"appointment"`
}

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

// Handle GET /api/v1/appointments/{code}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := vars["code"]

	appt, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidCode):
			h.logger.Warn("GET /appointments/{code} - Invalid code format")
			handlers.RespondBadRequest(w, msgInvalidCode)

		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/{code} - Appointment not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /appointments/{code} - Failed to get appointment: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/{code} - Appointment retrieved successfully: appointment_id=%d", appt.ID)
	handlers.RespondJSON(w, http.StatusOK, GetAppointmentResponse{
		Success:     true,
		Appointment: appt,
	})
}

package appointment_status

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

const (
	msgMissingTenant        = "не указан тенант"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgAppointmentNotFound  = "запись не найдена"
	msgTransitionNotAllowed = "переход статуса запрещён"
)

type transitionFunc func(ctx context.Context, tenantID uuid.UUID, id int64) (*models.AppointmentResponse, error)

// Handler PATCH /appointments/{appointmentId}/{confirm|cancel|no-show}
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

// Confirm PATCH /api/v1/appointments/{appointmentId}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "confirm", h.service.Confirm)
}

// Cancel PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "cancel", h.service.Cancel)
}

// NoShow PATCH /api/v1/appointments/{appointmentId}/no-show
func (h *Handler) NoShow(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "no-show", h.service.MarkNoShow)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, action string, fn transitionFunc) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	appointmentID, err := handlers.ParseID(mux.Vars(r)["appointmentId"])
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/%s - Invalid appointment ID: %v", action, err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	result, err := fn(r.Context(), tenantID, appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("PATCH /appointments/{id}/%s - Appointment not found: appointment_id=%d", action, appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, domain.ErrImmutableState):
			h.logger.Warn("PATCH /appointments/{id}/%s - Transition not allowed: appointment_id=%d, error=%v",
				action, appointmentID, err)
			handlers.RespondConflict(w, msgTransitionNotAllowed)

		default:
			h.logger.Error("PATCH /appointments/{id}/%s - Failed to change status: appointment_id=%d, error=%v",
				action, appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/%s - Status changed successfully: appointment_id=%d, status=%s",
		action, appointmentID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

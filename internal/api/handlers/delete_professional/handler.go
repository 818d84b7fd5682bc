package delete_professional

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/professionals"
)

const (
	msgMissingTenant         = "не указан тенант"
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgProfessionalNotFound  = "специалист не найден"
	msgHasUpcoming           = "у специалиста есть предстоящие записи, сначала отмените их"
	msgHasHistory            = "на специалиста ссылаются прошлые записи"
)

type Handler struct {
	service ProfessionalService
	logger  Logger
}

func NewHandler(service ProfessionalService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/professionals/{professionalId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	professionalID, err := handlers.ParseID(mux.Vars(r)["professionalId"])
	if err != nil {
		h.logger.Warn("DELETE /professionals/{id} - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	if err := h.service.Delete(r.Context(), tenantID, professionalID); err != nil {
		switch {
		case errors.Is(err, professionals.ErrHasUpcomingAppointments):
			h.logger.Warn("DELETE /professionals/{id} - Has upcoming appointments: professional_id=%d", professionalID)
			handlers.RespondConflict(w, msgHasUpcoming)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("DELETE /professionals/{id} - Referenced by history: professional_id=%d", professionalID)
			handlers.RespondConflict(w, msgHasHistory)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("DELETE /professionals/{id} - Professional not found: professional_id=%d", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		default:
			h.logger.Error("DELETE /professionals/{id} - Failed to delete professional: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /professionals/{id} - Professional deleted successfully: professional_id=%d", professionalID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

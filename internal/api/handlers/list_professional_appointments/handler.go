package list_professional_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const (
	msgMissingTenant         = "не указан тенант"
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgMissingDate           = "дата обязательна"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFlag           = "некорректное значение includeCanceled"
	msgNotFound              = "тенант или специалист не найден"
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

// Handle GET /api/v1/professionals/{professionalId}/appointments
// Query params: date (required, YYYY-MM-DD), includeCanceled (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	professionalID, err := handlers.ParseID(mux.Vars(r)["professionalId"])
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/appointments - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	query := r.URL.Query()
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /professionals/{id}/appointments - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := types.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/appointments - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	includeCanceled := false
	if raw := query.Get("includeCanceled"); raw != "" {
		includeCanceled, err = strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /professionals/{id}/appointments - Invalid includeCanceled: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFlag)
			return
		}
	}

	list, err := h.service.ListByProfessional(r.Context(), tenantID, professionalID, date, includeCanceled)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.logger.Warn("GET /professionals/{id}/appointments - Not found: tenant=%s, professional_id=%d", tenantID, professionalID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /professionals/{id}/appointments - Failed to list appointments: professional_id=%d, error=%v",
			professionalID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /professionals/{id}/appointments - Appointments retrieved successfully: professional_id=%d, date=%s, total=%d",
		professionalID, date, list.Total)
	handlers.RespondJSON(w, http.StatusOK, list)
}

package work_calendar

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/workcalendar"
	"github.com/m04kA/SMC-SchedulingService/internal/service/workcalendar/models"
)

const (
	msgMissingTenant         = "не указан тенант"
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgInvalidWeekday        = "день недели должен быть числом от 0 до 6"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidSchedule       = "некорректное расписание"
	msgProfessionalNotFound  = "специалист не найден"
	msgEntryNotFound         = "на этот день недели расписания нет"
)

// Handler расписание специалиста: список, один день, замена целиком
type Handler struct {
	service WorkCalendarService
	logger  Logger
}

func NewHandler(service WorkCalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/professionals/{professionalId}/work-calendar
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, professionalID, ok := h.parsePath(w, r, "GET /professionals/{id}/work-calendar")
	if !ok {
		return
	}

	schedule, err := h.service.List(r.Context(), tenantID, professionalID)
	if err != nil {
		h.respondError(w, "GET /professionals/{id}/work-calendar", professionalID, err)
		return
	}

	h.logger.Info("GET /professionals/{id}/work-calendar - Schedule retrieved successfully: professional_id=%d, entries=%d",
		professionalID, len(schedule.Entries))
	handlers.RespondJSON(w, http.StatusOK, schedule)
}

// Get GET /api/v1/professionals/{professionalId}/work-calendar/{weekday}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, professionalID, ok := h.parsePath(w, r, "GET /professionals/{id}/work-calendar/{weekday}")
	if !ok {
		return
	}

	weekday, err := strconv.Atoi(mux.Vars(r)["weekday"])
	if err != nil || weekday < 0 || weekday > 6 {
		h.logger.Warn("GET /professionals/{id}/work-calendar/{weekday} - Invalid weekday: %q", mux.Vars(r)["weekday"])
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	entry, err := h.service.Get(r.Context(), tenantID, professionalID, time.Weekday(weekday))
	if err != nil {
		h.respondError(w, "GET /professionals/{id}/work-calendar/{weekday}", professionalID, err)
		return
	}

	h.logger.Info("GET /professionals/{id}/work-calendar/{weekday} - Entry retrieved successfully: professional_id=%d, weekday=%d",
		professionalID, weekday)
	handlers.RespondJSON(w, http.StatusOK, entry)
}

// Replace PUT /api/v1/professionals/{professionalId}/work-calendar
func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	tenantID, professionalID, ok := h.parsePath(w, r, "PUT /professionals/{id}/work-calendar")
	if !ok {
		return
	}

	var req models.ReplaceScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /professionals/{id}/work-calendar - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	schedule, err := h.service.Replace(r.Context(), tenantID, professionalID, &req)
	if err != nil {
		h.respondError(w, "PUT /professionals/{id}/work-calendar", professionalID, err)
		return
	}

	h.logger.Info("PUT /professionals/{id}/work-calendar - Schedule replaced successfully: professional_id=%d, entries=%d",
		professionalID, len(schedule.Entries))
	handlers.RespondJSON(w, http.StatusOK, schedule)
}

func (h *Handler) parsePath(w http.ResponseWriter, r *http.Request, route string) (uuid.UUID, int64, bool) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return uuid.Nil, 0, false
	}

	professionalID, err := handlers.ParseID(mux.Vars(r)["professionalId"])
	if err != nil {
		h.logger.Warn("%s - Invalid professional ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return uuid.Nil, 0, false
	}

	return tenantID, professionalID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, professionalID int64, err error) {
	switch {
	case errors.Is(err, workcalendar.ErrEntryNotFound):
		h.logger.Warn("%s - Entry not found: professional_id=%d", route, professionalID)
		handlers.RespondNotFound(w, msgEntryNotFound)

	case errors.Is(err, domain.ErrNotFound):
		h.logger.Warn("%s - Professional not found: professional_id=%d", route, professionalID)
		handlers.RespondNotFound(w, msgProfessionalNotFound)

	case errors.Is(err, domain.ErrValidation):
		h.logger.Warn("%s - Invalid schedule: professional_id=%d, error=%v", route, professionalID, err)
		handlers.RespondError(w, http.StatusBadRequest, msgInvalidSchedule+": "+err.Error())

	default:
		h.logger.Error("%s - Failed: professional_id=%d, error=%v", route, professionalID, err)
		handlers.RespondInternalError(w)
	}
}

package public_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	publicBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/public_booking"
)

const (
	msgMissingTenant      = "не указан тенант"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "проверьте имя, телефон, дату и время"
	msgSlotTaken          = "этот слот только что заняли, выберите другое время"
	msgNotFound           = "страница записи не найдена"
)

type Handler struct {
	useCase PublicBookingUseCase
	logger  Logger
}

func NewHandler(useCase PublicBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/public/{tenantId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		handlers.RespondBadRequest(w, msgMissingTenant)
		return
	}

	var req publicBooking.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /public/{tenant}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOverlap):
			h.logger.Warn("POST /public/{tenant}/bookings - Slot taken: tenant=%s, professional_id=%d, date=%s, start=%s",
				tenantID, req.ProfessionalID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /public/{tenant}/bookings - Not found: tenant=%s, error=%v", tenantID, err)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /public/{tenant}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /public/{tenant}/bookings - Failed to book: tenant=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /public/{tenant}/bookings - Booking created successfully: tenant=%s, appointment_id=%d",
		tenantID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

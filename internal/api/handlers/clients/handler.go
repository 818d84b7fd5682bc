package clients

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/clients/models"
)

const (
	msgMissingTenant      = "не указан тенант"
	msgInvalidClientID    = "некорректный ID клиента"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidClient      = "некорректные имя или телефон клиента"
	msgClientNotFound     = "клиент не найден"
)

type Handler struct {
	service ClientService
	logger  Logger
}

func NewHandler(service ClientService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// FindOrCreate POST /api/v1/clients
// 201, если клиент создан; 200, если найден по телефону
func (h *Handler) FindOrCreate(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	var req models.FindOrCreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /clients - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	client, err := h.service.FindOrCreate(r.Context(), tenantID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.logger.Warn("POST /clients - Invalid client: %v", err)
			handlers.RespondBadRequest(w, msgInvalidClient)
			return
		}
		h.logger.Error("POST /clients - Failed to find or create client: tenant=%s, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	status := http.StatusOK
	if client.Created {
		status = http.StatusCreated
	}

	h.logger.Info("POST /clients - Client resolved: client_id=%d, created=%t", client.ID, client.Created)
	handlers.RespondJSON(w, status, client)
}

// Get GET /api/v1/clients/{clientId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	clientID, err := handlers.ParseID(mux.Vars(r)["clientId"])
	if err != nil {
		h.logger.Warn("GET /clients/{id} - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	client, err := h.service.Get(r.Context(), tenantID, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.logger.Warn("GET /clients/{id} - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)
			return
		}
		h.logger.Error("GET /clients/{id} - Failed to get client: client_id=%d, error=%v", clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /clients/{id} - Client retrieved successfully: client_id=%d", clientID)
	handlers.RespondJSON(w, http.StatusOK, client)
}

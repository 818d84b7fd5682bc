package clients

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	clientsService "github.com/m04kA/SMC-SchedulingService/internal/service/clients"
	"github.com/m04kA/SMC-SchedulingService/internal/service/clients/models"
	"github.com/m04kA/SMC-SchedulingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

func newRouter(store *memstore.Store, tenantID uuid.UUID) http.Handler {
	log := logger.NewNop()
	h := NewHandler(clientsService.NewService(store.Clients, log), log)

	router := mux.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithTenantID(r.Context(), tenantID)))
		})
	})
	router.HandleFunc("/clients", h.FindOrCreate).Methods(http.MethodPost)
	router.HandleFunc("/clients/{clientId}", h.Get).Methods(http.MethodGet)
	return router
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))
	return w
}

func TestHandler_FindOrCreate(t *testing.T) {
	store := memstore.New()
	tenantID := store.AddTenant("America/Sao_Paulo")
	router := newRouter(store, tenantID)

	w := do(router, http.MethodPost, "/clients", `{"name":"João","phone":"+55 (11) 91234-5678"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.ClientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Created)
	assert.Equal(t, "5511912345678", created.Phone)

	w = do(router, http.MethodPost, "/clients", `{"name":"João Silva","phone":"5511912345678"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var found models.ClientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	assert.Equal(t, created.ID, found.ID)
	assert.False(t, found.Created)

	w = do(router, http.MethodGet, "/clients/"+strconv.FormatInt(created.ID, 10), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"João"`)
}

func TestHandler_Errors(t *testing.T) {
	store := memstore.New()
	router := newRouter(store, store.AddTenant("UTC"))

	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPost, "/clients", `{"name":"","phone":"5511912345678"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPost, "/clients", `{"name":"Ana","phone":"12"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPost, "/clients", `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/clients/zero", "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/clients/404", "").Code)
}

package public_booking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/clients"
	"github.com/m04kA/SMC-SchedulingService/internal/service/timezone"
	"github.com/m04kA/SMC-SchedulingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
	publicBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/public_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) IncAppointmentCreated(string) {}
func (nopMetrics) IncOverlapRejected(string)    {}

type fixture struct {
	router   http.Handler
	store    *memstore.Store
	tenantID uuid.UUID
	profID   int64
	svcID    int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	tenantID := store.AddTenant("America/Sao_Paulo")
	log := logger.NewNop()

	resolver := timezone.NewResolver(store.Catalog, time.UTC, log)
	creator := create_appointment.NewUseCase(store.Appointments, store.Catalog, store.Clients, store.Outbox,
		resolver, store.TxManager, nopMetrics{}, log)
	uc := publicBooking.NewUseCase(clients.NewService(store.Clients, log), creator, resolver, log)

	router := mux.NewRouter()
	public := router.PathPrefix("/public/{tenantId}").Subrouter()
	public.Use(middleware.PathTenant)
	public.HandleFunc("/bookings", NewHandler(uc, log).Handle).Methods(http.MethodPost)

	return &fixture{
		router:   router,
		store:    store,
		tenantID: tenantID,
		profID:   store.AddProfessional(tenantID, "Dr. Alves", 200),
		svcID:    store.AddService(tenantID, "Avaliação", 60, 200),
	}
}

func (f *fixture) book(tenant string, body map[string]interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/public/"+tenant+"/bookings", strings.NewReader(string(raw))))
	return w
}

func (f *fixture) body(start, phone string) map[string]interface{} {
	return map[string]interface{}{
		"professionalId": f.profID,
		"serviceId":      f.svcID,
		"date":           "2025-10-22",
		"startTime":      start,
		"clientName":     "Carla Dias",
		"clientPhone":    phone,
	}
}

func TestHandler_BookAndConflict(t *testing.T) {
	f := newFixture(t)

	w := f.book(f.tenantID.String(), f.body("15:00", "5511987654321"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"startTime":"15:00"`)

	w = f.book(f.tenantID.String(), f.body("15:30", "5511911112222"))
	require.Equal(t, http.StatusConflict, w.Code)
	var errResp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, msgSlotTaken, errResp.Message)

	assert.Equal(t, 1, f.store.AppointmentCount(f.profID))
}

func TestHandler_Errors(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusNotFound, f.book(uuid.New().String(), f.body("15:00", "5511987654321")).Code)
	assert.Equal(t, http.StatusBadRequest, f.book("not-a-tenant", f.body("15:00", "5511987654321")).Code)
	assert.Equal(t, http.StatusBadRequest, f.book(f.tenantID.String(), f.body("25:00", "5511987654321")).Code)
	assert.Equal(t, http.StatusBadRequest, f.book(f.tenantID.String(), f.body("15:00", "1")).Code)

	body := f.body("15:00", "5511987654321")
	body["tenantId"] = uuid.New().String()
	assert.Equal(t, http.StatusBadRequest, f.book(f.tenantID.String(), body).Code)

	assert.Equal(t, 0, f.store.AppointmentCount(f.profID))
}

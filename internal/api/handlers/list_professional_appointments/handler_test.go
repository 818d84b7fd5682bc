package list_professional_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type listCall struct {
	professionalID  int64
	date            types.Date
	includeCanceled bool
}

type fakeService struct {
	calls []listCall
	err   error
}

func (f *fakeService) ListByProfessional(_ context.Context, _ uuid.UUID, professionalID int64, date types.Date, includeCanceled bool) (*models.AppointmentListResponse, error) {
	f.calls = append(f.calls, listCall{professionalID: professionalID, date: date, includeCanceled: includeCanceled})
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{}}, nil
}

func serve(svc *fakeService, target string) *httptest.ResponseRecorder {
	h := NewHandler(svc, logger.NewNop())
	router := mux.NewRouter()
	router.HandleFunc("/professionals/{professionalId}/appointments", func(w http.ResponseWriter, r *http.Request) {
		h.Handle(w, r.WithContext(middleware.WithTenantID(r.Context(), uuid.New())))
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandler_Query(t *testing.T) {
	svc := &fakeService{}

	require.Equal(t, http.StatusOK, serve(svc, "/professionals/2/appointments?date=2025-10-20").Code)
	require.Equal(t, http.StatusOK, serve(svc, "/professionals/2/appointments?date=2025-10-20&includeCanceled=true").Code)

	date := types.NewDate(2025, time.October, 20)
	assert.Equal(t, []listCall{
		{professionalID: 2, date: date},
		{professionalID: 2, date: date, includeCanceled: true},
	}, svc.calls)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "missing date", target: "/professionals/2/appointments", want: http.StatusBadRequest},
		{name: "bad date", target: "/professionals/2/appointments?date=2025-13-01", want: http.StatusBadRequest},
		{name: "bad flag", target: "/professionals/2/appointments?date=2025-10-20&includeCanceled=maybe", want: http.StatusBadRequest},
		{name: "not found", target: "/professionals/2/appointments?date=2025-10-20", err: appointments.ErrProfessionalNotFound, want: http.StatusNotFound},
		{name: "internal", target: "/professionals/2/appointments?date=2025-10-20", err: appointments.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(&fakeService{err: tt.err}, tt.target).Code)
		})
	}
}

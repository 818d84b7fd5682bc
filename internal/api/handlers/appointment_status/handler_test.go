package appointment_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeService struct {
	calls []string
	err   error
}

func (f *fakeService) result(action string, status domain.AppointmentStatus, id int64) (*models.AppointmentResponse, error) {
	f.calls = append(f.calls, action)
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, Status: string(status)}, nil
}

func (f *fakeService) Confirm(_ context.Context, _ uuid.UUID, id int64) (*models.AppointmentResponse, error) {
	return f.result("confirm", domain.StatusConfirmed, id)
}

func (f *fakeService) Cancel(_ context.Context, _ uuid.UUID, id int64) (*models.AppointmentResponse, error) {
	return f.result("cancel", domain.StatusCanceled, id)
}

func (f *fakeService) MarkNoShow(_ context.Context, _ uuid.UUID, id int64) (*models.AppointmentResponse, error) {
	return f.result("no-show", domain.StatusNoShow, id)
}

func newRouter(h *Handler) http.Handler {
	router := mux.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithTenantID(r.Context(), uuid.New())))
		})
	})
	router.HandleFunc("/appointments/{appointmentId}/confirm", h.Confirm).Methods(http.MethodPatch)
	router.HandleFunc("/appointments/{appointmentId}/cancel", h.Cancel).Methods(http.MethodPatch)
	router.HandleFunc("/appointments/{appointmentId}/no-show", h.NoShow).Methods(http.MethodPatch)
	return router
}

func TestHandler_Actions(t *testing.T) {
	svc := &fakeService{}
	router := newRouter(NewHandler(svc, logger.NewNop()))

	for _, action := range []string{"confirm", "cancel", "no-show"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/appointments/5/"+action, nil))
		require.Equal(t, http.StatusOK, w.Code, action)
		assert.Contains(t, w.Body.String(), `"id":5`)
	}
	assert.Equal(t, []string{"confirm", "cancel", "no-show"}, svc.calls)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "bad id", target: "/appointments/0/cancel", want: http.StatusBadRequest},
		{name: "not found", target: "/appointments/5/cancel", err: appointments.ErrAppointmentNotFound, want: http.StatusNotFound},
		{name: "terminal", target: "/appointments/5/confirm", err: appointments.ErrTransitionNotAllowed, want: http.StatusConflict},
		{name: "internal", target: "/appointments/5/no-show", err: appointments.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(NewHandler(&fakeService{err: tt.err}, logger.NewNop()))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, tt.target, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

package update_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	updateAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type fakeUseCase struct {
	got *updateAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *updateAppointment.Request) (*models.AppointmentResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: req.AppointmentID}, nil
}

func patch(uc *fakeUseCase, target, body string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewNop())
	router := mux.NewRouter()
	router.HandleFunc("/appointments/{appointmentId}", func(w http.ResponseWriter, r *http.Request) {
		h.Handle(w, r.WithContext(middleware.WithTenantID(r.Context(), uuid.New())))
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body)))
	return w
}

func TestHandler_PartialUpdate(t *testing.T) {
	uc := &fakeUseCase{}
	w := patch(uc, "/appointments/4", `{"startTime":"14:30","note":"remarcado"}`)
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(4), uc.got.AppointmentID)
	require.NotNil(t, uc.got.StartTime)
	assert.Equal(t, types.TimeString("14:30"), *uc.got.StartTime)
	assert.Nil(t, uc.got.Date)
	assert.Nil(t, uc.got.ServiceID)
	assert.Equal(t, "remarcado", *uc.got.Note)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		err    error
		want   int
	}{
		{name: "bad id", target: "/appointments/abc", body: `{}`, want: http.StatusBadRequest},
		{name: "bad body", target: "/appointments/4", body: `{"date":"tomorrow"}`, want: http.StatusBadRequest},
		{name: "overlap", target: "/appointments/4", body: `{}`, err: updateAppointment.ErrSlotTaken, want: http.StatusConflict},
		{name: "terminal", target: "/appointments/4", body: `{}`, err: updateAppointment.ErrNotEditable, want: http.StatusConflict},
		{name: "service", target: "/appointments/4", body: `{}`, err: updateAppointment.ErrServiceNotFound, want: http.StatusNotFound},
		{name: "missing", target: "/appointments/4", body: `{}`, err: updateAppointment.ErrAppointmentNotFound, want: http.StatusNotFound},
		{name: "validation", target: "/appointments/4", body: `{}`, err: updateAppointment.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "internal", target: "/appointments/4", body: `{}`, err: updateAppointment.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, patch(&fakeUseCase{err: tt.err}, tt.target, tt.body).Code)
		})
	}
}

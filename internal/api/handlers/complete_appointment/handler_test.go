package complete_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	completeAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/complete_appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeUseCase struct {
	got *completeAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *completeAppointment.Request) (*completeAppointment.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &completeAppointment.Response{
		Appointment:    &models.AppointmentResponse{ID: req.AppointmentID, Status: "completed"},
		FinancialEntry: &models.FinancialEntryResponse{ID: 1, AppointmentID: req.AppointmentID, Amount: 150},
	}, nil
}

func serve(uc *fakeUseCase, tenantID uuid.UUID, target string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewNop())
	router := mux.NewRouter()
	router.HandleFunc("/appointments/{appointmentId}/complete", func(w http.ResponseWriter, r *http.Request) {
		h.Handle(w, r.WithContext(middleware.WithTenantID(r.Context(), tenantID)))
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, target, nil))
	return w
}

func TestHandler_Completes(t *testing.T) {
	tenantID := uuid.New()
	uc := &fakeUseCase{}

	w := serve(uc, tenantID, "/appointments/9/complete")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, &completeAppointment.Request{TenantID: tenantID, AppointmentID: 9}, uc.got)

	var body struct {
		Appointment    models.AppointmentResponse    `json:"appointment"`
		FinancialEntry models.FinancialEntryResponse `json:"financialEntry"`
		Already        bool                          `json:"alreadyCompleted"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "completed", body.Appointment.Status)
	assert.Equal(t, 150.0, body.FinancialEntry.Amount)
	assert.False(t, body.Already)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "bad id", target: "/appointments/x/complete", want: http.StatusBadRequest},
		{name: "not found", target: "/appointments/9/complete", err: completeAppointment.ErrAppointmentNotFound, want: http.StatusNotFound},
		{name: "canceled", target: "/appointments/9/complete", err: completeAppointment.ErrCompleteNotAllowed, want: http.StatusConflict},
		{name: "internal", target: "/appointments/9/complete", err: completeAppointment.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(&fakeUseCase{err: tt.err}, uuid.New(), tt.target).Code)
		})
	}
}

package create_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type fakeUseCase struct {
	got *createAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createAppointment.Request) (*models.AppointmentResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: 42, ProfessionalID: req.ProfessionalID, Status: string(domain.StatusScheduled)}, nil
}

const validBody = `{"professionalId":1,"clientId":2,"serviceId":3,"date":"2025-10-20","startTime":"09:15","note":"primeira consulta"}`

func post(h *Handler, tenantID *uuid.UUID, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	if tenantID != nil {
		r = r.WithContext(middleware.WithTenantID(r.Context(), *tenantID))
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandler_Created(t *testing.T) {
	tenantID := uuid.New()
	uc := &fakeUseCase{}

	w := post(NewHandler(uc, logger.NewNop()), &tenantID, validBody)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":42`)

	require.NotNil(t, uc.got)
	assert.Equal(t, tenantID, uc.got.TenantID)
	assert.Equal(t, types.NewDate(2025, time.October, 20), uc.got.Date)
	assert.Equal(t, types.TimeString("09:15"), uc.got.StartTime)
	assert.Equal(t, domain.ChannelStaff, uc.got.Channel)
	require.NotNil(t, uc.got.Note)
	assert.Nil(t, uc.got.SessionPrice)
}

func TestHandler_BadRequest(t *testing.T) {
	tenantID := uuid.New()
	for _, body := range []string{
		`{`,
		`{"professionalId":1,"date":"20/10/2025"}`,
		`{"professionalId":1,"unknown":true}`,
	} {
		uc := &fakeUseCase{}
		w := post(NewHandler(uc, logger.NewNop()), &tenantID, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Nil(t, uc.got)
	}
}

func TestHandler_MissingTenant(t *testing.T) {
	w := post(NewHandler(&fakeUseCase{}, logger.NewNop()), nil, validBody)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "overlap", err: createAppointment.ErrSlotTaken, want: http.StatusConflict},
		{name: "professional", err: createAppointment.ErrProfessionalNotFound, want: http.StatusNotFound},
		{name: "client", err: createAppointment.ErrClientNotFound, want: http.StatusNotFound},
		{name: "validation", err: createAppointment.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "internal", err: createAppointment.ErrInternal, want: http.StatusInternalServerError},
	}

	tenantID := uuid.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop()), &tenantID, validBody)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

package delete_professional

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/professionals"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f fakeService) Delete(context.Context, uuid.UUID, int64) error {
	return f.err
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "deleted", target: "/professionals/3", want: http.StatusNoContent},
		{name: "bad id", target: "/professionals/-3", want: http.StatusBadRequest},
		{name: "upcoming", target: "/professionals/3", err: professionals.ErrHasUpcomingAppointments, want: http.StatusConflict},
		{name: "history", target: "/professionals/3", err: professionals.ErrHasHistory, want: http.StatusConflict},
		{name: "not found", target: "/professionals/3", err: professionals.ErrProfessionalNotFound, want: http.StatusNotFound},
		{name: "internal", target: "/professionals/3", err: professionals.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(fakeService{err: tt.err}, logger.NewNop())
			router := mux.NewRouter()
			router.HandleFunc("/professionals/{professionalId}", func(w http.ResponseWriter, r *http.Request) {
				h.Handle(w, r.WithContext(middleware.WithTenantID(r.Context(), uuid.New())))
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, tt.target, nil))
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusNoContent {
				assert.Empty(t, w.Body.String())
			}
		})
	}
}

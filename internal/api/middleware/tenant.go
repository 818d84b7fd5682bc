package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

// TenantIDHeader заголовок, который выставляет внешний шлюз сессий
const TenantIDHeader = "X-Tenant-ID"

const (
	msgMissingTenant = "отсутствует или некорректен X-Tenant-ID"
	msgInvalidTenant = "некорректный ID организации"
)

type tenantKey struct{}

// WithTenantID кладёт ID тенанта в контекст
func WithTenantID(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, tenantKey{}, tenantID)
}

// GetTenantID достаёт ID тенанта из контекста
func GetTenantID(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(tenantKey{}).(uuid.UUID)
	return tenantID, ok && tenantID != uuid.Nil
}

// Tenant требует заголовок X-Tenant-ID у внутренних маршрутов
func Tenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := uuid.Parse(r.Header.Get(TenantIDHeader))
		if err != nil || tenantID == uuid.Nil {
			handlers.RespondUnauthorized(w, msgMissingTenant)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithTenantID(r.Context(), tenantID)))
	})
}

// PathTenant берёт тенанта из {tenantId} публичных маршрутов
func PathTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := uuid.Parse(mux.Vars(r)["tenantId"])
		if err != nil || tenantID == uuid.Nil {
			handlers.RespondBadRequest(w, msgInvalidTenant)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithTenantID(r.Context(), tenantID)))
	})
}

package timezone

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
)

// Resolver определяет часовой пояс тенанта.
// Даты расписания гражданские: "2025-10-15 09:00" превращается в момент времени
// только в часовом поясе тенанта, а не в UTC сервера.
type Resolver struct {
	tenantRepo TenantRepository
	fallback   *time.Location
	logger     Logger

	mu    sync.RWMutex
	cache map[string]*time.Location
}

// NewResolver создает resolver; fallback используется, если у тенанта пояс не задан или некорректен
func NewResolver(tenantRepo TenantRepository, fallback *time.Location, logger Logger) *Resolver {
	if fallback == nil {
		fallback = time.UTC
	}
	return &Resolver{
		tenantRepo: tenantRepo,
		fallback:   fallback,
		logger:     logger,
		cache:      make(map[string]*time.Location),
	}
}

// Location часовой пояс тенанта
func (r *Resolver) Location(ctx context.Context, tenantID uuid.UUID) (*time.Location, error) {
	tenant, err := r.tenantRepo.GetTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrTenantNotFound) {
			r.logger.Warn("Location: tenant=%s not found", tenantID)
			return nil, ErrTenantNotFound
		}
		r.logger.Error("Location: failed to get tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Location - repository error: %v", domain.ErrInternal, err)
	}

	if tenant.TimeZone == "" {
		return r.fallback, nil
	}

	return r.load(tenant.TimeZone, tenantID), nil
}

func (r *Resolver) load(name string, tenantID uuid.UUID) *time.Location {
	r.mu.RLock()
	loc, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		return loc
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		r.logger.Warn("Location: tenant=%s has invalid time zone %q, using %s", tenantID, name, r.fallback)
		return r.fallback
	}

	r.mu.Lock()
	r.cache[name] = loc
	r.mu.Unlock()

	return loc
}

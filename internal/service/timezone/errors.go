package timezone

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrTenantNotFound возвращается, когда тенант не найден
	ErrTenantNotFound = fmt.Errorf("%w: tenant", domain.ErrNotFound)
)

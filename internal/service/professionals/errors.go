package professionals

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrProfessionalNotFound возвращается, когда специалист не найден в тенанте
	ErrProfessionalNotFound = fmt.Errorf("%w: professional", domain.ErrNotFound)

	// ErrHasUpcomingAppointments возвращается, когда у специалиста есть будущие записи
	ErrHasUpcomingAppointments = fmt.Errorf("%w: professional has upcoming appointments", domain.ErrConflict)

	// ErrHasHistory возвращается, когда на специалиста ссылаются прошлые записи
	ErrHasHistory = fmt.Errorf("%w: professional has appointment history", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: professionals service", domain.ErrInternal)
)

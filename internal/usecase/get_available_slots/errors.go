package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrProfessionalNotFound возвращается, когда специалист не найден в тенанте
	ErrProfessionalNotFound = fmt.Errorf("%w: professional", domain.ErrNotFound)

	// ErrInvalidDuration возвращается при неположительной длительности услуги
	ErrInvalidDuration = fmt.Errorf("%w: service duration must be positive", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: get_available_slots", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: get_available_slots", domain.ErrInternal)
)

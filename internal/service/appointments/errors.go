package appointments

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена в тенанте
	ErrAppointmentNotFound = fmt.Errorf("%w: appointment", domain.ErrNotFound)

	// ErrProfessionalNotFound возвращается, когда специалист не найден в тенанте
	ErrProfessionalNotFound = fmt.Errorf("%w: professional", domain.ErrNotFound)

	// ErrTransitionNotAllowed возвращается, когда машина состояний запрещает переход
	ErrTransitionNotAllowed = fmt.Errorf("%w: status transition not allowed", domain.ErrImmutableState)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: appointments service", domain.ErrInternal)
)

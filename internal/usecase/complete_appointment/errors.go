package complete_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена в тенанте
	ErrAppointmentNotFound = fmt.Errorf("%w: appointment", domain.ErrNotFound)

	// ErrCompleteNotAllowed возвращается, когда запись отменена или клиент не пришёл
	ErrCompleteNotAllowed = fmt.Errorf("%w: cannot complete appointment", domain.ErrImmutableState)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: complete_appointment", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: complete_appointment", domain.ErrInternal)
)

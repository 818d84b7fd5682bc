package workcalendar

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrEntryNotFound возвращается, когда на день недели нет расписания
	ErrEntryNotFound = fmt.Errorf("%w: work calendar entry", domain.ErrNotFound)

	// ErrProfessionalNotFound возвращается, когда специалист не найден в тенанте
	ErrProfessionalNotFound = fmt.Errorf("%w: professional", domain.ErrNotFound)

	// ErrInvalidWeekday возвращается, когда день недели вне 0..6
	ErrInvalidWeekday = fmt.Errorf("%w: weekday must be in 0..6", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: work calendar service", domain.ErrInternal)
)

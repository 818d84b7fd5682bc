package create_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrProfessionalNotFound возвращается, когда специалист не найден в тенанте
	ErrProfessionalNotFound = fmt.Errorf("%w: professional", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена в тенанте
	ErrServiceNotFound = fmt.Errorf("%w: service", domain.ErrNotFound)

	// ErrClientNotFound возвращается, когда клиент не найден в тенанте
	ErrClientNotFound = fmt.Errorf("%w: client", domain.ErrNotFound)

	// ErrSlotTaken возвращается, когда окно пересекается с другой активной записью специалиста
	ErrSlotTaken = fmt.Errorf("%w: slot is no longer available", domain.ErrOverlap)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_appointment", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: create_appointment", domain.ErrInternal)
)

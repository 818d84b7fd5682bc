package update_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена в тенанте
	ErrAppointmentNotFound = fmt.Errorf("%w: appointment", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда новая услуга не найдена в тенанте
	ErrServiceNotFound = fmt.Errorf("%w: service", domain.ErrNotFound)

	// ErrClientNotFound возвращается, когда новый клиент не найден в тенанте
	ErrClientNotFound = fmt.Errorf("%w: client", domain.ErrNotFound)

	// ErrNotEditable возвращается при изменении полей кроме заметки в завершённой, отменённой или неявке
	ErrNotEditable = fmt.Errorf("%w: only note can be changed", domain.ErrImmutableState)

	// ErrSlotTaken возвращается, когда новое окно пересекается с другой активной записью
	ErrSlotTaken = fmt.Errorf("%w: slot is no longer available", domain.ErrOverlap)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: update_appointment", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: update_appointment", domain.ErrInternal)
)

package clients

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrClientNotFound возвращается, когда клиент не найден в тенанте
	ErrClientNotFound = fmt.Errorf("%w: client", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных данных клиента
	ErrInvalidInput = fmt.Errorf("%w: client", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: clients service", domain.ErrInternal)
)

package workcalendar

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CalendarRepository интерфейс репозитория рабочего календаря
type CalendarRepository interface {
	GetByWeekday(ctx context.Context, tenantID uuid.UUID, professionalID int64, weekday time.Weekday) (*domain.WorkCalendarEntry, error)
	ListByProfessional(ctx context.Context, tenantID uuid.UUID, professionalID int64) ([]*domain.WorkCalendarEntry, error)
	Create(ctx context.Context, entry *domain.WorkCalendarEntry) (*domain.WorkCalendarEntry, error)
	DeleteByProfessional(ctx context.Context, tenantID uuid.UUID, professionalID int64) (int64, error)
}

// ProfessionalRepository интерфейс чтения специалистов
type ProfessionalRepository interface {
	GetProfessional(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Professional, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

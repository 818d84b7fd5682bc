package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentFilter, lock bool) ([]*domain.Appointment, error)
}

// CalendarRepository интерфейс репозитория рабочего календаря
type CalendarRepository interface {
	GetByWeekday(ctx context.Context, tenantID uuid.UUID, professionalID int64, weekday time.Weekday) (*domain.WorkCalendarEntry, error)
}

// CatalogRepository интерфейс чтения специалистов и услуг
type CatalogRepository interface {
	GetProfessional(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Professional, error)
	GetService(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Service, error)
}

// TimeZoneResolver интерфейс определения часового пояса тенанта
type TimeZoneResolver interface {
	Location(ctx context.Context, tenantID uuid.UUID) (*time.Location, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

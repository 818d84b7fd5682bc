package create_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter, lock bool) ([]*domain.Appointment, error)
}

// CatalogRepository интерфейс чтения специалистов и услуг
type CatalogRepository interface {
	GetProfessional(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Professional, error)
	GetService(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Service, error)
}

// ClientRepository интерфейс чтения клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Client, error)
}

// OutboxRepository интерфейс записи событий outbox
type OutboxRepository interface {
	Insert(ctx context.Context, event *domain.OutboxEvent) error
}

// TimeZoneResolver интерфейс определения часового пояса тенанта
type TimeZoneResolver interface {
	Location(ctx context.Context, tenantID uuid.UUID) (*time.Location, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	IncAppointmentCreated(channel string)
	IncOverlapRejected(stage string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

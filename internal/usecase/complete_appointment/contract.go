package complete_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, tenantID uuid.UUID, id int64, status domain.AppointmentStatus) error
}

// FinanceRepository интерфейс репозитория финансовых записей
type FinanceRepository interface {
	Create(ctx context.Context, entry *domain.FinancialEntry) (*domain.FinancialEntry, error)
	GetByAppointment(ctx context.Context, tenantID uuid.UUID, appointmentID int64) (*domain.FinancialEntry, error)
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
	IncStatusTransition(status string)
	IncFinancialEntry()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

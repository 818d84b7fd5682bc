package professionals

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AppointmentRepository интерфейс подсчёта будущих записей
type AppointmentRepository interface {
	CountUpcoming(ctx context.Context, tenantID uuid.UUID, professionalID int64, now time.Time) (int, error)
}

// ProfessionalRepository интерфейс удаления специалистов
type ProfessionalRepository interface {
	DeleteProfessional(ctx context.Context, tenantID uuid.UUID, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

// Now возвращает текущее время
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

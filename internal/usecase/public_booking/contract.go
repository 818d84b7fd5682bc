package public_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	clientModels "github.com/m04kA/SMC-SchedulingService/internal/service/clients/models"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
)

// ClientResolver находит клиента по телефону или создаёт нового
type ClientResolver interface {
	Resolve(ctx context.Context, tenantID uuid.UUID, req *clientModels.FindOrCreateRequest) (*domain.Client, error)
}

// AppointmentCreator создаёт запись с проверкой пересечения
type AppointmentCreator interface {
	Execute(ctx context.Context, req *create_appointment.Request) (*models.AppointmentResponse, error)
}

// TimeZoneResolver интерфейс определения часового пояса тенанта
type TimeZoneResolver interface {
	Location(ctx context.Context, tenantID uuid.UUID) (*time.Location, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

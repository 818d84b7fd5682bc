package appointment_status

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

type AppointmentService interface {
	Confirm(ctx context.Context, tenantID uuid.UUID, id int64) (*models.AppointmentResponse, error)
	Cancel(ctx context.Context, tenantID uuid.UUID, id int64) (*models.AppointmentResponse, error)
	MarkNoShow(ctx context.Context, tenantID uuid.UUID, id int64) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

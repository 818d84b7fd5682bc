package work_calendar

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/service/workcalendar/models"
)

type WorkCalendarService interface {
	Get(ctx context.Context, tenantID uuid.UUID, professionalID int64, weekday time.Weekday) (*models.EntryResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, professionalID int64) (*models.ScheduleResponse, error)
	Replace(ctx context.Context, tenantID uuid.UUID, professionalID int64, req *models.ReplaceScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

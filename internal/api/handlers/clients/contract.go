package clients

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/service/clients/models"
)

type ClientService interface {
	FindOrCreate(ctx context.Context, tenantID uuid.UUID, req *models.FindOrCreateRequest) (*models.ClientResponse, error)
	Get(ctx context.Context, tenantID uuid.UUID, id int64) (*models.ClientResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

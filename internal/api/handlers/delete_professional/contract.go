package delete_professional

import (
	"context"

	"github.com/google/uuid"
)

type ProfessionalService interface {
	Delete(ctx context.Context, tenantID uuid.UUID, professionalID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

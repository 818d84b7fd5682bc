package public_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request запрос на запись со страницы бронирования
type Request struct {
	TenantID       uuid.UUID        `json:"-"`
	ProfessionalID int64            `json:"professionalId"`
	ServiceID      int64            `json:"serviceId"`
	Date           types.Date       `json:"date"`
	StartTime      types.TimeString `json:"startTime"`
	ClientName     string           `json:"clientName"`
	ClientPhone    string           `json:"clientPhone"`
	ClientEmail    *string          `json:"clientEmail,omitempty"`
	Note           *string          `json:"note,omitempty"`
}

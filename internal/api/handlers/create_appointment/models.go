package create_appointment

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ProfessionalID int64            `json:"professionalId"`
	ClientID       int64            `json:"clientId"`
	ServiceID      int64            `json:"serviceId"`
	Date           types.Date       `json:"date"`      // "2025-10-15"
	StartTime      types.TimeString `json:"startTime"` // "10:00"
	SessionPrice   *float64         `json:"sessionPrice,omitempty"`
	Note           *string          `json:"note,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(tenantID uuid.UUID) *createAppointment.Request {
	return &createAppointment.Request{
		TenantID:       tenantID,
		ProfessionalID: r.ProfessionalID,
		ClientID:       r.ClientID,
		ServiceID:      r.ServiceID,
		Date:           r.Date,
		StartTime:      r.StartTime,
		SessionPrice:   r.SessionPrice,
		Note:           r.Note,
		Channel:        domain.ChannelStaff,
	}
}

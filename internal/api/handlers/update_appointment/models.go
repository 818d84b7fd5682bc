package update_appointment

import (
	"github.com/google/uuid"

	updateAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// UpdateAppointmentRequest HTTP request model; отсутствующее поле не меняется
type UpdateAppointmentRequest struct {
	Date         *types.Date       `json:"date,omitempty"`
	StartTime    *types.TimeString `json:"startTime,omitempty"`
	ServiceID    *int64            `json:"serviceId,omitempty"`
	ClientID     *int64            `json:"clientId,omitempty"`
	SessionPrice *float64          `json:"sessionPrice,omitempty"`
	Note         *string           `json:"note,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(tenantID uuid.UUID, appointmentID int64) *updateAppointment.Request {
	return &updateAppointment.Request{
		TenantID:      tenantID,
		AppointmentID: appointmentID,
		Date:          r.Date,
		StartTime:     r.StartTime,
		ServiceID:     r.ServiceID,
		ClientID:      r.ClientID,
		SessionPrice:  r.SessionPrice,
		Note:          r.Note,
	}
}

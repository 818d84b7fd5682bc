package update_appointment

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на изменение записи. nil - поле не меняется.
type Request struct {
	TenantID      uuid.UUID
	AppointmentID int64

	Date         *types.Date       // новая дата; время остаётся прежним, если StartTime не задан
	StartTime    *types.TimeString // новое время начала; дата остаётся прежней, если Date не задана
	ServiceID    *int64            // новая услуга пересчитывает окончание
	ClientID     *int64
	SessionPrice *float64
	Note         *string
}

func (r *Request) onlyNote() bool {
	return r.Date == nil && r.StartTime == nil && r.ServiceID == nil &&
		r.ClientID == nil && r.SessionPrice == nil
}

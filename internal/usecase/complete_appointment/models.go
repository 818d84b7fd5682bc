package complete_appointment

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

// Request модель запроса на завершение визита
type Request struct {
	TenantID      uuid.UUID
	AppointmentID int64
}

// Response завершённая запись и её финансовая запись
type Response struct {
	Appointment    *models.AppointmentResponse    `json:"appointment"`
	FinancialEntry *models.FinancialEntryResponse `json:"financialEntry,omitempty"`
	AlreadyDone    bool                           `json:"alreadyCompleted"`
}

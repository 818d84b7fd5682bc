package get_available_slots

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	TenantID       uuid.UUID  // ID тенанта
	ProfessionalID int64      // ID специалиста
	ServiceID      int64      // ID услуги; неизвестная услуга - длительность по умолчанию
	Date           types.Date // Гражданская дата в часовом поясе тенанта
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            types.Date         // Дата, на которую запрашивались слоты
	ProfessionalID  int64              // ID специалиста
	ServiceID       int64              // ID услуги
	DurationMinutes int                // Длительность, по которой строилась сетка
	TimeZone        string             // Часовой пояс тенанта
	Slots           []types.TimeString // Время начала слотов, "HH:MM"
}

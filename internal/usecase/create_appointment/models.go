package create_appointment

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	TenantID       uuid.UUID        // ID тенанта
	ProfessionalID int64            // ID специалиста
	ClientID       int64            // ID клиента
	ServiceID      int64            // ID услуги, определяет длительность
	Date           types.Date       // Гражданская дата в часовом поясе тенанта
	StartTime      types.TimeString // Время начала, "HH:MM"; может не совпадать с сеткой слотов
	SessionPrice   *float64         // nil - цена специалиста по умолчанию
	Note           *string          // Заметка (опционально)
	Channel        string           // staff | public, метка метрик
}

package kafka

// Заголовки сообщений с событиями outbox
const (
	HeaderEventID   = "event_id"
	HeaderEventType = "event_type"
	HeaderTenantID  = "tenant_id"
)

package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// FinancialCategory category of a ledger entry
type FinancialCategory string

const CategoryServiceRevenue FinancialCategory = "service_revenue"

// FinancialEntry revenue record produced when an appointment completes.
// One entry per appointment at most.
type FinancialEntry struct {
	ID            int64
	TenantID      uuid.UUID
	AppointmentID int64
	Amount        float64
	Category      FinancialCategory
	CreatedAt     time.Time
}

// Типы событий outbox
const (
	EventAppointmentCreated   = "appointment.created"
	EventAppointmentCanceled  = "appointment.canceled"
	EventAppointmentCompleted = "appointment.completed"
	EventAppointmentNoShow    = "appointment.no_show"
	EventFinanceEntryCreated  = "finance.entry.created"

	AggregateAppointment  = "appointment"
	AggregateFinanceEntry = "financial_entry"
)

// OutboxEvent event written in the same transaction as the state change
type OutboxEvent struct {
	ID            int64
	EventID       uuid.UUID
	TenantID      uuid.UUID
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// NewOutboxEvent marshals payload into a new unpublished event
func NewOutboxEvent(tenantID uuid.UUID, aggregateType string, aggregateID int64, eventType string, payload interface{}) (*OutboxEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal %s payload: %v", ErrInternal, eventType, err)
	}
	return &OutboxEvent{
		EventID:       uuid.New(),
		TenantID:      tenantID,
		AggregateType: aggregateType,
		AggregateID:   strconv.FormatInt(aggregateID, 10),
		EventType:     eventType,
		Payload:       data,
	}, nil
}

// AppointmentEventPayload тело событий appointment.*
type AppointmentEventPayload struct {
	AppointmentID  int64     `json:"appointmentId"`
	TenantID       string    `json:"tenantId"`
	ProfessionalID int64     `json:"professionalId"`
	ClientID       int64     `json:"clientId"`
	ServiceID      int64     `json:"serviceId"`
	StartAt        time.Time `json:"startAt"`
	EndAt          time.Time `json:"endAt"`
	Status         string    `json:"status"`
}

// NewAppointmentEventPayload snapshot of an appointment for events
func NewAppointmentEventPayload(a *Appointment) AppointmentEventPayload {
	return AppointmentEventPayload{
		AppointmentID:  a.ID,
		TenantID:       a.TenantID.String(),
		ProfessionalID: a.ProfessionalID,
		ClientID:       a.ClientID,
		ServiceID:      a.ServiceID,
		StartAt:        a.StartAt.UTC(),
		EndAt:          a.EndAt.UTC(),
		Status:         string(a.Status),
	}
}

// FinanceEntryEventPayload тело события finance.entry.created
type FinanceEntryEventPayload struct {
	EntryID       int64   `json:"entryId"`
	TenantID      string  `json:"tenantId"`
	AppointmentID int64   `json:"appointmentId"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
}

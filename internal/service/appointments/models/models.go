package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Response модели

// AppointmentResponse ответ с данными записи.
// Date, StartTime и EndTime выражены в часовом поясе тенанта.
type AppointmentResponse struct {
	ID              int64     `json:"id"`
	TenantID        string    `json:"tenantId"`
	ProfessionalID  int64     `json:"professionalId"`
	ClientID        int64     `json:"clientId"`
	ServiceID       int64     `json:"serviceId"`
	Date            string    `json:"date"`      // "2025-10-15"
	StartTime       string    `json:"startTime"` // "10:00"
	EndTime         string    `json:"endTime"`   // "10:30"
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	Note            *string   `json:"note,omitempty"`
	SessionPrice    *float64  `json:"sessionPrice,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FinancialEntryResponse финансовая запись, созданная при завершении визита
type FinancialEntryResponse struct {
	ID            int64     `json:"id"`
	AppointmentID int64     `json:"appointmentId"`
	Amount        float64   `json:"amount"`
	Category      string    `json:"category"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Конвертеры domain -> response

// FromDomainAppointment конвертирует domain.Appointment в AppointmentResponse
func FromDomainAppointment(a *domain.Appointment, loc *time.Location) *AppointmentResponse {
	if a == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	start := a.StartAt.In(loc)
	end := a.EndAt.In(loc)

	return &AppointmentResponse{
		ID:              a.ID,
		TenantID:        a.TenantID.String(),
		ProfessionalID:  a.ProfessionalID,
		ClientID:        a.ClientID,
		ServiceID:       a.ServiceID,
		Date:            types.DateOf(start, loc).String(),
		StartTime:       start.Format(domain.TimeFormat),
		EndTime:         end.Format(domain.TimeFormat),
		StartAt:         start,
		EndAt:           end,
		DurationMinutes: a.DurationMinutes(),
		Status:          string(a.Status),
		Note:            a.Note,
		SessionPrice:    a.SessionPrice,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список записей
func FromDomainAppointmentList(list []*domain.Appointment, loc *time.Location) *AppointmentListResponse {
	result := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
		Total:        len(list),
	}
	for _, a := range list {
		result.Appointments = append(result.Appointments, *FromDomainAppointment(a, loc))
	}
	return result
}

// FromDomainFinancialEntry конвертирует domain.FinancialEntry
func FromDomainFinancialEntry(e *domain.FinancialEntry) *FinancialEntryResponse {
	if e == nil {
		return nil
	}
	return &FinancialEntryResponse{
		ID:            e.ID,
		AppointmentID: e.AppointmentID,
		Amount:        e.Amount,
		Category:      string(e.Category),
		CreatedAt:     e.CreatedAt,
	}
}

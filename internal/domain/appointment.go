package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCanceled  AppointmentStatus = "canceled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// transitions допустимые переходы между статусами.
// completed и canceled терминальные; no_show можно только отменить.
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled: {StatusConfirmed, StatusCompleted, StatusCanceled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCanceled, StatusNoShow},
	StatusNoShow:    {StatusCanceled},
}

// ParseAppointmentStatus converts a string into a known status
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch st := AppointmentStatus(s); st {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCanceled, StatusNoShow:
		return st, true
	default:
		return "", false
	}
}

// IsTerminal returns true if no transition leaves this status
func (s AppointmentStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo reports whether the state machine allows s -> next
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Appointment represents a booked session of one professional with one client
type Appointment struct {
	ID             int64
	TenantID       uuid.UUID
	ProfessionalID int64
	ClientID       int64
	ServiceID      int64
	StartAt        time.Time
	EndAt          time.Time // фиксируется при создании, изменение длительности услуги его не трогает
	Status         AppointmentStatus
	Note           *string
	SessionPrice   *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies its time window
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCanceled
}

// IsEditable returns true if fields other than the note may change
func (a *Appointment) IsEditable() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// Overlaps half-open interval check: [a.StartAt, a.EndAt) and [start, end)
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartAt.Before(end) && start.Before(a.EndAt)
}

// DurationMinutes length of the frozen window
func (a *Appointment) DurationMinutes() int {
	return int(a.EndAt.Sub(a.StartAt) / time.Minute)
}

// AppointmentFilter фильтр выборки записей специалиста
type AppointmentFilter struct {
	TenantID        uuid.UUID
	ProfessionalID  int64
	From            time.Time // включительно, по end_at > From
	To              time.Time // исключительно, по start_at < To
	IncludeCanceled bool
	ExcludeID       *int64 // исключить запись (при переносе самой себя)
}

// AppointmentChanges изменяемые поля записи (nil - не менять)
type AppointmentChanges struct {
	StartAt      *time.Time
	EndAt        *time.Time
	ServiceID    *int64
	ClientID     *int64
	SessionPrice *float64
	Note         *string
}

// OnlyNote true, если меняется только заметка
func (c AppointmentChanges) OnlyNote() bool {
	return c.StartAt == nil && c.EndAt == nil && c.ServiceID == nil &&
		c.ClientID == nil && c.SessionPrice == nil
}

// IsEmpty true, если ничего не меняется
func (c AppointmentChanges) IsEmpty() bool {
	return c.OnlyNote() && c.Note == nil
}

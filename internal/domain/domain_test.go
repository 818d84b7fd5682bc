package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func TestAppointmentStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to AppointmentStatus
		allowed  bool
	}{
		{StatusScheduled, StatusConfirmed, true},
		{StatusScheduled, StatusCompleted, true},
		{StatusScheduled, StatusCanceled, true},
		{StatusScheduled, StatusNoShow, true},
		{StatusConfirmed, StatusScheduled, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusNoShow, StatusCanceled, true},
		{StatusNoShow, StatusCompleted, false},
		{StatusCompleted, StatusCanceled, false},
		{StatusCanceled, StatusScheduled, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}

	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCanceled.IsTerminal())
	assert.False(t, StatusNoShow.IsTerminal())
	assert.False(t, StatusScheduled.IsTerminal())
}

func TestParseAppointmentStatus(t *testing.T) {
	st, ok := ParseAppointmentStatus("no_show")
	assert.True(t, ok)
	assert.Equal(t, StatusNoShow, st)

	_, ok = ParseAppointmentStatus("pending")
	assert.False(t, ok)
}

func TestAppointment_OverlapsHalfOpen(t *testing.T) {
	day := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	a := &Appointment{StartAt: day.Add(9 * time.Hour), EndAt: day.Add(10 * time.Hour)}

	assert.True(t, a.Overlaps(day.Add(9*time.Hour+30*time.Minute), day.Add(11*time.Hour)))
	assert.True(t, a.Overlaps(day.Add(8*time.Hour), day.Add(12*time.Hour)))
	// граничащие интервалы не пересекаются
	assert.False(t, a.Overlaps(day.Add(10*time.Hour), day.Add(11*time.Hour)))
	assert.False(t, a.Overlaps(day.Add(8*time.Hour), day.Add(9*time.Hour)))
	assert.Equal(t, 60, a.DurationMinutes())
}

func TestAppointmentChanges(t *testing.T) {
	assert.True(t, AppointmentChanges{}.IsEmpty())
	assert.True(t, AppointmentChanges{Note: ptr.Ptr("x")}.OnlyNote())
	assert.False(t, AppointmentChanges{ServiceID: ptr.Ptr(int64(1))}.OnlyNote())
}

func ts(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

func TestWorkCalendarEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   WorkCalendarEntry
		wantErr bool
	}{
		{"valid no break", WorkCalendarEntry{Weekday: time.Monday, StartTime: "08:00", EndTime: "12:00"}, false},
		{"valid break", WorkCalendarEntry{Weekday: time.Monday, StartTime: "08:00", EndTime: "12:00", BreakStart: ts("10:00"), BreakEnd: ts("10:30")}, false},
		{"break touching edges", WorkCalendarEntry{Weekday: time.Friday, StartTime: "08:00", EndTime: "12:00", BreakStart: ts("08:00"), BreakEnd: ts("12:00")}, false},
		{"start equals end", WorkCalendarEntry{Weekday: time.Monday, StartTime: "08:00", EndTime: "08:00"}, true},
		{"start after end", WorkCalendarEntry{Weekday: time.Monday, StartTime: "12:00", EndTime: "08:00"}, true},
		{"only break start", WorkCalendarEntry{Weekday: time.Monday, StartTime: "08:00", EndTime: "12:00", BreakStart: ts("10:00")}, true},
		{"break before start", WorkCalendarEntry{Weekday: time.Monday, StartTime: "08:00", EndTime: "12:00", BreakStart: ts("07:30"), BreakEnd: ts("09:00")}, true},
		{"break after end", WorkCalendarEntry{Weekday: time.Monday, StartTime: "08:00", EndTime: "12:00", BreakStart: ts("11:30"), BreakEnd: ts("12:30")}, true},
		{"empty break", WorkCalendarEntry{Weekday: time.Monday, StartTime: "08:00", EndTime: "12:00", BreakStart: ts("10:00"), BreakEnd: ts("10:00")}, true},
		{"bad weekday", WorkCalendarEntry{Weekday: 7, StartTime: "08:00", EndTime: "12:00"}, true},
		{"bad time", WorkCalendarEntry{Weekday: time.Monday, StartTime: "8am", EndTime: "12:00"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSchedule_DuplicateWeekday(t *testing.T) {
	entries := []WorkCalendarEntry{
		{Weekday: time.Monday, StartTime: "08:00", EndTime: "12:00"},
		{Weekday: time.Monday, StartTime: "13:00", EndTime: "18:00"},
	}
	assert.ErrorIs(t, ValidateSchedule(entries), ErrValidation)
	assert.NoError(t, ValidateSchedule(entries[:1]))
}

func TestNormalizePhone(t *testing.T) {
	phone, err := NormalizePhone("+55 (11) 91234-5678")
	require.NoError(t, err)
	assert.Equal(t, "5511912345678", phone)

	_, err = NormalizePhone("12-34")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewOutboxEvent(t *testing.T) {
	a := &Appointment{ID: 7, Status: StatusCompleted}
	ev, err := NewOutboxEvent(a.TenantID, AggregateAppointment, a.ID, EventAppointmentCompleted, NewAppointmentEventPayload(a))
	require.NoError(t, err)

	assert.Equal(t, "7", ev.AggregateID)
	assert.Equal(t, EventAppointmentCompleted, ev.EventType)
	assert.Contains(t, string(ev.Payload), `"status":"completed"`)
	assert.Nil(t, ev.PublishedAt)
}

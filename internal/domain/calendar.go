package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// WorkCalendarEntry availability window of a professional for one weekday.
// Weekday follows time.Weekday: 0 = Sunday ... 6 = Saturday.
type WorkCalendarEntry struct {
	ID             int64
	TenantID       uuid.UUID
	ProfessionalID int64
	Weekday        time.Weekday
	StartTime      types.TimeString
	EndTime        types.TimeString
	BreakStart     *types.TimeString
	BreakEnd       *types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasBreak returns true if the entry has a break
func (e *WorkCalendarEntry) HasBreak() bool {
	return e.BreakStart != nil && e.BreakEnd != nil
}

// Validate checks the entry shape:
// start < end, break both-or-none, start <= breakStart < breakEnd <= end.
func (e *WorkCalendarEntry) Validate() error {
	if e.Weekday < time.Sunday || e.Weekday > time.Saturday {
		return fmt.Errorf("%w: weekday must be in 0..6, got %d", ErrValidation, e.Weekday)
	}
	if err := e.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrValidation, err)
	}
	if err := e.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrValidation, err)
	}
	if !e.StartTime.IsBefore(e.EndTime) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrValidation, e.StartTime, e.EndTime)
	}

	if (e.BreakStart == nil) != (e.BreakEnd == nil) {
		return fmt.Errorf("%w: break start and break end must be set together", ErrValidation)
	}
	if !e.HasBreak() {
		return nil
	}

	if err := e.BreakStart.Validate(); err != nil {
		return fmt.Errorf("%w: break start: %v", ErrValidation, err)
	}
	if err := e.BreakEnd.Validate(); err != nil {
		return fmt.Errorf("%w: break end: %v", ErrValidation, err)
	}
	if e.BreakStart.IsBefore(e.StartTime) || !e.BreakStart.IsBefore(*e.BreakEnd) || e.BreakEnd.IsAfter(e.EndTime) {
		return fmt.Errorf("%w: break %s-%s must lie within %s-%s",
			ErrValidation, *e.BreakStart, *e.BreakEnd, e.StartTime, e.EndTime)
	}
	return nil
}

// ValidateSchedule validates every entry and rejects duplicate weekdays
func ValidateSchedule(entries []WorkCalendarEntry) error {
	seen := make(map[time.Weekday]bool, len(entries))
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if seen[entries[i].Weekday] {
			return fmt.Errorf("%w: duplicate weekday %d", ErrValidation, entries[i].Weekday)
		}
		seen[entries[i].Weekday] = true
	}
	return nil
}

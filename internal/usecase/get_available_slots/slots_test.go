package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func tsPtr(s string) *types.TimeString {
	t := types.TimeString(s)
	return &t
}

func mondayWithBreak() *domain.WorkCalendarEntry {
	return &domain.WorkCalendarEntry{
		Weekday:    time.Monday,
		StartTime:  "08:00",
		EndTime:    "12:00",
		BreakStart: tsPtr("10:00"),
		BreakEnd:   tsPtr("10:30"),
	}
}

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name     string
		entry    *domain.WorkCalendarEntry
		duration int
		busy     []interval
		want     []types.TimeString
	}{
		{
			name:     "break splits the grid",
			entry:    mondayWithBreak(),
			duration: 60,
			want:     []types.TimeString{"08:00", "09:00", "10:30", "11:00"},
		},
		{
			name:     "booked 09:00-10:00",
			entry:    mondayWithBreak(),
			duration: 60,
			busy:     []interval{{start: 9 * 60, end: 10 * 60}},
			want:     []types.TimeString{"08:00", "10:30", "11:00"},
		},
		{
			name:     "no break, adjacent appointment does not block",
			entry:    &domain.WorkCalendarEntry{StartTime: "09:00", EndTime: "11:00"},
			duration: 30,
			busy:     []interval{{start: 9*60 + 30, end: 10 * 60}},
			want:     []types.TimeString{"09:00", "10:00", "10:30"},
		},
		{
			name:     "service longer than window",
			entry:    &domain.WorkCalendarEntry{StartTime: "09:00", EndTime: "10:00"},
			duration: 90,
			want:     []types.TimeString{},
		},
		{
			name: "window consumed by break",
			entry: &domain.WorkCalendarEntry{
				StartTime: "09:00", EndTime: "10:00", BreakStart: tsPtr("09:00"), BreakEnd: tsPtr("10:00"),
			},
			duration: 30,
			want:     []types.TimeString{},
		},
		{
			name:     "last slot ends exactly at window end",
			entry:    &domain.WorkCalendarEntry{StartTime: "16:00", EndTime: "17:30"},
			duration: 45,
			want:     []types.TimeString{"16:00", "16:45"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := generateSlots(tt.entry, tt.duration, tt.busy)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateSlots_Properties(t *testing.T) {
	entry := &domain.WorkCalendarEntry{
		StartTime: "07:15", EndTime: "19:40", BreakStart: tsPtr("12:05"), BreakEnd: tsPtr("13:20"),
	}
	busy := []interval{{start: 8 * 60, end: 8*60 + 50}, {start: 15 * 60, end: 16*60 + 10}}

	for _, d := range []int{5, 15, 25, 30, 45, 60, 90, 120} {
		slots, err := generateSlots(entry, d, busy)
		require.NoError(t, err)

		for _, s := range slots {
			start := s.Minutes()
			end := start + d
			assert.LessOrEqual(t, end, entry.EndTime.Minutes(), "duration=%d slot=%s", d, s)
			assert.False(t, start < entry.BreakEnd.Minutes() && end > entry.BreakStart.Minutes(),
				"duration=%d slot=%s overlaps break", d, s)
			assert.False(t, overlapsAny(busy, start, end), "duration=%d slot=%s overlaps appointment", d, s)
		}
	}
}

func TestGenerateSlots_InvalidDuration(t *testing.T) {
	_, err := generateSlots(mondayWithBreak(), 0, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBusyIntervals_TenantLocalAndClamped(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	date := types.NewDate(2025, time.October, 13)

	appointments := []*domain.Appointment{
		// 12:00 UTC = 09:00 в Сан-Паулу
		{StartAt: time.Date(2025, 10, 13, 12, 0, 0, 0, time.UTC), EndAt: time.Date(2025, 10, 13, 13, 0, 0, 0, time.UTC), Status: domain.StatusScheduled},
		{StartAt: time.Date(2025, 10, 12, 23, 0, 0, 0, loc), EndAt: time.Date(2025, 10, 13, 1, 0, 0, 0, loc), Status: domain.StatusConfirmed},
		{StartAt: time.Date(2025, 10, 13, 23, 0, 0, 0, loc), EndAt: time.Date(2025, 10, 14, 1, 0, 0, 0, loc), Status: domain.StatusScheduled},
		{StartAt: time.Date(2025, 10, 13, 14, 0, 0, 0, loc), EndAt: time.Date(2025, 10, 13, 15, 0, 0, 0, loc), Status: domain.StatusCanceled},
	}

	got := busyIntervals(appointments, date, loc)
	assert.Equal(t, []interval{
		{start: 9 * 60, end: 10 * 60},
		{start: 0, end: 60},
		{start: 23 * 60, end: minutesPerDay},
	}, got)
}

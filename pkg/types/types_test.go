package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		in   TimeString
		want int
	}{
		{"00:00", 0},
		{"08:30", 510},
		{"23:59", 1439},
		{"bad", -1},
		{"", -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Minutes(), string(tt.in))
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	_, err = TimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("10:30:00")))
	assert.Equal(t, TimeString("10:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestNewTimeStringFromString_Invalid(t *testing.T) {
	_, err := NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestDate_WeekdayIgnoresLocation(t *testing.T) {
	d, err := ParseDate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())

	// Полночь в Токио - это ещё предыдущий день по UTC, но дата остаётся той же.
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	instant := time.Date(2024, 1, 1, 0, 30, 0, 0, tokyo)
	assert.Equal(t, d, DateOf(instant, tokyo))
	assert.Equal(t, time.Monday, DateOf(instant, tokyo).Weekday())
}

func TestDate_At(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	d := NewDate(2024, time.March, 4)
	at, err := d.At("09:15", loc)
	require.NoError(t, err)
	assert.Equal(t, 9, at.Hour())
	assert.Equal(t, 15, at.Minute())
	assert.Equal(t, loc, at.Location())

	_, err = d.At("nope", loc)
	assert.Error(t, err)
}

func TestDate_AddDaysAndBefore(t *testing.T) {
	d := NewDate(2024, time.February, 28)
	assert.Equal(t, NewDate(2024, time.February, 29), d.AddDays(1))
	assert.Equal(t, NewDate(2024, time.March, 1), d.AddDays(2))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.False(t, d.Before(d))
}

func TestDate_TextRoundTrip(t *testing.T) {
	var d Date
	require.NoError(t, d.UnmarshalText([]byte("2025-10-15")))
	b, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2025-10-15", string(b))
	assert.Error(t, d.UnmarshalText([]byte("15.10.2025")))
}

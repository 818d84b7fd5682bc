package get_available_slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const minutesPerDay = 24 * 60

// interval занятый промежуток в минутах от начала дня, [start, end)
type interval struct {
	start int
	end   int
}

// overlaps проверяет пересечение полуинтервалов.
// Граничащие интервалы (один заканчивается там, где начинается другой) не пересекаются.
func (i interval) overlaps(start, end int) bool {
	return start < i.end && end > i.start
}

// generateSlots генерирует время начала слотов длительностью duration минут.
//
// Сетка строится с шагом duration от начала окна и ещё раз от конца перерыва,
// поэтому после перерыва первый слот начинается сразу, а не на следующем шаге сетки.
// Кандидат [c, c+duration) отбрасывается, если пересекает перерыв или занятый интервал.
//
// Пример: окно 08:00-12:00, перерыв 10:00-10:30, duration 60
// - от 08:00: 08:00, 09:00, (10:00 пересекает перерыв), 11:00
// - от 10:30: 10:30
// Результат: 08:00, 09:00, 10:30, 11:00
func generateSlots(entry *domain.WorkCalendarEntry, duration int, busy []interval) ([]types.TimeString, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	windowStart := entry.StartTime.Minutes()
	windowEnd := entry.EndTime.Minutes()

	anchors := []int{windowStart}
	var breakInterval *interval
	if entry.HasBreak() {
		breakInterval = &interval{start: entry.BreakStart.Minutes(), end: entry.BreakEnd.Minutes()}
		if breakInterval.end < windowEnd {
			anchors = append(anchors, breakInterval.end)
		}
	}

	accepted := make(map[int]struct{})
	for _, anchor := range anchors {
		for cursor := anchor; cursor+duration <= windowEnd; cursor += duration {
			end := cursor + duration

			if breakInterval != nil && breakInterval.overlaps(cursor, end) {
				continue
			}
			if overlapsAny(busy, cursor, end) {
				continue
			}
			accepted[cursor] = struct{}{}
		}
	}

	starts := make([]int, 0, len(accepted))
	for m := range accepted {
		starts = append(starts, m)
	}
	sort.Ints(starts)

	slots := make([]types.TimeString, 0, len(starts))
	for _, m := range starts {
		ts, err := types.TimeStringFromMinutes(m)
		if err != nil {
			return nil, err
		}
		slots = append(slots, ts)
	}

	return slots, nil
}

func overlapsAny(busy []interval, start, end int) bool {
	for _, b := range busy {
		if b.overlaps(start, end) {
			return true
		}
	}
	return false
}

// busyIntervals переводит записи в минуты дня по часам тенанта.
// Запись, начавшаяся накануне, занимает день с 00:00; закончившаяся на следующий день - до 24:00.
func busyIntervals(appointments []*domain.Appointment, date types.Date, loc *time.Location) []interval {
	result := make([]interval, 0, len(appointments))
	for _, a := range appointments {
		if !a.IsActive() {
			continue
		}
		result = append(result, interval{
			start: minuteOfDate(a.StartAt, date, loc),
			end:   minuteOfDate(a.EndAt, date, loc),
		})
	}
	return result
}

func minuteOfDate(t time.Time, date types.Date, loc *time.Location) int {
	local := t.In(loc)
	day := types.DateOf(local, loc)
	switch {
	case day.Before(date):
		return 0
	case date.Before(day):
		return minutesPerDay
	default:
		return local.Hour()*60 + local.Minute()
	}
}

package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	HourLayout = "15:04"

	// SlotDuration is fixed: every bookable slot is exactly one hour.
	SlotDuration = time.Hour
)

// Slot is a concrete bookable interval derived from a weekday name and an
// hour string. Times carry the booking zone of the whole system.
type Slot struct {
	Start time.Time
	End   time.Time
}

// weekdayIndex maps the recognized Romanian weekday names to indices with
// Monday = 0. These are the exact seven spellings the spreadsheet headers
// use; lookup is case-folded, nothing else is normalized.
var weekdayIndex = map[string]int{
	"luni":     0,
	"marți":    1,
	"miercuri": 2,
	"joi":      3,
	"vineri":   4,
	"sâmbătă":  5,
	"duminică": 6,
}

// IsWeekday reports whether name (case-folded) is one of the seven
// recognized weekday names.
func IsWeekday(name string) bool {
	_, ok := weekdayIndex[strings.ToLower(name)]
	return ok
}

// mondayIndexed converts Go's Sunday-first weekday to Monday = 0.
func mondayIndexed(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// ResolveNextDate returns the date of the next occurrence of the named
// weekday strictly after today. When today already is that weekday the
// result is a full week out: same-day slots are never offered.
func ResolveNextDate(weekday string, today time.Time) (time.Time, error) {
	target, ok := weekdayIndex[strings.ToLower(weekday)]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidWeekday, weekday)
	}
	ahead := (target - mondayIndexed(today.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	y, m, d := today.AddDate(0, 0, ahead).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, today.Location()), nil
}

// ResolveSlot combines ResolveNextDate with an HH:MM hour string into a
// one-hour interval in today's location.
func ResolveSlot(weekday, hour string, today time.Time) (Slot, error) {
	day, err := ResolveNextDate(weekday, today)
	if err != nil {
		return Slot{}, err
	}
	t, err := time.Parse(HourLayout, hour)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %q", ErrInvalidTime, hour)
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, today.Location())
	return Slot{Start: start, End: start.Add(SlotDuration)}, nil
}

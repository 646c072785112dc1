// Package timeslot holds the pure time arithmetic shared by the
// availability resolver and the booking workflow: HH:MM parsing, slot
// generation from an operating-hours window, and the weekday remap between
// Go's Sunday-first numbering and the Monday-first storage convention.
package timeslot

import (
	"fmt"
	"time"

	apperrors "groundbook/pkg/errors"
)

const (
	TimeLayout = "15:04"
	DateLayout = "2006-01-02"
)

// ParseHHMM converts an HH:MM string to minutes since midnight.
func ParseHHMM(s string) (int, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, apperrors.InvalidInput(fmt.Sprintf("invalid time %q, expected HH:MM", s))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatHHMM converts minutes since midnight back to HH:MM.
func FormatHHMM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// IsValidDate reports whether s is a well-formed YYYY-MM-DD calendar date.
func IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// StorageWeekday remaps Go's native weekday (Sunday=0) to the storage
// convention (Monday=0). Always use this at the boundary; never inline the
// modular arithmetic.
func StorageWeekday(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// WeekdayOf returns the storage weekday for a YYYY-MM-DD date.
func WeekdayOf(date string) (int, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, apperrors.InvalidInput(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}
	return StorageWeekday(t.Weekday()), nil
}

// DayNames is indexed by storage weekday.
var DayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Generate produces the ordered slot start times covering [start, end) at
// the given granularity. A slot is emitted only when the entire duration
// fits before end; no trailing partial slot is ever produced. Deterministic
// for identical inputs.
func Generate(start, end string, durationMin int) ([]string, error) {
	startMin, err := ParseHHMM(start)
	if err != nil {
		return nil, err
	}
	endMin, err := ParseHHMM(end)
	if err != nil {
		return nil, err
	}
	if durationMin <= 0 {
		return nil, apperrors.InvalidInput(fmt.Sprintf("slot duration must be positive, got %d", durationMin))
	}

	var slots []string
	for cur := startMin; cur+durationMin <= endMin; cur += durationMin {
		slots = append(slots, FormatHHMM(cur))
	}
	return slots, nil
}

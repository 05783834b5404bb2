package utils

import (
	"fmt"
	"mediport-service/internal/pkg/constvars"
	"time"
)

// MinutesOfDay converts an HH:MM clock string to minutes since midnight.
func MinutesOfDay(clock string) (int, error) {
	t, err := time.Parse(constvars.TimeLayout, clock)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ClockFromMinutes renders minutes since midnight as an HH:MM clock string.
func ClockFromMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// GenerateSlotTimes slices the [start, end) working window into slot start
// times of slotDuration minutes. A slot whose end would run past the window
// is not emitted.
func GenerateSlotTimes(start, end string, slotDuration int) ([]string, error) {
	if slotDuration <= 0 {
		slotDuration = 30
	}

	startMin, err := MinutesOfDay(start)
	if err != nil {
		return nil, err
	}
	endMin, err := MinutesOfDay(end)
	if err != nil {
		return nil, err
	}

	var slots []string
	for m := startMin; m+slotDuration <= endMin; m += slotDuration {
		slots = append(slots, ClockFromMinutes(m))
	}
	return slots, nil
}

// CombineDateAndClock builds an instant from a calendar date and an HH:MM
// clock string in the given location.
func CombineDateAndClock(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(constvars.TimeLayout, clock, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

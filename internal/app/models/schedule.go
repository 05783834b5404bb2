package models

import "time"

// DaysOfWeek in schedule editor order.
var DaysOfWeek = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

var validDays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

func IsValidDayOfWeek(day string) bool {
	return validDays[day]
}

// DayOfWeekFor maps a calendar date to the schedule day key.
func DayOfWeekFor(date time.Time) string {
	switch date.Weekday() {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}

type DoctorSchedule struct {
	ID              string
	DoctorID        string
	DayOfWeek       string
	StartTime       string
	EndTime         string
	IsAvailable     bool
	MaxAppointments int
	SlotDuration    int
}

type TimeBlock struct {
	ID          string
	DoctorID    string
	StartAt     time.Time
	EndAt       time.Time
	Reason      string
	IsRecurring bool
	CreatedAt   time.Time
}

// Overlaps reports whether the block covers any part of [start, end).
func (b *TimeBlock) Overlaps(start, end time.Time) bool {
	return b.StartAt.Before(end) && b.EndAt.After(start)
}

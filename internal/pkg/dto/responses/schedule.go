package responses

import "time"

type ScheduleDay struct {
	ID              string `json:"id"`
	DayOfWeek       string `json:"day_of_week"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	IsAvailable     bool   `json:"is_available"`
	MaxAppointments int    `json:"max_appointments"`
	SlotDuration    int    `json:"slot_duration"`
}

type TimeBlock struct {
	ID          string    `json:"id"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Reason      string    `json:"reason,omitempty"`
	IsRecurring bool      `json:"is_recurring"`
}

type ScheduleOverview struct {
	Days       []ScheduleDay `json:"days"`
	TimeBlocks []TimeBlock   `json:"time_blocks"`
}

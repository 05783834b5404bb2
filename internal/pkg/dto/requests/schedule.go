package requests

type ScheduleDayRequest struct {
	DayOfWeek       string `json:"day_of_week" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime       string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime         string `json:"end_time" validate:"required,datetime=15:04"`
	IsAvailable     bool   `json:"is_available"`
	MaxAppointments int    `json:"max_appointments" validate:"gte=1,lte=50"`
	SlotDuration    int    `json:"slot_duration" validate:"gte=5,lte=240"`
}

type UpdateScheduleRequest struct {
	Days []ScheduleDayRequest `json:"days" validate:"required,len=7,dive"`
}

type CreateTimeBlockRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	Reason    string `json:"reason" validate:"max=200"`
	Recurring bool   `json:"is_recurring"`
}

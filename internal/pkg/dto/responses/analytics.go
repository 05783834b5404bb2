package responses

type AnalyticsPeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
}

type AnalyticsOverview struct {
	TotalAppointments     int     `json:"total_appointments"`
	SuccessRate           float64 `json:"success_rate"`
	CompletedAppointments int     `json:"completed_appointments"`
	CancelledAppointments int     `json:"cancelled_appointments"`
	NewPatients           int     `json:"new_patients"`
}

type DailyTrend struct {
	Date         string `json:"date"`
	Appointments int    `json:"appointments"`
	Completed    int    `json:"completed"`
	Cancelled    int    `json:"cancelled"`
}

type TopDoctor struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Specialization   string  `json:"specialization"`
	AppointmentCount int     `json:"appointment_count"`
	AverageRating    float64 `json:"average_rating"`
}

type AnalyticsDashboard struct {
	Period               AnalyticsPeriod   `json:"period"`
	Overview             AnalyticsOverview `json:"overview"`
	StatusDistribution   map[string]int    `json:"status_distribution"`
	PriorityDistribution map[string]int    `json:"priority_distribution"`
	DailyTrends          []DailyTrend      `json:"daily_trends"`
	TopDoctors           []TopDoctor       `json:"top_doctors,omitempty"`
}

package responses

import "time"

type Reminder struct {
	ID           string     `json:"id"`
	ReminderType string     `json:"reminder_type"`
	HoursBefore  float64    `json:"hours_before"`
	Display      string     `json:"display"`
	ScheduledFor time.Time  `json:"scheduled_for"`
	IsSent       bool       `json:"is_sent"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
	SentVia      string     `json:"sent_via,omitempty"`
}

type AppointmentReminders struct {
	Appointment Appointment `json:"appointment"`
	Reminders   []Reminder  `json:"reminders"`
}

type UpcomingReminder struct {
	Reminder
	AppointmentID   string `json:"appointment_id"`
	DoctorName      string `json:"doctor_name"`
	PatientName     string `json:"patient_name"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Status          string `json:"status"`
}

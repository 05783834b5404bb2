package models

import "time"

type AppointmentReminder struct {
	ID            string
	AppointmentID string
	ReminderType  string
	HoursBefore   float64
	IsSent        bool
	SentAt        *time.Time
	SentVia       string
	ErrorMessage  string
	ScheduledFor  time.Time
	CreatedAt     time.Time

	// Joined appointment fields needed to compose the reminder email
	// without a second round trip per reminder.
	UserID               string
	PatientName          string
	PatientEmail         string
	AppointmentDate      time.Time
	AppointmentTime      string
	AppointmentStatus    string
	DoctorName           string
	DoctorSpecialization string
}

// ReminderOffsets are the allowed hours-before choices.
var ReminderOffsets = map[float64]string{
	24:  "1 day before",
	2:   "2 hours before",
	1:   "1 hour before",
	0.5: "30 minutes before",
}

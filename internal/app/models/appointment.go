package models

import (
	"mediport-service/internal/pkg/constvars"
	"time"
)

type Appointment struct {
	ID                 string
	DoctorID           string
	UserID             string
	PatientName        string
	PatientEmail       string
	PatientPhone       string
	AppointmentDate    time.Time
	AppointmentTime    string
	Status             string
	Priority           string
	Reason             string
	Notes              string
	CancellationReason string
	ConfirmedAt        *time.Time
	CompletedAt        *time.Time

	// Populated by joins, not stored on the appointments table.
	DoctorName           string
	DoctorSpecialization string

	TimeModel
}

// ActiveStatuses are the states that hold a slot against double booking.
var ActiveStatuses = []string{
	constvars.AppointmentStatusPending,
	constvars.AppointmentStatusApproved,
	constvars.AppointmentStatusScheduled,
}

var ValidStatuses = map[string]bool{
	constvars.AppointmentStatusPending:     true,
	constvars.AppointmentStatusApproved:    true,
	constvars.AppointmentStatusScheduled:   true,
	constvars.AppointmentStatusCompleted:   true,
	constvars.AppointmentStatusCancelled:   true,
	constvars.AppointmentStatusNoShow:      true,
	constvars.AppointmentStatusRescheduled: true,
	constvars.AppointmentStatusRejected:    true,
}

var ValidPriorities = map[string]bool{
	constvars.AppointmentPriorityLow:    true,
	constvars.AppointmentPriorityNormal: true,
	constvars.AppointmentPriorityHigh:   true,
	constvars.AppointmentPriorityUrgent: true,
}

// StartAt combines the appointment date and HH:MM time into one instant in
// the given location.
func (a *Appointment) StartAt(loc *time.Location) time.Time {
	t, err := time.ParseInLocation(constvars.TimeLayout, a.AppointmentTime, loc)
	if err != nil {
		return a.AppointmentDate
	}
	return time.Date(
		a.AppointmentDate.Year(), a.AppointmentDate.Month(), a.AppointmentDate.Day(),
		t.Hour(), t.Minute(), 0, 0, loc,
	)
}

func (a *Appointment) IsUpcoming(now time.Time) bool {
	return a.StartAt(now.Location()).After(now)
}

func (a *Appointment) CanBeCancelled() bool {
	switch a.Status {
	case constvars.AppointmentStatusPending,
		constvars.AppointmentStatusApproved,
		constvars.AppointmentStatusScheduled:
		return true
	}
	return false
}

func (a *Appointment) CanBeRescheduled() bool {
	return a.CanBeCancelled()
}

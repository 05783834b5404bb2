package models

import "time"

type Notification struct {
	ID            string
	UserID        string
	AppointmentID string
	Type          string
	Title         string
	Message       string
	IsRead        bool
	CreatedAt     time.Time
}

type StatusHistory struct {
	ID            string
	AppointmentID string
	OldStatus     string
	NewStatus     string
	ChangedBy     string
	ChangedByName string
	Reason        string
	ChangedAt     time.Time
}

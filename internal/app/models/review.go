package models

type Review struct {
	ID              string
	DoctorID        string
	PatientID       string
	AppointmentID   string
	Rating          int
	Title           string
	Comment         string
	IsApproved      bool
	IsFeatured      bool
	HelpfulCount    int
	NotHelpfulCount int

	// Populated by joins.
	PatientName string
	DoctorName  string

	TimeModel
}

package responses

import "time"

type Review struct {
	ID              string    `json:"id"`
	DoctorID        string    `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	PatientName     string    `json:"patient_name"`
	Rating          int       `json:"rating"`
	Title           string    `json:"title,omitempty"`
	Comment         string    `json:"comment"`
	IsApproved      bool      `json:"is_approved"`
	IsFeatured      bool      `json:"is_featured"`
	HelpfulCount    int       `json:"helpful_count"`
	NotHelpfulCount int       `json:"not_helpful_count"`
	CreatedAt       time.Time `json:"created_at"`
}

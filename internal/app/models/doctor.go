package models

type Doctor struct {
	ID                 string
	UserID             string
	Name               string
	Specialization     string
	Email              string
	Phone              string
	IsActive           bool
	ConsultationFee    float64
	ExperienceYears    int
	Description        string
	Affiliation        string
	LicenseNumber      string
	ProfilePictureName string

	// Denormalized review aggregates, recomputed on every review write.
	AverageRating float64
	TotalReviews  int

	TimeModel
}

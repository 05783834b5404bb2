package responses

type Doctor struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Specialization  string  `json:"specialization"`
	Email           string  `json:"email,omitempty"`
	Phone           string  `json:"phone,omitempty"`
	ConsultationFee float64 `json:"consultation_fee"`
	ExperienceYears int     `json:"experience_years"`
	Description     string  `json:"description,omitempty"`
	Affiliation     string  `json:"affiliation,omitempty"`
	AverageRating   float64 `json:"average_rating"`
	TotalReviews    int     `json:"total_reviews"`
}

type DoctorDetail struct {
	Doctor
	Reviews            []Review    `json:"reviews"`
	RatingDistribution map[int]int `json:"rating_distribution"`
	CanReview          bool        `json:"can_review"`
	UserReview         *Review     `json:"user_review,omitempty"`
}

type ProfilePicture struct {
	URL string `json:"url"`
}

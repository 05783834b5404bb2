package requests

type RegisterPatientRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"omitempty,max=15"`
}

type RegisterDoctorRequest struct {
	Username           string  `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email              string  `json:"email" validate:"required,email"`
	Password           string  `json:"password" validate:"required,min=8"`
	PasswordConfirm    string  `json:"password_confirm" validate:"required,eqfield=Password"`
	FullName           string  `json:"full_name" validate:"required,max=100"`
	Specialization     string  `json:"specialization" validate:"required,max=100"`
	Phone              string  `json:"phone" validate:"omitempty,max=15"`
	ConsultationFee    float64 `json:"consultation_fee" validate:"gte=0"`
	ExperienceYears    int     `json:"experience_years" validate:"gte=0"`
	Description        string  `json:"description"`
	Affiliation        string  `json:"affiliation" validate:"max=150"`
	LicenseNumber      string  `json:"license_number" validate:"max=100"`
	EmailNotifications bool    `json:"email_notifications"`
	SMSNotifications   bool    `json:"sms_notifications"`
	TermsAccepted      bool    `json:"terms_accepted" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

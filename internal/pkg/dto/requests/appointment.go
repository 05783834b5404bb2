package requests

type CreateAppointmentRequest struct {
	DoctorID string `json:"doctor_id" validate:"required,uuid"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required,datetime=15:04"`
	Reason   string `json:"reason"`
	Priority string `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required,datetime=15:04"`
}

type BulkUpdateStatusRequest struct {
	AppointmentIDs []string `json:"appointment_ids" validate:"required,min=1,dive,uuid"`
	Status         string   `json:"status" validate:"required"`
	Reason         string   `json:"reason"`
}

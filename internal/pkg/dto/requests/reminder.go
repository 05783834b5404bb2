package requests

type CreateReminderRequest struct {
	AppointmentID string  `json:"appointment_id" validate:"required,uuid"`
	ReminderType  string  `json:"reminder_type" validate:"required,oneof=email sms both"`
	HoursBefore   float64 `json:"hours_before" validate:"required"`
}

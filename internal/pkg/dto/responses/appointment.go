package responses

import "time"

type Appointment struct {
	ID                   string     `json:"id"`
	DoctorID             string     `json:"doctor_id"`
	DoctorName           string     `json:"doctor_name"`
	DoctorSpecialization string     `json:"doctor_specialization,omitempty"`
	PatientName          string     `json:"patient_name"`
	PatientEmail         string     `json:"patient_email,omitempty"`
	PatientPhone         string     `json:"patient_phone,omitempty"`
	AppointmentDate      string     `json:"appointment_date"`
	AppointmentTime      string     `json:"appointment_time"`
	Status               string     `json:"status"`
	Priority             string     `json:"priority"`
	Reason               string     `json:"reason,omitempty"`
	Notes                string     `json:"notes,omitempty"`
	CancellationReason   string     `json:"cancellation_reason,omitempty"`
	ConfirmedAt          *time.Time `json:"confirmed_at,omitempty"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

type StatusHistoryEntry struct {
	OldStatus string    `json:"old_status,omitempty"`
	NewStatus string    `json:"new_status"`
	Reason    string    `json:"reason,omitempty"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

type AppointmentDetail struct {
	Appointment
	StatusHistory []StatusHistoryEntry `json:"status_history"`
}

type UpdateStatus struct {
	NewStatus string `json:"new_status"`
}

type BulkUpdate struct {
	UpdatedCount int `json:"updated_count"`
}

type Slot struct {
	Time    string `json:"time"`
	Display string `json:"display"`
}

type AvailableSlots struct {
	Slots   []Slot `json:"slots"`
	Message string `json:"message,omitempty"`
}

type CalendarEvent struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Start         string                 `json:"start"`
	Color         string                 `json:"color"`
	ExtendedProps map[string]interface{} `json:"extendedProps"`
}

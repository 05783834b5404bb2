package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

const (
	AppointmentStatusPending     = "pending"
	AppointmentStatusApproved    = "approved"
	AppointmentStatusScheduled   = "scheduled"
	AppointmentStatusCompleted   = "completed"
	AppointmentStatusCancelled   = "cancelled"
	AppointmentStatusNoShow      = "no_show"
	AppointmentStatusRescheduled = "rescheduled"
	AppointmentStatusRejected    = "rejected"
)

const (
	AppointmentPriorityLow    = "low"
	AppointmentPriorityNormal = "normal"
	AppointmentPriorityHigh   = "high"
	AppointmentPriorityUrgent = "urgent"
)

const (
	ReminderTypeEmail = "email"
	ReminderTypeSMS   = "sms"
	ReminderTypeBoth  = "both"
)

const (
	NotificationTypeAppointmentCreated     = "appointment_created"
	NotificationTypeStatusChanged          = "status_changed"
	NotificationTypeAppointmentReminder    = "appointment_reminder"
	NotificationTypeAppointmentCancelled   = "appointment_cancelled"
	NotificationTypeAppointmentRescheduled = "appointment_rescheduled"
	NotificationTypeSystem                 = "system"
)

const (
	SessionRedisKeyFormat    = "session:%s"
	SlotCacheRedisKeyFormat  = "slots:%s:%s"
	BookingLockRedisKeyFmt   = "booklock:%s:%s:%s"
	ReminderLeaderLockKey    = "reminderd:leader"
	AppPaginationUrlFormat   = "%s?page=%d&page_size=%d"
	DateLayout               = "2006-01-02"
	TimeLayout               = "15:04"
	DateTimeLayout           = "2006-01-02 15:04"
	ExportFilenameTimeLayout = "20060102_150405"
)

package constvars

const (
	RegisterSuccessMessage        = "account created, check your email for the verification link"
	ActivateSuccessMessage        = "email verified successfully"
	LoginSuccessMessage           = "successfully logged in"
	LogoutSuccessMessage          = "successfully logged out"
	GetDoctorSuccessMessage       = "successfully retrieved doctors"
	GetSlotSuccessMessage         = "successfully retrieved available slots"
	UploadPictureSuccessMessage   = "successfully uploaded profile picture"
	CreateAppointmentSuccess      = "appointment booked successfully, waiting for doctor approval"
	GetAppointmentSuccessMessage  = "successfully retrieved appointments"
	UpdateStatusSuccessMessage    = "status updated successfully"
	RescheduleSuccessMessage      = "appointment rescheduled successfully"
	BulkUpdateSuccessMessage      = "successfully updated %d appointments"
	ExportSuccessMessage          = "successfully exported appointments"
	GetCalendarSuccessMessage     = "successfully retrieved calendar events"
	GetScheduleSuccessMessage     = "successfully retrieved schedule"
	UpdateScheduleSuccessMessage  = "schedule updated successfully"
	CreateTimeBlockSuccess        = "time block added successfully"
	DeleteTimeBlockSuccess        = "time block removed"
	CreateReviewSuccessMessage    = "review submitted successfully, it will be visible after approval"
	GetReviewSuccessMessage       = "successfully retrieved reviews"
	UpdateReviewSuccessMessage    = "review updated successfully"
	DeleteReviewSuccessMessage    = "review removed"
	ModerateReviewSuccessMessage  = "review moderation applied"
	VoteReviewSuccessMessage      = "vote recorded"
	GetReminderSuccessMessage     = "successfully retrieved reminders"
	CreateReminderSuccessMessage  = "reminder added successfully"
	DeleteReminderSuccessMessage  = "reminder removed"
	GetNotificationSuccess        = "successfully retrieved notifications"
	MarkNotificationReadSuccess   = "notification marked as read"
	MarkAllNotificationsRead      = "all notifications marked as read"
	GetAnalyticsSuccessMessage    = "successfully retrieved analytics"
	GetDoctorDetailSuccessMessage = "successfully retrieved doctor detail"
)

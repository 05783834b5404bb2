package constvars

const (
	EmailActivationSubject       = "[MEDIPORT] Verify your email to activate your account"
	EmailAppointmentCreatedFmt   = "Appointment Request Received - %s"
	EmailStatusChangedSubjectFmt = "Appointment %s - %s"
	EmailReminderSubjectFmt      = "Appointment Reminder - %s"
	EmailNotificationSubjectFmt  = "Appointment Update - %s"
)

const (
	EmailSendBasicEmailSubjectFormat = "To: %s\r\nSubject: %s\r\n\r\n%s\r\n"
	EmailSendHTMLSubjectFormat       = "To: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s\r\n"
)

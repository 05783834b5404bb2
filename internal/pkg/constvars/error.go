package constvars

// Client-facing messages. Kept deliberately vague so internal details
// never leak through the API.
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInvalidUsernameOrPassword     = "invalid username or password"
	ErrClientAccountNotActivated           = "please verify your email before logging in"
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientUsernameAlreadyExists         = "username already used"
	ErrClientPasswordsDoNotMatch           = "passwords do not match"
	ErrClientActivationLinkInvalid         = "activation link is invalid or has expired"

	ErrClientDoctorNotFound          = "doctor not found"
	ErrClientAppointmentNotFound     = "appointment not found"
	ErrClientReviewNotFound          = "review not found"
	ErrClientReminderNotFound        = "reminder not found"
	ErrClientNotificationNotFound    = "notification not found"
	ErrClientTimeBlockNotFound       = "time block not found"
	ErrClientSlotAlreadyBooked       = "this time slot is already booked, please choose another time"
	ErrClientSlotNotAvailable        = "the selected time slot is not available"
	ErrClientInvalidStatus           = "invalid appointment status"
	ErrClientStatusTransitionBlocked = "this appointment cannot be changed to the requested status"
	ErrClientCannotReschedule        = "this appointment cannot be rescheduled"
	ErrClientPatientsOnly            = "only patients can perform this action"
	ErrClientDoctorsOnly             = "only doctors can perform this action"
	ErrClientReviewNeedsCompleted    = "you must have a completed appointment to review this doctor"
	ErrClientAlreadyReviewed         = "you have already reviewed this doctor"
	ErrClientInvalidExportFormat     = "unsupported export format"
	ErrClientInvalidTimeRange        = "end time must be after start time"
	ErrClientInvalidReminderOffset   = "unsupported reminder offset"
	ErrClientReminderWindowPassed    = "the reminder time has already passed"
	ErrClientReminderAlreadySent     = "this reminder has already been sent"
)

// Developer messages, surfaced in logs and non-production responses only.
const (
	ErrDevValidationFailed           = "validation failed"
	ErrDevCannotParseJSON            = "cannot parse JSON body"
	ErrDevCannotParseMultipartForm   = "cannot parse multipart form"
	ErrDevCannotParseDate            = "cannot parse date"
	ErrDevCannotParseTime            = "cannot parse time"
	ErrDevURLParamIDValidationFailed = "invalid url param: %s"
	ErrDevMissingRequestID           = "request id missing from context"
	ErrDevMissingSessionData         = "session data missing from context"
	ErrDevFailedToHashPassword       = "failed to hash password"
	ErrDevInvalidCredentials         = "invalid credentials"
	ErrDevAccountNotActivated        = "account is not activated"
	ErrDevEmailAlreadyExists         = "email already exists"
	ErrDevUsernameAlreadyExists      = "username already exists"
	ErrDevPasswordsDoNotMatch        = "passwords do not match"
	ErrDevAuthTokenMissing           = "token missing"
	ErrDevAuthTokenInvalidOrExpired  = "token invalid or expired"
	ErrDevAuthGenerateToken          = "failed to generate token"
	ErrDevAuthPermissionDenied       = "permission denied"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevCannotMarshalJSON          = "cannot marshal JSON"

	ErrDevPostgresInsert = "failed to insert row into postgres"
	ErrDevPostgresUpdate = "failed to update row in postgres"
	ErrDevPostgresDelete = "failed to delete row in postgres"
	ErrDevPostgresSelect = "failed to select rows from postgres"
	ErrDevPostgresTx     = "failed to run postgres transaction"
	ErrDevRowNotFound    = "row not found"

	ErrDevRedisSet     = "failed to set redis key"
	ErrDevRedisGet     = "failed to get redis key"
	ErrDevRedisDelete  = "failed to delete redis key"
	ErrDevRabbitMQ     = "failed to publish message to rabbitmq"
	ErrDevSMTPSend     = "failed to send email via smtp host: %s"
	ErrDevMinioUpload  = "failed to upload object to minio"
	ErrDevMinioPresign = "failed to presign minio object url"
)

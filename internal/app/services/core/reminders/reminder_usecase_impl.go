package reminders

import (
	"context"
	"fmt"
	"mediport-service/internal/app/config"
	"mediport-service/internal/app/contracts"
	"mediport-service/internal/app/models"
	"mediport-service/internal/app/services/shared/mailer"
	"mediport-service/internal/pkg/constvars"
	"mediport-service/internal/pkg/dto/requests"
	"mediport-service/internal/pkg/dto/responses"
	"mediport-service/internal/pkg/exceptions"
	"sync"
	"time"

	"go.uber.org/zap"
)

// defaultReminderOffsets are scheduled automatically for every booking.
var defaultReminderOffsets = []float64{24, 2}

type reminderUsecase struct {
	ReminderRepository    contracts.ReminderRepository
	AppointmentRepository contracts.AppointmentRepository
	SessionService        contracts.SessionService
	NotificationUsecase   contracts.NotificationUsecase
	MailerService         mailer.MailerService
	InternalConfig        *config.InternalConfig
	Location              *time.Location
	Log                   *zap.Logger
}

var (
	reminderUsecaseInstance contracts.ReminderUsecase
	onceReminderUsecase     sync.Once
)

func NewReminderUsecase(
	reminderRepository contracts.ReminderRepository,
	appointmentRepository contracts.AppointmentRepository,
	sessionService contracts.SessionService,
	notificationUsecase contracts.NotificationUsecase,
	mailerService mailer.MailerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ReminderUsecase {
	onceReminderUsecase.Do(func() {
		location, err := time.LoadLocation(internalConfig.App.Timezone)
		if err != nil {
			location = time.UTC
		}
		instance := &reminderUsecase{
			ReminderRepository:    reminderRepository,
			AppointmentRepository: appointmentRepository,
			SessionService:        sessionService,
			NotificationUsecase:   notificationUsecase,
			MailerService:         mailerService,
			InternalConfig:        internalConfig,
			Location:              location,
			Log:                   logger,
		}
		reminderUsecaseInstance = instance
	})
	return reminderUsecaseInstance
}

func (uc *reminderUsecase) CreateReminder(ctx context.Context, sessionData, appointmentID string, request *requests.CreateReminderRequest) (*responses.Reminder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reminderUsecase.CreateReminder called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.findOwnedAppointment(ctx, sessionData, appointmentID)
	if err != nil {
		return nil, err
	}

	if _, ok := models.ReminderOffsets[request.HoursBefore]; !ok {
		return nil, exceptions.ErrInvalidReminderOffset(nil)
	}

	startAt := appointment.StartAt(uc.Location)
	scheduledFor := startAt.Add(-time.Duration(request.HoursBefore * float64(time.Hour)))
	if !scheduledFor.After(time.Now().In(uc.Location)) {
		return nil, exceptions.ErrReminderWindowPassed(nil)
	}

	reminder := &models.AppointmentReminder{
		AppointmentID: appointmentID,
		ReminderType:  request.ReminderType,
		HoursBefore:   request.HoursBefore,
		ScheduledFor:  scheduledFor,
	}
	reminderID, err := uc.ReminderRepository.CreateReminder(ctx, reminder)
	if err != nil {
		return nil, err
	}
	reminder.ID = reminderID

	return buildReminderResponsePtr(reminder), nil
}

// ScheduleDefaultReminders queues the standard reminder set for a fresh
// booking. Offsets whose send window has already passed are skipped, so a
// same-day appointment may end up with fewer reminders.
func (uc *reminderUsecase) ScheduleDefaultReminders(ctx context.Context, appointment *models.Appointment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reminderUsecase.ScheduleDefaultReminders called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)

	startAt := appointment.StartAt(uc.Location)
	now := time.Now().In(uc.Location)
	for _, hoursBefore := range defaultReminderOffsets {
		scheduledFor := startAt.Add(-time.Duration(hoursBefore * float64(time.Hour)))
		if !scheduledFor.After(now) {
			continue
		}
		reminder := &models.AppointmentReminder{
			AppointmentID: appointment.ID,
			ReminderType:  constvars.ReminderTypeEmail,
			HoursBefore:   hoursBefore,
			ScheduledFor:  scheduledFor,
		}
		if _, err := uc.ReminderRepository.CreateReminder(ctx, reminder); err != nil {
			return err
		}
	}
	return nil
}

func (uc *reminderUsecase) ListByAppointment(ctx context.Context, sessionData, appointmentID string) (*responses.AppointmentReminders, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reminderUsecase.ListByAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.findOwnedAppointment(ctx, sessionData, appointmentID)
	if err != nil {
		return nil, err
	}

	reminders, err := uc.ReminderRepository.ListByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	result := &responses.AppointmentReminders{
		Appointment: responses.Appointment{
			ID:              appointment.ID,
			DoctorID:        appointment.DoctorID,
			DoctorName:      appointment.DoctorName,
			PatientName:     appointment.PatientName,
			AppointmentDate: appointment.AppointmentDate.Format(constvars.DateLayout),
			AppointmentTime: appointment.AppointmentTime,
			Status:          appointment.Status,
			Priority:        appointment.Priority,
			CreatedAt:       appointment.CreatedAt,
		},
		Reminders: make([]responses.Reminder, 0, len(reminders)),
	}
	for i := range reminders {
		result.Reminders = append(result.Reminders, *buildReminderResponsePtr(&reminders[i]))
	}
	return result, nil
}

func (uc *reminderUsecase) ListUpcoming(ctx context.Context, sessionData string) ([]responses.UpcomingReminder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reminderUsecase.ListUpcoming called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := uc.SessionService.ParseSession(sessionData)
	if err != nil {
		return nil, err
	}

	// Admins keep both filters empty and see every pending reminder.
	userID, doctorID := "", ""
	switch {
	case session.IsPatient():
		userID = session.UserID
	case session.IsDoctor():
		doctorID = session.DoctorID
	}

	reminders, err := uc.ReminderRepository.ListUpcoming(ctx, userID, doctorID, time.Now().In(uc.Location))
	if err != nil {
		return nil, err
	}

	result := make([]responses.UpcomingReminder, 0, len(reminders))
	for i := range reminders {
		reminder := &reminders[i]
		result = append(result, responses.UpcomingReminder{
			Reminder:        *buildReminderResponsePtr(reminder),
			AppointmentID:   reminder.AppointmentID,
			DoctorName:      reminder.DoctorName,
			PatientName:     reminder.PatientName,
			AppointmentDate: reminder.AppointmentDate.Format(constvars.DateLayout),
			AppointmentTime: reminder.AppointmentTime,
			Status:          reminder.AppointmentStatus,
		})
	}
	return result, nil
}

func (uc *reminderUsecase) DeleteReminder(ctx context.Context, sessionData, reminderID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reminderUsecase.DeleteReminder called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReminderIDKey, reminderID),
	)

	reminder, err := uc.ReminderRepository.FindByID(ctx, reminderID)
	if err != nil {
		return err
	}
	if reminder == nil {
		return exceptions.ErrReminderNotFound(nil)
	}
	if _, err := uc.findOwnedAppointment(ctx, sessionData, reminder.AppointmentID); err != nil {
		return err
	}
	if reminder.IsSent {
		return exceptions.ErrReminderAlreadySent(nil)
	}

	return uc.ReminderRepository.DeleteReminder(ctx, reminderID)
}

func (uc *reminderUsecase) CancelPendingByAppointment(ctx context.Context, appointmentID string) error {
	return uc.ReminderRepository.CancelPendingByAppointment(ctx, appointmentID)
}

// DispatchDue sends every due reminder once and reports how many went
// out. Failures are recorded on the reminder row so the next tick does
// not retry them forever.
func (uc *reminderUsecase) DispatchDue(ctx context.Context) (int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reminderUsecase.DispatchDue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	now := time.Now().In(uc.Location)
	due, err := uc.ReminderRepository.FindDueUnsent(ctx, now, uc.InternalConfig.Reminder.BatchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range due {
		reminder := &due[i]
		if err := uc.dispatchOne(ctx, reminder); err != nil {
			uc.Log.Error("reminderUsecase.DispatchDue error dispatching reminder",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingReminderIDKey, reminder.ID),
				zap.Error(err),
			)
			if markErr := uc.ReminderRepository.MarkFailed(ctx, reminder.ID, err.Error()); markErr != nil {
				uc.Log.Error("reminderUsecase.DispatchDue error marking reminder failed",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingReminderIDKey, reminder.ID),
					zap.Error(markErr),
				)
			}
			continue
		}
		if err := uc.ReminderRepository.MarkSent(ctx, reminder.ID, constvars.ReminderTypeEmail, time.Now()); err != nil {
			uc.Log.Error("reminderUsecase.DispatchDue error marking reminder sent",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingReminderIDKey, reminder.ID),
				zap.Error(err),
			)
			continue
		}
		sent++

		dateStr := reminder.AppointmentDate.Format(constvars.DateLayout)
		if err := uc.NotificationUsecase.Notify(ctx, reminder.UserID,
			constvars.NotificationTypeAppointmentReminder,
			"Upcoming appointment",
			fmt.Sprintf("Reminder: your appointment with %s is on %s at %s", reminder.DoctorName, dateStr, reminder.AppointmentTime),
			reminder.AppointmentID,
		); err != nil {
			uc.Log.Error("reminderUsecase.DispatchDue error creating notification",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingReminderIDKey, reminder.ID),
				zap.Error(err),
			)
		}
	}

	uc.Log.Info("reminderUsecase.DispatchDue finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("due_count", len(due)),
		zap.Int("sent_count", sent),
	)
	return sent, nil
}

func (uc *reminderUsecase) dispatchOne(ctx context.Context, reminder *models.AppointmentReminder) error {
	if !uc.MailerService.ValidateEmail(reminder.PatientEmail) {
		return fmt.Errorf("invalid recipient address %q", reminder.PatientEmail)
	}

	dateStr := reminder.AppointmentDate.Format(constvars.DateLayout)
	payload := &requests.EmailPayload{
		To:      reminder.PatientEmail,
		Subject: fmt.Sprintf(constvars.EmailReminderSubjectFmt, dateStr),
		Body: fmt.Sprintf(
			"Hello %s,\n\nThis is a reminder for your appointment with %s (%s) on %s at %s.\n\nIf you can no longer attend, please cancel or reschedule in advance.\n\nMEDIPORT",
			reminder.PatientName,
			reminder.DoctorName,
			reminder.DoctorSpecialization,
			dateStr,
			reminder.AppointmentTime,
		),
	}
	return uc.MailerService.SendEmail(ctx, payload)
}

func (uc *reminderUsecase) findOwnedAppointment(ctx context.Context, sessionData, appointmentID string) (*models.Appointment, error) {
	session, err := uc.SessionService.ParseSession(sessionData)
	if err != nil {
		return nil, err
	}
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}
	switch {
	case session.IsAdmin():
	case session.IsPatient():
		if appointment.UserID != session.UserID {
			return nil, exceptions.ErrAppointmentNotFound(nil)
		}
	case session.IsDoctor():
		if appointment.DoctorID != session.DoctorID {
			return nil, exceptions.ErrAppointmentNotFound(nil)
		}
	default:
		return nil, exceptions.ErrPermissionDenied(nil)
	}
	return appointment, nil
}

func buildReminderResponsePtr(reminder *models.AppointmentReminder) *responses.Reminder {
	return &responses.Reminder{
		ID:           reminder.ID,
		ReminderType: reminder.ReminderType,
		HoursBefore:  reminder.HoursBefore,
		Display:      models.ReminderOffsets[reminder.HoursBefore],
		ScheduledFor: reminder.ScheduledFor,
		IsSent:       reminder.IsSent,
		SentAt:       reminder.SentAt,
		SentVia:      reminder.SentVia,
	}
}


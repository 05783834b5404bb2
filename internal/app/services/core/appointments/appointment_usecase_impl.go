package appointments

import (
	"context"
	"fmt"
	"mediport-service/internal/app/config"
	"mediport-service/internal/app/contracts"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/constvars"
	"mediport-service/internal/pkg/dto/requests"
	"mediport-service/internal/pkg/dto/responses"
	"mediport-service/internal/pkg/exceptions"
	"mediport-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

// allowedTransitions maps each active status to the statuses it may move
// to. Completed, cancelled, rejected and no_show are terminal.
var allowedTransitions = map[string]map[string]bool{
	constvars.AppointmentStatusPending: {
		constvars.AppointmentStatusApproved:  true,
		constvars.AppointmentStatusRejected:  true,
		constvars.AppointmentStatusCancelled: true,
	},
	constvars.AppointmentStatusApproved: {
		constvars.AppointmentStatusScheduled: true,
		constvars.AppointmentStatusCompleted: true,
		constvars.AppointmentStatusCancelled: true,
		constvars.AppointmentStatusNoShow:    true,
	},
	constvars.AppointmentStatusScheduled: {
		constvars.AppointmentStatusCompleted: true,
		constvars.AppointmentStatusCancelled: true,
		constvars.AppointmentStatusNoShow:    true,
	},
}

// patientAllowedStatuses are the only transitions a patient may request on
// their own appointment.
var patientAllowedStatuses = map[string]bool{
	constvars.AppointmentStatusCancelled: true,
}

var calendarStatusColors = map[string]string{
	constvars.AppointmentStatusPending:     "#f39c12",
	constvars.AppointmentStatusApproved:    "#27ae60",
	constvars.AppointmentStatusScheduled:   "#2980b9",
	constvars.AppointmentStatusCompleted:   "#7f8c8d",
	constvars.AppointmentStatusCancelled:   "#e74c3c",
	constvars.AppointmentStatusNoShow:      "#c0392b",
	constvars.AppointmentStatusRejected:    "#95a5a6",
	constvars.AppointmentStatusRescheduled: "#8e44ad",
}

type appointmentUsecase struct {
	AppointmentRepository   contracts.AppointmentRepository
	StatusHistoryRepository contracts.StatusHistoryRepository
	DoctorRepository        contracts.DoctorRepository
	ScheduleRepository      contracts.ScheduleRepository
	SessionService          contracts.SessionService
	LockerService           contracts.LockerService
	SlotUsecase             contracts.SlotUsecase
	ReminderUsecase         contracts.ReminderUsecase
	NotificationUsecase     contracts.NotificationUsecase
	InternalConfig          *config.InternalConfig
	Location                *time.Location
	Log                     *zap.Logger
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	statusHistoryRepository contracts.StatusHistoryRepository,
	doctorRepository contracts.DoctorRepository,
	scheduleRepository contracts.ScheduleRepository,
	sessionService contracts.SessionService,
	lockerService contracts.LockerService,
	slotUsecase contracts.SlotUsecase,
	reminderUsecase contracts.ReminderUsecase,
	notificationUsecase contracts.NotificationUsecase,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		location, err := time.LoadLocation(internalConfig.App.Timezone)
		if err != nil {
			location = time.UTC
		}
		instance := &appointmentUsecase{
			AppointmentRepository:   appointmentRepository,
			StatusHistoryRepository: statusHistoryRepository,
			DoctorRepository:        doctorRepository,
			ScheduleRepository:      scheduleRepository,
			SessionService:          sessionService,
			LockerService:           lockerService,
			SlotUsecase:             slotUsecase,
			ReminderUsecase:         reminderUsecase,
			NotificationUsecase:     notificationUsecase,
			InternalConfig:          internalConfig,
			Location:                location,
			Log:                     logger,
		}
		appointmentUsecaseInstance = instance
	})
	return appointmentUsecaseInstance
}

func (uc *appointmentUsecase) CreateAppointment(ctx context.Context, sessionData string, request *requests.CreateAppointmentRequest) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
	)

	session, err := uc.SessionService.ParseSession(sessionData)
	if err != nil {
		return nil, err
	}
	if !session.IsPatient() {
		return nil, exceptions.ErrPatientsOnly(nil)
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil || !doctor.IsActive {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	date, err := time.ParseInLocation(constvars.DateLayout, request.Date, uc.Location)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}

	startAt, err := utils.CombineDateAndClock(date, request.Time, uc.Location)
	if err != nil {
		return nil, exceptions.ErrCannotParseTime(err)
	}
	if !startAt.After(time.Now().In(uc.Location)) {
		return nil, exceptions.ErrSlotNotAvailable(nil)
	}

	// Serialize competing bookings for the same doctor/date/time so two
	// requests cannot both pass the conflict check.
	lockKey := fmt.Sprintf(constvars.BookingLockRedisKeyFmt, request.DoctorID, request.Date, request.Time)
	lockTTL := time.Duration(uc.InternalConfig.App.BookingLockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrSlotAlreadyBooked(nil)
	}
	defer func() {
		if unlockErr := uc.LockerService.Unlock(ctx, lockKey, lockValue); unlockErr != nil {
			uc.Log.Warn("appointmentUsecase.CreateAppointment failed to release booking lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(unlockErr),
			)
		}
	}()

	if err := uc.validateSlot(ctx, doctor.ID, date, request.Time, ""); err != nil {
		return nil, err
	}

	priority := request.Priority
	if priority == "" {
		priority = constvars.AppointmentPriorityNormal
	}

	appointment := &models.Appointment{
		DoctorID:        doctor.ID,
		UserID:          session.UserID,
		PatientName:     session.Username,
		PatientEmail:    session.Email,
		AppointmentDate: date,
		AppointmentTime: request.Time,
		Status:          constvars.AppointmentStatusPending,
		Priority:        priority,
		Reason:          request.Reason,
	}

	appointmentID, err := uc.AppointmentRepository.CreateAppointment(ctx, appointment)
	if err != nil {
		return nil, err
	}
	appointment.ID = appointmentID
	appointment.DoctorName = doctor.Name
	appointment.DoctorSpecialization = doctor.Specialization
	appointment.SetCreatedAtUpdatedAt()

	history := &models.StatusHistory{
		AppointmentID: appointmentID,
		NewStatus:     constvars.AppointmentStatusPending,
		ChangedBy:     session.UserID,
		Reason:        "appointment created",
	}
	if err := uc.StatusHistoryRepository.CreateStatusHistory(ctx, history); err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error recording status history",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
	}

	if err := uc.ReminderUsecase.ScheduleDefaultReminders(ctx, appointment); err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error scheduling reminders",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
	}

	uc.notify(ctx, doctor.UserID, constvars.NotificationTypeAppointmentCreated,
		"New appointment request",
		fmt.Sprintf("%s requested an appointment on %s at %s", session.Username, request.Date, request.Time),
		appointmentID,
	)

	uc.SlotUsecase.InvalidateSlotCache(ctx, doctor.ID, date)

	uc.Log.Info("appointmentUsecase.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return buildAppointmentResponsePtr(appointment), nil
}

// validateSlot checks the requested time against the doctor's weekly
// schedule, time blocks, daily capacity and existing bookings.
func (uc *appointmentUsecase) validateSlot(ctx context.Context, doctorID string, date time.Time, timeOfDay, excludeID string) error {
	dayOfWeek := models.DayOfWeekFor(date)
	schedule, err := uc.ScheduleRepository.FindByDoctorAndDay(ctx, doctorID, dayOfWeek)
	if err != nil {
		return err
	}
	if schedule == nil || !schedule.IsAvailable {
		return exceptions.ErrSlotNotAvailable(nil)
	}

	requested, err := utils.MinutesOfDay(timeOfDay)
	if err != nil {
		return exceptions.ErrCannotParseTime(err)
	}
	startMin, err := utils.MinutesOfDay(schedule.StartTime)
	if err != nil {
		return err
	}
	endMin, err := utils.MinutesOfDay(schedule.EndTime)
	if err != nil {
		return err
	}
	duration := schedule.SlotDuration
	if duration <= 0 {
		duration = 30
	}
	if requested < startMin || requested+duration > endMin || (requested-startMin)%duration != 0 {
		return exceptions.ErrSlotNotAvailable(nil)
	}

	slotStart, err := utils.CombineDateAndClock(date, timeOfDay, uc.Location)
	if err != nil {
		return err
	}
	slotEnd := slotStart.Add(time.Duration(duration) * time.Minute)

	blocks, err := uc.ScheduleRepository.ListTimeBlocksForDate(ctx, doctorID, date)
	if err != nil {
		return err
	}
	for i := range blocks {
		if blocks[i].Overlaps(slotStart, slotEnd) {
			return exceptions.ErrSlotNotAvailable(nil)
		}
	}

	if schedule.MaxAppointments > 0 {
		count, err := uc.AppointmentRepository.CountActiveForDate(ctx, doctorID, date)
		if err != nil {
			return err
		}
		if count >= schedule.MaxAppointments {
			return exceptions.ErrSlotNotAvailable(nil)
		}
	}

	exists, err := uc.AppointmentRepository.ExistsActiveSlot(ctx, doctorID, date, timeOfDay, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return exceptions.ErrSlotAlreadyBooked(nil)
	}
	return nil
}

func (uc *appointmentUsecase) FindAll(ctx context.Context, sessionData string, params *requests.QueryParams) ([]responses.Appointment, *responses.Pagination, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if err := uc.scopeParams(sessionData, params); err != nil {
		return nil, nil, err
	}

	appointments, total, err := uc.AppointmentRepository.Search(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	result := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		result = append(result, buildAppointmentResponse(&appointments[i]))
	}

	pagination := utils.BuildPaginationResponse(total, params.Page, params.PageSize, "/appointments")
	return result, pagination, nil
}

func (uc *appointmentUsecase) FindUpcoming(ctx context.Context, sessionData string, params *requests.QueryParams) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindUpcoming called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if err := uc.scopeParams(sessionData, params); err != nil {
		return nil, err
	}

	appointments, err := uc.AppointmentRepository.FindUpcoming(ctx, params, time.Now().In(uc.Location))
	if err != nil {
		return nil, err
	}

	result := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		result = append(result, buildAppointmentResponse(&appointments[i]))
	}
	return result, nil
}

func (uc *appointmentUsecase) FindByID(ctx context.Context, sessionData, appointmentID string) (*responses.AppointmentDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	session, err := uc.SessionService.ParseSession(sessionData)
	if err != nil {
		return nil, err
	}

	appointment, err := uc.findOwned(ctx, session, appointmentID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.StatusHistoryRepository.ListByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	detail := &responses.AppointmentDetail{
		Appointment:   buildAppointmentResponse(appointment),
		StatusHistory: make([]responses.StatusHistoryEntry, 0, len(entries)),
	}
	for i := range entries {
		detail.StatusHistory = append(detail.StatusHistory, responses.StatusHistoryEntry{
			OldStatus: entries[i].OldStatus,
			NewStatus: entries[i].NewStatus,
			Reason:    entries[i].Reason,
			ChangedBy: entries[i].ChangedByName,
			ChangedAt: entries[i].ChangedAt,
		})
	}
	return detail, nil
}

func (uc *appointmentUsecase) UpdateStatus(ctx context.Context, sessionData, appointmentID string, request *requests.UpdateAppointmentStatusRequest) (*responses.UpdateStatus, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.UpdateStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	session, err := uc.SessionService.ParseSession(sessionData)
	if err != nil {
		return nil, err
	}

	appointment, err := uc.findOwned(ctx, session, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := uc.applyStatusChange(ctx, session, appointment, request.Status, request.Reason); err != nil {
		return nil, err
	}

	return &responses.UpdateStatus{NewStatus: appointment.Status}, nil
}

func (uc *appointmentUsecase) applyStatusChange(ctx context.Context, session *models.Session, appointment *models.Appointment, newStatus, reason string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if !models.ValidStatuses[newStatus] {
		return exceptions.ErrInvalidAppointmentStatus(nil)
	}
	if session.IsPatient() && !patientAllowedStatuses[newStatus] {
		return exceptions.ErrPermissionDenied(nil)
	}
	allowed, ok := allowedTransitions[appointment.Status]
	if !ok || !allowed[newStatus] {
		return exceptions.ErrStatusTransitionBlocked(nil)
	}

	oldStatus := appointment.Status
	now := time.Now()
	appointment.Status = newStatus
	switch newStatus {
	case constvars.AppointmentStatusApproved:
		appointment.ConfirmedAt = &now
	case constvars.AppointmentStatusCompleted:
		appointment.CompletedAt = &now
	case constvars.AppointmentStatusCancelled:
		appointment.CancellationReason = reason
	}

	if err := uc.AppointmentRepository.UpdateAppointment(ctx, appointment); err != nil {
		return err
	}

	history := &models.StatusHistory{
		AppointmentID: appointment.ID,
		OldStatus:     oldStatus,
		NewStatus:     newStatus,
		ChangedBy:     session.UserID,
		Reason:        reason,
	}
	if err := uc.StatusHistoryRepository.CreateStatusHistory(ctx, history); err != nil {
		uc.Log.Error("appointmentUsecase.applyStatusChange error recording status history",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
	}

	// Terminal states free the slot and make the queued reminders moot.
	switch newStatus {
	case constvars.AppointmentStatusCancelled, constvars.AppointmentStatusRejected, constvars.AppointmentStatusNoShow:
		if err := uc.ReminderUsecase.CancelPendingByAppointment(ctx, appointment.ID); err != nil {
			uc.Log.Error("appointmentUsecase.applyStatusChange error cancelling reminders",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
				zap.Error(err),
			)
		}
		uc.SlotUsecase.InvalidateSlotCache(ctx, appointment.DoctorID, appointment.AppointmentDate)
	}

	uc.notifyStatusChange(ctx, session, appointment, newStatus)
	return nil
}

func (uc *appointmentUsecase) notifyStatusChange(ctx context.Context, session *models.Session, appointment *models.Appointment, newStatus string) {
	dateStr := appointment.AppointmentDate.Format(constvars.DateLayout)
	message := fmt.Sprintf("Your appointment with %s on %s at %s is now %s",
		appointment.DoctorName, dateStr, appointment.AppointmentTime, newStatus)

	notificationType := constvars.NotificationTypeStatusChanged
	if newStatus == constvars.AppointmentStatusCancelled {
		notificationType = constvars.NotificationTypeAppointmentCancelled
	}

	// The actor already knows; tell the other party.
	if session.UserID != appointment.UserID {
		uc.notify(ctx, appointment.UserID, notificationType, "Appointment update", message, appointment.ID)
		return
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, appointment.DoctorID)
	if err != nil || doctor == nil {
		return
	}
	doctorMessage := fmt.Sprintf("%s changed the appointment on %s at %s to %s",
		appointment.PatientName, dateStr, appointment.AppointmentTime, newStatus)
	uc.notify(ctx, doctor.UserID, notificationType, "Appointment update", doctorMessage, appointment.ID)
}

func (uc *appointmentUsecase) Reschedule(ctx context.Context, sessionData, appointmentID string, request *requests.RescheduleAppointmentRequest) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Reschedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	session, err := uc.SessionService.ParseSession(sessionData)
	if err != nil {
		return nil, err
	}

	appointment, err := uc.findOwned(ctx, session, appointmentID)
	if err != nil {
		return nil, err
	}
	if !appointment.CanBeRescheduled() {
		return nil, exceptions.ErrCannotReschedule(nil)
	}

	date, err := time.ParseInLocation(constvars.DateLayout, request.Date, uc.Location)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	startAt, err := utils.CombineDateAndClock(date, request.Time, uc.Location)
	if err != nil {
		return nil, exceptions.ErrCannotParseTime(err)
	}
	if !startAt.After(time.Now().In(uc.Location)) {
		return nil, exceptions.ErrSlotNotAvailable(nil)
	}

	lockKey := fmt.Sprintf(constvars.BookingLockRedisKeyFmt, appointment.DoctorID, request.Date, request.Time)
	lockTTL := time.Duration(uc.InternalConfig.App.BookingLockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrSlotAlreadyBooked(nil)
	}
	defer func() {
		_ = uc.LockerService.Unlock(ctx, lockKey, lockValue)
	}()

	if err := uc.validateSlot(ctx, appointment.DoctorID, date, request.Time, appointment.ID); err != nil {
		return nil, err
	}

	oldDate := appointment.AppointmentDate
	oldStatus := appointment.Status
	appointment.AppointmentDate = date
	appointment.AppointmentTime = request.Time
	// A moved appointment goes back through doctor approval.
	appointment.Status = constvars.AppointmentStatusPending
	appointment.ConfirmedAt = nil

	if err := uc.AppointmentRepository.UpdateAppointment(ctx, appointment); err != nil {
		return nil, err
	}

	history := &models.StatusHistory{
		AppointmentID: appointment.ID,
		OldStatus:     oldStatus,
		NewStatus:     constvars.AppointmentStatusPending,
		ChangedBy:     session.UserID,
		Reason:        fmt.Sprintf("rescheduled to %s %s", request.Date, request.Time),
	}
	if err := uc.StatusHistoryRepository.CreateStatusHistory(ctx, history); err != nil {
		uc.Log.Error("appointmentUsecase.Reschedule error recording status history",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
	}

	if err := uc.ReminderUsecase.CancelPendingByAppointment(ctx, appointment.ID); err != nil {
		uc.Log.Error("appointmentUsecase.Reschedule error cancelling old reminders",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	if err := uc.ReminderUsecase.ScheduleDefaultReminders(ctx, appointment); err != nil {
		uc.Log.Error("appointmentUsecase.Reschedule error scheduling new reminders",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	uc.SlotUsecase.InvalidateSlotCache(ctx, appointment.DoctorID, oldDate)
	uc.SlotUsecase.InvalidateSlotCache(ctx, appointment.DoctorID, date)

	doctor, err := uc.DoctorRepository.FindByID(ctx, appointment.DoctorID)
	if err == nil && doctor != nil {
		uc.notify(ctx, doctor.UserID, constvars.NotificationTypeAppointmentRescheduled,
			"Appointment rescheduled",
			fmt.Sprintf("%s moved their appointment to %s at %s", appointment.PatientName, request.Date, request.Time),
			appointment.ID,
		)
	}

	return buildAppointmentResponsePtr(appointment), nil
}

func (uc *appointmentUsecase) BulkUpdateStatus(ctx context.Context, sessionData string, request *requests.BulkUpdateStatusRequest) (*responses.BulkUpdate, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.BulkUpdateStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := uc.SessionService.ParseSession(sessionData)
	if err != nil {
		return nil, err
	}
	if session.IsPatient() {
		return nil, exceptions.ErrDoctorsOnly(nil)
	}

	updated := 0
	for _, appointmentID := range request.AppointmentIDs {
		appointment, err := uc.findOwned(ctx, session, appointmentID)
		if err != nil {
			uc.Log.Warn("appointmentUsecase.BulkUpdateStatus skipping appointment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
				zap.Error(err),
			)
			continue
		}
		if err := uc.applyStatusChange(ctx, session, appointment, request.Status, request.Reason); err != nil {
			uc.Log.Warn("appointmentUsecase.BulkUpdateStatus skipping appointment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
				zap.Error(err),
			)
			continue
		}
		updated++
	}

	return &responses.BulkUpdate{UpdatedCount: updated}, nil
}

func (uc *appointmentUsecase) Export(ctx context.Context, sessionData string, params *requests.QueryParams) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Export called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	switch params.Format {
	case "", "csv", "json":
	default:
		return nil, exceptions.ErrInvalidExportFormat(nil)
	}

	if err := uc.scopeParams(sessionData, params); err != nil {
		return nil, err
	}

	params.Page = 1
	params.PageSize = 10000
	appointments, _, err := uc.AppointmentRepository.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (uc *appointmentUsecase) CalendarEvents(ctx context.Context, sessionData string) ([]responses.CalendarEvent, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CalendarEvents called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	params := &requests.QueryParams{Page: 1, PageSize: 1000}
	if err := uc.scopeParams(sessionData, params); err != nil {
		return nil, err
	}

	appointments, _, err := uc.AppointmentRepository.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	events := make([]responses.CalendarEvent, 0, len(appointments))
	for i := range appointments {
		a := &appointments[i]
		color, ok := calendarStatusColors[a.Status]
		if !ok {
			color = calendarStatusColors[constvars.AppointmentStatusPending]
		}
		events = append(events, responses.CalendarEvent{
			ID:    a.ID,
			Title: fmt.Sprintf("%s - %s", a.PatientName, a.Status),
			Start: fmt.Sprintf("%sT%s:00", a.AppointmentDate.Format(constvars.DateLayout), a.AppointmentTime),
			Color: color,
			ExtendedProps: map[string]interface{}{
				"status":   a.Status,
				"priority": a.Priority,
				"doctor":   a.DoctorName,
				"patient":  a.PatientName,
				"reason":   a.Reason,
			},
		})
	}
	return events, nil
}

// scopeParams pins the listing filters to the caller so patients only see
// their own appointments and doctors only their practice.
func (uc *appointmentUsecase) scopeParams(sessionData string, params *requests.QueryParams) error {
	session, err := uc.SessionService.ParseSession(sessionData)
	if err != nil {
		return err
	}
	switch {
	case session.IsPatient():
		params.UserID = session.UserID
	case session.IsDoctor():
		params.DoctorID = session.DoctorID
	}
	return nil
}

func (uc *appointmentUsecase) findOwned(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error) {
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

func (uc *appointmentUsecase) notify(ctx context.Context, userID, notificationType, title, message, appointmentID string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if err := uc.NotificationUsecase.Notify(ctx, userID, notificationType, title, message, appointmentID); err != nil {
		uc.Log.Error("appointmentUsecase.notify error creating notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, userID),
			zap.Error(err),
		)
	}
}

func buildAppointmentResponse(appointment *models.Appointment) responses.Appointment {
	return responses.Appointment{
		ID:                   appointment.ID,
		DoctorID:             appointment.DoctorID,
		DoctorName:           appointment.DoctorName,
		DoctorSpecialization: appointment.DoctorSpecialization,
		PatientName:          appointment.PatientName,
		PatientEmail:         appointment.PatientEmail,
		PatientPhone:         appointment.PatientPhone,
		AppointmentDate:      appointment.AppointmentDate.Format(constvars.DateLayout),
		AppointmentTime:      appointment.AppointmentTime,
		Status:               appointment.Status,
		Priority:             appointment.Priority,
		Reason:               appointment.Reason,
		Notes:                appointment.Notes,
		CancellationReason:   appointment.CancellationReason,
		ConfirmedAt:          appointment.ConfirmedAt,
		CompletedAt:          appointment.CompletedAt,
		CreatedAt:            appointment.CreatedAt,
	}
}

func buildAppointmentResponsePtr(appointment *models.Appointment) *responses.Appointment {
	response := buildAppointmentResponse(appointment)
	return &response
}

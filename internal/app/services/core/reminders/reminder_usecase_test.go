package reminders

import (
	"context"
	"mediport-service/internal/app/config"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/constvars"
	"mediport-service/internal/pkg/dto/requests"
	"mediport-service/internal/pkg/dto/responses"
	"mediport-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) CreateReminder(ctx context.Context, reminder *models.AppointmentReminder) (string, error) {
	args := m.Called(ctx, reminder)
	return args.String(0), args.Error(1)
}

func (m *MockReminderRepository) FindByID(ctx context.Context, reminderID string) (*models.AppointmentReminder, error) {
	args := m.Called(ctx, reminderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentReminder), args.Error(1)
}

func (m *MockReminderRepository) ListByAppointment(ctx context.Context, appointmentID string) ([]models.AppointmentReminder, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AppointmentReminder), args.Error(1)
}

func (m *MockReminderRepository) ListUpcoming(ctx context.Context, userID, doctorID string, now time.Time) ([]models.AppointmentReminder, error) {
	args := m.Called(ctx, userID, doctorID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AppointmentReminder), args.Error(1)
}

func (m *MockReminderRepository) FindDueUnsent(ctx context.Context, now time.Time, limit int) ([]models.AppointmentReminder, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AppointmentReminder), args.Error(1)
}

func (m *MockReminderRepository) MarkSent(ctx context.Context, reminderID, sentVia string, sentAt time.Time) error {
	args := m.Called(ctx, reminderID, sentVia, sentAt)
	return args.Error(0)
}

func (m *MockReminderRepository) MarkFailed(ctx context.Context, reminderID, errorMessage string) error {
	args := m.Called(ctx, reminderID, errorMessage)
	return args.Error(0)
}

func (m *MockReminderRepository) DeleteReminder(ctx context.Context, reminderID string) error {
	args := m.Called(ctx, reminderID)
	return args.Error(0)
}

func (m *MockReminderRepository) CancelPendingByAppointment(ctx context.Context, appointmentID string) error {
	args := m.Called(ctx, appointmentID)
	return args.Error(0)
}

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
	args := m.Called(ctx, appointment)
	return args.String(0), args.Error(1)
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Search(ctx context.Context, params *requests.QueryParams) ([]models.Appointment, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Appointment), args.Int(1), args.Error(2)
}

func (m *MockAppointmentRepository) FindUpcoming(ctx context.Context, params *requests.QueryParams, from time.Time) ([]models.Appointment, error) {
	args := m.Called(ctx, params, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ExistsActiveSlot(ctx context.Context, doctorID string, date time.Time, timeOfDay string, excludeID string) (bool, error) {
	args := m.Called(ctx, doctorID, date, timeOfDay, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) ListBookedTimes(ctx context.Context, doctorID string, date time.Time) ([]string, error) {
	args := m.Called(ctx, doctorID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAppointmentRepository) CountActiveForDate(ctx context.Context, doctorID string, date time.Time) (int, error) {
	args := m.Called(ctx, doctorID, date)
	return args.Int(0), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateAppointment(ctx context.Context, appointment *models.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) HasCompletedAppointment(ctx context.Context, userID, doctorID string) (string, error) {
	args := m.Called(ctx, userID, doctorID)
	return args.String(0), args.Error(1)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) CreateSession(ctx context.Context, session *models.Session) (string, error) {
	args := m.Called(ctx, session)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) GetSession(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) ParseSession(sessionData string) (*models.Session, error) {
	args := m.Called(sessionData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionService) DestroySession(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type MockNotificationUsecase struct {
	mock.Mock
}

func (m *MockNotificationUsecase) Notify(ctx context.Context, userID, notificationType, title, message, appointmentID string) error {
	args := m.Called(ctx, userID, notificationType, title, message, appointmentID)
	return args.Error(0)
}

func (m *MockNotificationUsecase) ListByUser(ctx context.Context, sessionData string, params *requests.QueryParams) (*responses.NotificationList, *responses.Pagination, error) {
	args := m.Called(ctx, sessionData, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*responses.NotificationList), args.Get(1).(*responses.Pagination), args.Error(2)
}

func (m *MockNotificationUsecase) MarkRead(ctx context.Context, sessionData, notificationID string) error {
	args := m.Called(ctx, sessionData, notificationID)
	return args.Error(0)
}

func (m *MockNotificationUsecase) MarkAllRead(ctx context.Context, sessionData string) error {
	args := m.Called(ctx, sessionData)
	return args.Error(0)
}

type MockMailerService struct {
	mock.Mock
}

func (m *MockMailerService) SendEmail(ctx context.Context, request *requests.EmailPayload) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockMailerService) DeliverEmail(request *requests.EmailPayload) error {
	args := m.Called(request)
	return args.Error(0)
}

func (m *MockMailerService) ValidateEmail(email string) bool {
	args := m.Called(email)
	return args.Bool(0)
}

func newTestReminderUsecase(
	reminderRepo *MockReminderRepository,
	appointmentRepo *MockAppointmentRepository,
	sessionService *MockSessionService,
	notificationUsecase *MockNotificationUsecase,
	mailerService *MockMailerService,
) *reminderUsecase {
	return &reminderUsecase{
		ReminderRepository:    reminderRepo,
		AppointmentRepository: appointmentRepo,
		SessionService:        sessionService,
		NotificationUsecase:   notificationUsecase,
		MailerService:         mailerService,
		InternalConfig: &config.InternalConfig{
			Reminder: config.AppReminder{BatchSize: 50},
		},
		Location: time.UTC,
		Log:      zap.NewNop(),
	}
}

func patientSession() *models.Session {
	return &models.Session{UserID: "patient-1", Username: "jane", Role: "patient"}
}

func ownedAppointment(startAt time.Time) *models.Appointment {
	return &models.Appointment{
		ID:              "apt-1",
		DoctorID:        "doc-1",
		UserID:          "patient-1",
		AppointmentDate: time.Date(startAt.Year(), startAt.Month(), startAt.Day(), 0, 0, 0, 0, time.UTC),
		AppointmentTime: startAt.Format(constvars.TimeLayout),
		Status:          constvars.AppointmentStatusApproved,
	}
}

func assertStatusCode(t *testing.T, err error, statusCode int) {
	t.Helper()
	customErr, ok := err.(*exceptions.CustomError)
	assert.True(t, ok)
	assert.Equal(t, statusCode, customErr.StatusCode)
}

func TestCreateReminder_RejectsUnknownOffset(t *testing.T) {
	reminderRepo := new(MockReminderRepository)
	appointmentRepo := new(MockAppointmentRepository)
	sessionService := new(MockSessionService)
	notificationUsecase := new(MockNotificationUsecase)
	mailerService := new(MockMailerService)
	uc := newTestReminderUsecase(reminderRepo, appointmentRepo, sessionService, notificationUsecase, mailerService)

	start := time.Now().UTC().AddDate(0, 0, 7)
	sessionService.On("ParseSession", "session-data").Return(patientSession(), nil)
	appointmentRepo.On("FindByID", mock.Anything, "apt-1").Return(ownedAppointment(start), nil)

	_, err := uc.CreateReminder(context.Background(), "session-data", "apt-1", &requests.CreateReminderRequest{
		AppointmentID: "apt-1",
		ReminderType:  constvars.ReminderTypeEmail,
		HoursBefore:   7,
	})

	assert.Error(t, err)
	assertStatusCode(t, err, 400)
	reminderRepo.AssertNotCalled(t, "CreateReminder", mock.Anything, mock.Anything)
}

func TestListUpcoming_PatientScopedToOwnAppointments(t *testing.T) {
	reminderRepo := new(MockReminderRepository)
	appointmentRepo := new(MockAppointmentRepository)
	sessionService := new(MockSessionService)
	notificationUsecase := new(MockNotificationUsecase)
	mailerService := new(MockMailerService)
	uc := newTestReminderUsecase(reminderRepo, appointmentRepo, sessionService, notificationUsecase, mailerService)

	sessionService.On("ParseSession", "session-data").Return(patientSession(), nil)
	reminderRepo.On("ListUpcoming", mock.Anything, "patient-1", "", mock.Anything).Return([]models.AppointmentReminder{
		{
			ID:                "rem-1",
			AppointmentID:     "apt-1",
			ReminderType:      constvars.ReminderTypeEmail,
			HoursBefore:       24,
			ScheduledFor:      time.Now().UTC().Add(23 * time.Hour),
			AppointmentDate:   time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			AppointmentTime:   "09:00",
			AppointmentStatus: constvars.AppointmentStatusApproved,
			DoctorName:        "Dr. Smith",
			PatientName:       "jane",
		},
	}, nil)

	result, err := uc.ListUpcoming(context.Background(), "session-data")

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "apt-1", result[0].AppointmentID)
	assert.Equal(t, "1 day before", result[0].Display)
	assert.Equal(t, "2026-09-10", result[0].AppointmentDate)
	reminderRepo.AssertExpectations(t)
}

func TestCreateReminder_WindowAlreadyPassed(t *testing.T) {
	reminderRepo := new(MockReminderRepository)
	appointmentRepo := new(MockAppointmentRepository)
	sessionService := new(MockSessionService)
	notificationUsecase := new(MockNotificationUsecase)
	mailerService := new(MockMailerService)
	uc := newTestReminderUsecase(reminderRepo, appointmentRepo, sessionService, notificationUsecase, mailerService)

	// The appointment is one hour out, so the 24h reminder would fire in
	// the past.
	start := time.Now().UTC().Add(time.Hour)
	sessionService.On("ParseSession", "session-data").Return(patientSession(), nil)
	appointmentRepo.On("FindByID", mock.Anything, "apt-1").Return(ownedAppointment(start), nil)

	_, err := uc.CreateReminder(context.Background(), "session-data", "apt-1", &requests.CreateReminderRequest{
		AppointmentID: "apt-1",
		ReminderType:  constvars.ReminderTypeEmail,
		HoursBefore:   24,
	})

	assert.Error(t, err)
	assertStatusCode(t, err, 400)
	reminderRepo.AssertNotCalled(t, "CreateReminder", mock.Anything, mock.Anything)
}

func TestScheduleDefaultReminders_SkipsPassedOffsets(t *testing.T) {
	reminderRepo := new(MockReminderRepository)
	appointmentRepo := new(MockAppointmentRepository)
	sessionService := new(MockSessionService)
	notificationUsecase := new(MockNotificationUsecase)
	mailerService := new(MockMailerService)
	uc := newTestReminderUsecase(reminderRepo, appointmentRepo, sessionService, notificationUsecase, mailerService)

	// Four hours out: the 24h offset is already gone, the 2h one is not.
	start := time.Now().UTC().Add(4 * time.Hour)
	reminderRepo.On("CreateReminder", mock.Anything, mock.MatchedBy(func(reminder *models.AppointmentReminder) bool {
		return reminder.HoursBefore == 2 && reminder.AppointmentID == "apt-1"
	})).Return("rem-1", nil)

	err := uc.ScheduleDefaultReminders(context.Background(), ownedAppointment(start))

	assert.NoError(t, err)
	reminderRepo.AssertNumberOfCalls(t, "CreateReminder", 1)
}

func TestDeleteReminder_SentReminderIsImmutable(t *testing.T) {
	reminderRepo := new(MockReminderRepository)
	appointmentRepo := new(MockAppointmentRepository)
	sessionService := new(MockSessionService)
	notificationUsecase := new(MockNotificationUsecase)
	mailerService := new(MockMailerService)
	uc := newTestReminderUsecase(reminderRepo, appointmentRepo, sessionService, notificationUsecase, mailerService)

	start := time.Now().UTC().AddDate(0, 0, 3)
	reminderRepo.On("FindByID", mock.Anything, "rem-1").Return(&models.AppointmentReminder{
		ID:            "rem-1",
		AppointmentID: "apt-1",
		IsSent:        true,
	}, nil)
	sessionService.On("ParseSession", "session-data").Return(patientSession(), nil)
	appointmentRepo.On("FindByID", mock.Anything, "apt-1").Return(ownedAppointment(start), nil)

	err := uc.DeleteReminder(context.Background(), "session-data", "rem-1")

	assert.Error(t, err)
	reminderRepo.AssertNotCalled(t, "DeleteReminder", mock.Anything, mock.Anything)
}

func TestDispatchDue_SendsMarksAndNotifies(t *testing.T) {
	reminderRepo := new(MockReminderRepository)
	appointmentRepo := new(MockAppointmentRepository)
	sessionService := new(MockSessionService)
	notificationUsecase := new(MockNotificationUsecase)
	mailerService := new(MockMailerService)
	uc := newTestReminderUsecase(reminderRepo, appointmentRepo, sessionService, notificationUsecase, mailerService)

	due := []models.AppointmentReminder{{
		ID:              "rem-1",
		AppointmentID:   "apt-1",
		UserID:          "patient-1",
		PatientName:     "jane",
		PatientEmail:    "jane@example.com",
		AppointmentDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "09:00",
		DoctorName:      "Dr. Smith",
	}}
	reminderRepo.On("FindDueUnsent", mock.Anything, mock.Anything, 50).Return(due, nil)
	mailerService.On("ValidateEmail", "jane@example.com").Return(true)
	mailerService.On("SendEmail", mock.Anything, mock.MatchedBy(func(payload *requests.EmailPayload) bool {
		return payload.To == "jane@example.com"
	})).Return(nil)
	reminderRepo.On("MarkSent", mock.Anything, "rem-1", constvars.ReminderTypeEmail, mock.Anything).Return(nil)
	notificationUsecase.On("Notify", mock.Anything, "patient-1", mock.Anything, mock.Anything, mock.Anything, "apt-1").Return(nil)

	sent, err := uc.DispatchDue(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	reminderRepo.AssertExpectations(t)
	notificationUsecase.AssertExpectations(t)
}

func TestDispatchDue_FailureIsRecordedNotRetried(t *testing.T) {
	reminderRepo := new(MockReminderRepository)
	appointmentRepo := new(MockAppointmentRepository)
	sessionService := new(MockSessionService)
	notificationUsecase := new(MockNotificationUsecase)
	mailerService := new(MockMailerService)
	uc := newTestReminderUsecase(reminderRepo, appointmentRepo, sessionService, notificationUsecase, mailerService)

	due := []models.AppointmentReminder{{
		ID:            "rem-1",
		AppointmentID: "apt-1",
		UserID:        "patient-1",
		PatientEmail:  "jane@example.com",
	}}
	reminderRepo.On("FindDueUnsent", mock.Anything, mock.Anything, 50).Return(due, nil)
	mailerService.On("ValidateEmail", "jane@example.com").Return(true)
	mailerService.On("SendEmail", mock.Anything, mock.Anything).Return(assert.AnError)
	reminderRepo.On("MarkFailed", mock.Anything, "rem-1", mock.Anything).Return(nil)

	sent, err := uc.DispatchDue(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, sent)
	reminderRepo.AssertCalled(t, "MarkFailed", mock.Anything, "rem-1", mock.Anything)
	reminderRepo.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	notificationUsecase.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

package appointments

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

type MockStatusHistoryRepository struct {
	mock.Mock
}

func (m *MockStatusHistoryRepository) CreateStatusHistory(ctx context.Context, history *models.StatusHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockStatusHistoryRepository) ListByAppointment(ctx context.Context, appointmentID string) ([]models.StatusHistory, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StatusHistory), args.Error(1)
}

type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) CreateDoctor(ctx context.Context, doctor *models.Doctor) (string, error) {
	args := m.Called(ctx, doctor)
	return args.String(0), args.Error(1)
}

func (m *MockDoctorRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) FindByUserID(ctx context.Context, userID string) (*models.Doctor, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) FindAll(ctx context.Context, params *requests.QueryParams) ([]models.Doctor, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Doctor), args.Int(1), args.Error(2)
}

func (m *MockDoctorRepository) ListSpecializations(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDoctorRepository) UpdateDoctor(ctx context.Context, doctor *models.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) UpdateRatingAggregates(ctx context.Context, doctorID string) error {
	args := m.Called(ctx, doctorID)
	return args.Error(0)
}

func (m *MockDoctorRepository) SetActive(ctx context.Context, doctorID string, active bool) error {
	args := m.Called(ctx, doctorID, active)
	return args.Error(0)
}

func (m *MockDoctorRepository) SetProfilePicture(ctx context.Context, doctorID, objectName string) error {
	args := m.Called(ctx, doctorID, objectName)
	return args.Error(0)
}

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DoctorSchedule), args.Error(1)
}

func (m *MockScheduleRepository) FindByDoctorAndDay(ctx context.Context, doctorID, dayOfWeek string) (*models.DoctorSchedule, error) {
	args := m.Called(ctx, doctorID, dayOfWeek)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DoctorSchedule), args.Error(1)
}

func (m *MockScheduleRepository) UpsertSchedule(ctx context.Context, schedule *models.DoctorSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) CreateTimeBlock(ctx context.Context, block *models.TimeBlock) (string, error) {
	args := m.Called(ctx, block)
	return args.String(0), args.Error(1)
}

func (m *MockScheduleRepository) FindTimeBlockByID(ctx context.Context, blockID string) (*models.TimeBlock, error) {
	args := m.Called(ctx, blockID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimeBlock), args.Error(1)
}

func (m *MockScheduleRepository) ListTimeBlocks(ctx context.Context, doctorID string, from time.Time) ([]models.TimeBlock, error) {
	args := m.Called(ctx, doctorID, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TimeBlock), args.Error(1)
}

func (m *MockScheduleRepository) ListTimeBlocksForDate(ctx context.Context, doctorID string, date time.Time) ([]models.TimeBlock, error) {
	args := m.Called(ctx, doctorID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TimeBlock), args.Error(1)
}

func (m *MockScheduleRepository) DeleteTimeBlock(ctx context.Context, blockID string) error {
	args := m.Called(ctx, blockID)
	return args.Error(0)
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

type MockLockerService struct {
	mock.Mock
}

func (m *MockLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

func (m *MockLockerService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	args := m.Called(ctx, key, lockValue, expiration)
	return args.Error(0)
}

type MockSlotUsecase struct {
	mock.Mock
}

func (m *MockSlotUsecase) AvailableSlots(ctx context.Context, doctorID string, date time.Time) (*responses.AvailableSlots, error) {
	args := m.Called(ctx, doctorID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.AvailableSlots), args.Error(1)
}

func (m *MockSlotUsecase) InvalidateSlotCache(ctx context.Context, doctorID string, date time.Time) {
	m.Called(ctx, doctorID, date)
}

type MockReminderUsecase struct {
	mock.Mock
}

func (m *MockReminderUsecase) CreateReminder(ctx context.Context, sessionData, appointmentID string, request *requests.CreateReminderRequest) (*responses.Reminder, error) {
	args := m.Called(ctx, sessionData, appointmentID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Reminder), args.Error(1)
}

func (m *MockReminderUsecase) ScheduleDefaultReminders(ctx context.Context, appointment *models.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockReminderUsecase) CancelPendingByAppointment(ctx context.Context, appointmentID string) error {
	args := m.Called(ctx, appointmentID)
	return args.Error(0)
}

func (m *MockReminderUsecase) ListByAppointment(ctx context.Context, sessionData, appointmentID string) (*responses.AppointmentReminders, error) {
	args := m.Called(ctx, sessionData, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.AppointmentReminders), args.Error(1)
}

func (m *MockReminderUsecase) ListUpcoming(ctx context.Context, sessionData string) ([]responses.UpcomingReminder, error) {
	args := m.Called(ctx, sessionData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]responses.UpcomingReminder), args.Error(1)
}

func (m *MockReminderUsecase) DeleteReminder(ctx context.Context, sessionData, reminderID string) error {
	args := m.Called(ctx, sessionData, reminderID)
	return args.Error(0)
}

func (m *MockReminderUsecase) DispatchDue(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
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

type appointmentTestMocks struct {
	AppointmentRepo *MockAppointmentRepository
	HistoryRepo     *MockStatusHistoryRepository
	DoctorRepo      *MockDoctorRepository
	ScheduleRepo    *MockScheduleRepository
	Session         *MockSessionService
	Locker          *MockLockerService
	Slots           *MockSlotUsecase
	Reminders       *MockReminderUsecase
	Notifications   *MockNotificationUsecase
}

func newTestAppointmentUsecase() (*appointmentUsecase, *appointmentTestMocks) {
	mocks := &appointmentTestMocks{
		AppointmentRepo: new(MockAppointmentRepository),
		HistoryRepo:     new(MockStatusHistoryRepository),
		DoctorRepo:      new(MockDoctorRepository),
		ScheduleRepo:    new(MockScheduleRepository),
		Session:         new(MockSessionService),
		Locker:          new(MockLockerService),
		Slots:           new(MockSlotUsecase),
		Reminders:       new(MockReminderUsecase),
		Notifications:   new(MockNotificationUsecase),
	}
	uc := &appointmentUsecase{
		AppointmentRepository:   mocks.AppointmentRepo,
		StatusHistoryRepository: mocks.HistoryRepo,
		DoctorRepository:        mocks.DoctorRepo,
		ScheduleRepository:      mocks.ScheduleRepo,
		SessionService:          mocks.Session,
		LockerService:           mocks.Locker,
		SlotUsecase:             mocks.Slots,
		ReminderUsecase:         mocks.Reminders,
		NotificationUsecase:     mocks.Notifications,
		InternalConfig: &config.InternalConfig{
			App: config.App{BookingLockTTLInSeconds: 10},
		},
		Location: time.UTC,
		Log:      zap.NewNop(),
	}
	return uc, mocks
}

func patientSession() *models.Session {
	return &models.Session{UserID: "patient-1", Username: "jane", Email: "jane@example.com", Role: "patient"}
}

func doctorSession() *models.Session {
	return &models.Session{UserID: "doc-user-1", Username: "drsmith", Role: "doctor", DoctorID: "doc-1"}
}

func pendingAppointment() *models.Appointment {
	return &models.Appointment{
		ID:              "apt-1",
		DoctorID:        "doc-1",
		UserID:          "patient-1",
		PatientName:     "jane",
		DoctorName:      "Dr. Smith",
		AppointmentDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "09:00",
		Status:          constvars.AppointmentStatusPending,
		Priority:        constvars.AppointmentPriorityNormal,
	}
}

func assertStatusCode(t *testing.T, err error, statusCode int) {
	t.Helper()
	customErr, ok := err.(*exceptions.CustomError)
	assert.True(t, ok)
	assert.Equal(t, statusCode, customErr.StatusCode)
}

func TestUpdateStatus_DoctorApprovesPending(t *testing.T) {
	uc, mocks := newTestAppointmentUsecase()

	appointment := pendingAppointment()
	mocks.Session.On("ParseSession", "session-data").Return(doctorSession(), nil)
	mocks.AppointmentRepo.On("FindByID", mock.Anything, "apt-1").Return(appointment, nil)
	mocks.AppointmentRepo.On("UpdateAppointment", mock.Anything, appointment).Return(nil)
	mocks.HistoryRepo.On("CreateStatusHistory", mock.Anything, mock.Anything).Return(nil)
	mocks.Notifications.On("Notify", mock.Anything, "patient-1", mock.Anything, mock.Anything, mock.Anything, "apt-1").Return(nil)

	response, err := uc.UpdateStatus(context.Background(), "session-data", "apt-1", &requests.UpdateAppointmentStatusRequest{
		Status: constvars.AppointmentStatusApproved,
	})

	assert.NoError(t, err)
	assert.Equal(t, constvars.AppointmentStatusApproved, response.NewStatus)
	assert.NotNil(t, appointment.ConfirmedAt)
	mocks.HistoryRepo.AssertCalled(t, "CreateStatusHistory", mock.Anything, mock.MatchedBy(func(h *models.StatusHistory) bool {
		return h.OldStatus == constvars.AppointmentStatusPending && h.NewStatus == constvars.AppointmentStatusApproved
	}))
	mocks.Notifications.AssertExpectations(t)
}

func TestUpdateStatus_CompletedIsTerminal(t *testing.T) {
	uc, mocks := newTestAppointmentUsecase()

	appointment := pendingAppointment()
	appointment.Status = constvars.AppointmentStatusCompleted
	mocks.Session.On("ParseSession", "session-data").Return(doctorSession(), nil)
	mocks.AppointmentRepo.On("FindByID", mock.Anything, "apt-1").Return(appointment, nil)

	_, err := uc.UpdateStatus(context.Background(), "session-data", "apt-1", &requests.UpdateAppointmentStatusRequest{
		Status: constvars.AppointmentStatusApproved,
	})

	assert.Error(t, err)
	assertStatusCode(t, err, 409)
	mocks.AppointmentRepo.AssertNotCalled(t, "UpdateAppointment", mock.Anything, mock.Anything)
}

func TestUpdateStatus_PatientMayOnlyCancel(t *testing.T) {
	uc, mocks := newTestAppointmentUsecase()

	appointment := pendingAppointment()
	mocks.Session.On("ParseSession", "session-data").Return(patientSession(), nil)
	mocks.AppointmentRepo.On("FindByID", mock.Anything, "apt-1").Return(appointment, nil)

	_, err := uc.UpdateStatus(context.Background(), "session-data", "apt-1", &requests.UpdateAppointmentStatusRequest{
		Status: constvars.AppointmentStatusApproved,
	})

	assert.Error(t, err)
	assertStatusCode(t, err, 403)
}

func TestUpdateStatus_PatientCancelFreesSlotAndReminders(t *testing.T) {
	uc, mocks := newTestAppointmentUsecase()

	appointment := pendingAppointment()
	mocks.Session.On("ParseSession", "session-data").Return(patientSession(), nil)
	mocks.AppointmentRepo.On("FindByID", mock.Anything, "apt-1").Return(appointment, nil)
	mocks.AppointmentRepo.On("UpdateAppointment", mock.Anything, appointment).Return(nil)
	mocks.HistoryRepo.On("CreateStatusHistory", mock.Anything, mock.Anything).Return(nil)
	mocks.Reminders.On("CancelPendingByAppointment", mock.Anything, "apt-1").Return(nil)
	mocks.Slots.On("InvalidateSlotCache", mock.Anything, "doc-1", appointment.AppointmentDate).Return()
	// The patient is the actor, so the doctor gets the notification.
	mocks.DoctorRepo.On("FindByID", mock.Anything, "doc-1").Return(&models.Doctor{ID: "doc-1", UserID: "doc-user-1", IsActive: true}, nil)
	mocks.Notifications.On("Notify", mock.Anything, "doc-user-1", mock.Anything, mock.Anything, mock.Anything, "apt-1").Return(nil)

	response, err := uc.UpdateStatus(context.Background(), "session-data", "apt-1", &requests.UpdateAppointmentStatusRequest{
		Status: constvars.AppointmentStatusCancelled,
		Reason: "cannot make it",
	})

	assert.NoError(t, err)
	assert.Equal(t, constvars.AppointmentStatusCancelled, response.NewStatus)
	assert.Equal(t, "cannot make it", appointment.CancellationReason)
	mocks.Reminders.AssertExpectations(t)
	mocks.Slots.AssertExpectations(t)
	mocks.Notifications.AssertExpectations(t)
}

func TestFindByID_PatientCannotSeeOthersAppointment(t *testing.T) {
	uc, mocks := newTestAppointmentUsecase()

	appointment := pendingAppointment()
	appointment.UserID = "patient-2"
	mocks.Session.On("ParseSession", "session-data").Return(patientSession(), nil)
	mocks.AppointmentRepo.On("FindByID", mock.Anything, "apt-1").Return(appointment, nil)

	_, err := uc.FindByID(context.Background(), "session-data", "apt-1")

	assert.Error(t, err)
	assertStatusCode(t, err, 404)
	mocks.HistoryRepo.AssertNotCalled(t, "ListByAppointment", mock.Anything, mock.Anything)
}

func TestCreateAppointment_DoctorsCannotBook(t *testing.T) {
	uc, mocks := newTestAppointmentUsecase()

	mocks.Session.On("ParseSession", "session-data").Return(doctorSession(), nil)

	_, err := uc.CreateAppointment(context.Background(), "session-data", &requests.CreateAppointmentRequest{
		DoctorID: "doc-1",
		Date:     "2026-09-10",
		Time:     "09:00",
	})

	assert.Error(t, err)
	assertStatusCode(t, err, 403)
	mocks.DoctorRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCreateAppointment_PastTimeRejected(t *testing.T) {
	uc, mocks := newTestAppointmentUsecase()

	mocks.Session.On("ParseSession", "session-data").Return(patientSession(), nil)
	mocks.DoctorRepo.On("FindByID", mock.Anything, "doc-1").Return(&models.Doctor{ID: "doc-1", UserID: "doc-user-1", IsActive: true}, nil)

	_, err := uc.CreateAppointment(context.Background(), "session-data", &requests.CreateAppointmentRequest{
		DoctorID: "doc-1",
		Date:     "2020-01-01",
		Time:     "09:00",
	})

	assert.Error(t, err)
	mocks.Locker.AssertNotCalled(t, "TryLock", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateAppointment_LockContention(t *testing.T) {
	uc, mocks := newTestAppointmentUsecase()

	futureDate := time.Now().UTC().AddDate(0, 0, 7).Format(constvars.DateLayout)
	mocks.Session.On("ParseSession", "session-data").Return(patientSession(), nil)
	mocks.DoctorRepo.On("FindByID", mock.Anything, "doc-1").Return(&models.Doctor{ID: "doc-1", UserID: "doc-user-1", IsActive: true}, nil)
	mocks.Locker.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(false, "", nil)

	_, err := uc.CreateAppointment(context.Background(), "session-data", &requests.CreateAppointmentRequest{
		DoctorID: "doc-1",
		Date:     futureDate,
		Time:     "09:00",
	})

	assert.Error(t, err)
	assertStatusCode(t, err, 409)
	mocks.AppointmentRepo.AssertNotCalled(t, "CreateAppointment", mock.Anything, mock.Anything)
}

func TestExport_RejectsUnknownFormat(t *testing.T) {
	uc, mocks := newTestAppointmentUsecase()

	_, err := uc.Export(context.Background(), "session-data", &requests.QueryParams{Format: "pdf"})

	assert.Error(t, err)
	assertStatusCode(t, err, 400)
	mocks.Session.AssertNotCalled(t, "ParseSession", mock.Anything)
}

func TestCalendarEvents_ScopedToPatientWithStatusColors(t *testing.T) {
	uc, mocks := newTestAppointmentUsecase()

	appointment := pendingAppointment()
	appointment.Status = constvars.AppointmentStatusApproved
	mocks.Session.On("ParseSession", "session-data").Return(patientSession(), nil)
	mocks.AppointmentRepo.On("Search", mock.Anything, mock.MatchedBy(func(params *requests.QueryParams) bool {
		return params.UserID == "patient-1"
	})).Return([]models.Appointment{*appointment}, 1, nil)

	events, err := uc.CalendarEvents(context.Background(), "session-data")

	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "apt-1", events[0].ID)
	assert.Equal(t, "jane - approved", events[0].Title)
	assert.Equal(t, "2026-09-10T09:00:00", events[0].Start)
	assert.Equal(t, calendarStatusColors[constvars.AppointmentStatusApproved], events[0].Color)
}

package schedules

import (
	"context"
	"mediport-service/internal/app/config"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/dto/requests"
	"mediport-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

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

func newTestScheduleUsecase(scheduleRepo *MockScheduleRepository, sessionService *MockSessionService) *scheduleUsecase {
	return &scheduleUsecase{
		ScheduleRepository: scheduleRepo,
		SessionService:     sessionService,
		InternalConfig:     &config.InternalConfig{},
		Location:           time.UTC,
		Log:                zap.NewNop(),
	}
}

func doctorSession() *models.Session {
	return &models.Session{UserID: "doc-user-1", Role: "doctor", DoctorID: "doc-1"}
}

func fullWeek(startTime, endTime string) []requests.ScheduleDayRequest {
	days := make([]requests.ScheduleDayRequest, 0, len(models.DaysOfWeek))
	for _, day := range models.DaysOfWeek {
		days = append(days, requests.ScheduleDayRequest{
			DayOfWeek:       day,
			StartTime:       startTime,
			EndTime:         endTime,
			IsAvailable:     day != "sunday",
			MaxAppointments: 10,
			SlotDuration:    30,
		})
	}
	return days
}

func assertStatusCode(t *testing.T, err error, statusCode int) {
	t.Helper()
	customErr, ok := err.(*exceptions.CustomError)
	assert.True(t, ok)
	assert.Equal(t, statusCode, customErr.StatusCode)
}

func TestScheduleOverview_PatientsAreRejected(t *testing.T) {
	scheduleRepo := new(MockScheduleRepository)
	sessionService := new(MockSessionService)
	uc := newTestScheduleUsecase(scheduleRepo, sessionService)

	sessionService.On("ParseSession", "session-data").Return(&models.Session{UserID: "patient-1", Role: "patient"}, nil)

	_, err := uc.ScheduleOverview(context.Background(), "session-data")

	assert.Error(t, err)
	assertStatusCode(t, err, 403)
	scheduleRepo.AssertNotCalled(t, "ListByDoctor", mock.Anything, mock.Anything)
}

func TestScheduleOverview_MissingDaysComeBackClosed(t *testing.T) {
	scheduleRepo := new(MockScheduleRepository)
	sessionService := new(MockSessionService)
	uc := newTestScheduleUsecase(scheduleRepo, sessionService)

	sessionService.On("ParseSession", "session-data").Return(doctorSession(), nil)
	scheduleRepo.On("ListByDoctor", mock.Anything, "doc-1").Return([]models.DoctorSchedule{{
		ID:              "sch-1",
		DoctorID:        "doc-1",
		DayOfWeek:       "monday",
		StartTime:       "08:00",
		EndTime:         "12:00",
		IsAvailable:     true,
		MaxAppointments: 8,
		SlotDuration:    20,
	}}, nil)
	scheduleRepo.On("ListTimeBlocks", mock.Anything, "doc-1", mock.Anything).Return([]models.TimeBlock{}, nil)

	overview, err := uc.ScheduleOverview(context.Background(), "session-data")

	assert.NoError(t, err)
	assert.Len(t, overview.Days, 7)
	assert.Equal(t, "monday", overview.Days[0].DayOfWeek)
	assert.True(t, overview.Days[0].IsAvailable)
	assert.Equal(t, "08:00", overview.Days[0].StartTime)
	// Tuesday has no stored row, so the editor gets closed defaults.
	assert.Equal(t, "tuesday", overview.Days[1].DayOfWeek)
	assert.False(t, overview.Days[1].IsAvailable)
	assert.Equal(t, "09:00", overview.Days[1].StartTime)
	assert.Equal(t, "17:00", overview.Days[1].EndTime)
}

func TestUpdateSchedule_EndBeforeStartRejected(t *testing.T) {
	scheduleRepo := new(MockScheduleRepository)
	sessionService := new(MockSessionService)
	uc := newTestScheduleUsecase(scheduleRepo, sessionService)

	sessionService.On("ParseSession", "session-data").Return(doctorSession(), nil)

	_, err := uc.UpdateSchedule(context.Background(), "session-data", &requests.UpdateScheduleRequest{
		Days: fullWeek("17:00", "09:00"),
	})

	assert.Error(t, err)
	assertStatusCode(t, err, 400)
	scheduleRepo.AssertNotCalled(t, "UpsertSchedule", mock.Anything, mock.Anything)
}

func TestUpdateSchedule_UpsertsEveryDay(t *testing.T) {
	scheduleRepo := new(MockScheduleRepository)
	sessionService := new(MockSessionService)
	uc := newTestScheduleUsecase(scheduleRepo, sessionService)

	sessionService.On("ParseSession", "session-data").Return(doctorSession(), nil)
	scheduleRepo.On("UpsertSchedule", mock.Anything, mock.MatchedBy(func(schedule *models.DoctorSchedule) bool {
		return schedule.DoctorID == "doc-1"
	})).Return(nil)
	scheduleRepo.On("ListByDoctor", mock.Anything, "doc-1").Return([]models.DoctorSchedule{}, nil)
	scheduleRepo.On("ListTimeBlocks", mock.Anything, "doc-1", mock.Anything).Return([]models.TimeBlock{}, nil)

	overview, err := uc.UpdateSchedule(context.Background(), "session-data", &requests.UpdateScheduleRequest{
		Days: fullWeek("09:00", "17:00"),
	})

	assert.NoError(t, err)
	assert.Len(t, overview.Days, 7)
	scheduleRepo.AssertNumberOfCalls(t, "UpsertSchedule", 7)
}

func TestCreateTimeBlock_InvertedRangeRejected(t *testing.T) {
	scheduleRepo := new(MockScheduleRepository)
	sessionService := new(MockSessionService)
	uc := newTestScheduleUsecase(scheduleRepo, sessionService)

	sessionService.On("ParseSession", "session-data").Return(doctorSession(), nil)

	_, err := uc.CreateTimeBlock(context.Background(), "session-data", &requests.CreateTimeBlockRequest{
		StartDate: "2026-09-10",
		StartTime: "14:00",
		EndDate:   "2026-09-10",
		EndTime:   "13:00",
		Reason:    "conference",
	})

	assert.Error(t, err)
	assertStatusCode(t, err, 400)
	scheduleRepo.AssertNotCalled(t, "CreateTimeBlock", mock.Anything, mock.Anything)
}

func TestCreateTimeBlock_FullyPastBlockRejected(t *testing.T) {
	scheduleRepo := new(MockScheduleRepository)
	sessionService := new(MockSessionService)
	uc := newTestScheduleUsecase(scheduleRepo, sessionService)

	sessionService.On("ParseSession", "session-data").Return(doctorSession(), nil)

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	_, err := uc.CreateTimeBlock(context.Background(), "session-data", &requests.CreateTimeBlockRequest{
		StartDate: yesterday,
		StartTime: "09:00",
		EndDate:   yesterday,
		EndTime:   "11:00",
		Reason:    "conference",
	})

	assert.Error(t, err)
	assertStatusCode(t, err, 400)
	scheduleRepo.AssertNotCalled(t, "CreateTimeBlock", mock.Anything, mock.Anything)
}

func TestDeleteTimeBlock_OtherDoctorsBlockIsInvisible(t *testing.T) {
	scheduleRepo := new(MockScheduleRepository)
	sessionService := new(MockSessionService)
	uc := newTestScheduleUsecase(scheduleRepo, sessionService)

	sessionService.On("ParseSession", "session-data").Return(doctorSession(), nil)
	scheduleRepo.On("FindTimeBlockByID", mock.Anything, "blk-1").Return(&models.TimeBlock{
		ID:       "blk-1",
		DoctorID: "doc-2",
	}, nil)

	err := uc.DeleteTimeBlock(context.Background(), "session-data", "blk-1")

	assert.Error(t, err)
	assertStatusCode(t, err, 404)
	scheduleRepo.AssertNotCalled(t, "DeleteTimeBlock", mock.Anything, mock.Anything)
}

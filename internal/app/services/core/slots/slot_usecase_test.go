package slots

import (
	"context"
	"mediport-service/internal/app/config"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/dto/requests"
	"mediport-service/internal/pkg/dto/responses"
	"mediport-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/goccy/go-json"
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

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func newTestSlotUsecase(
	scheduleRepo *MockScheduleRepository,
	appointmentRepo *MockAppointmentRepository,
	doctorRepo *MockDoctorRepository,
	redisRepo *MockRedisRepository,
) *slotUsecase {
	return &slotUsecase{
		ScheduleRepository:    scheduleRepo,
		AppointmentRepository: appointmentRepo,
		DoctorRepository:      doctorRepo,
		RedisRepository:       redisRepo,
		InternalConfig: &config.InternalConfig{
			App: config.App{SlotCacheTTLInSeconds: 60},
		},
		Location: time.UTC,
		Log:      zap.NewNop(),
	}
}

func activeDoctor() *models.Doctor {
	return &models.Doctor{ID: "doc-1", UserID: "user-1", Name: "Dr. Example", IsActive: true}
}

func TestAvailableSlots_InactiveDoctor(t *testing.T) {
	scheduleRepo := new(MockScheduleRepository)
	appointmentRepo := new(MockAppointmentRepository)
	doctorRepo := new(MockDoctorRepository)
	redisRepo := new(MockRedisRepository)
	uc := newTestSlotUsecase(scheduleRepo, appointmentRepo, doctorRepo, redisRepo)

	redisRepo.On("Get", mock.Anything, mock.Anything).Return("", nil)
	doctorRepo.On("FindByID", mock.Anything, "doc-1").Return(&models.Doctor{ID: "doc-1", IsActive: false}, nil)

	date := time.Now().UTC().AddDate(0, 0, 1)
	_, err := uc.AvailableSlots(context.Background(), "doc-1", date)

	assert.Error(t, err)
	customErr, ok := err.(*exceptions.CustomError)
	assert.True(t, ok)
	assert.Equal(t, 404, customErr.StatusCode)
}

func TestAvailableSlots_DayOff(t *testing.T) {
	scheduleRepo := new(MockScheduleRepository)
	appointmentRepo := new(MockAppointmentRepository)
	doctorRepo := new(MockDoctorRepository)
	redisRepo := new(MockRedisRepository)
	uc := newTestSlotUsecase(scheduleRepo, appointmentRepo, doctorRepo, redisRepo)

	redisRepo.On("Get", mock.Anything, mock.Anything).Return("", nil)
	redisRepo.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	doctorRepo.On("FindByID", mock.Anything, "doc-1").Return(activeDoctor(), nil)
	scheduleRepo.On("FindByDoctorAndDay", mock.Anything, "doc-1", mock.Anything).Return(nil, nil)

	date := time.Now().UTC().AddDate(0, 0, 1)
	result, err := uc.AvailableSlots(context.Background(), "doc-1", date)

	assert.NoError(t, err)
	assert.Empty(t, result.Slots)
	assert.Equal(t, "the doctor is not available on this day", result.Message)
}

func TestAvailableSlots_FullyBooked(t *testing.T) {
	scheduleRepo := new(MockScheduleRepository)
	appointmentRepo := new(MockAppointmentRepository)
	doctorRepo := new(MockDoctorRepository)
	redisRepo := new(MockRedisRepository)
	uc := newTestSlotUsecase(scheduleRepo, appointmentRepo, doctorRepo, redisRepo)

	redisRepo.On("Get", mock.Anything, mock.Anything).Return("", nil)
	redisRepo.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	doctorRepo.On("FindByID", mock.Anything, "doc-1").Return(activeDoctor(), nil)
	scheduleRepo.On("FindByDoctorAndDay", mock.Anything, "doc-1", mock.Anything).Return(&models.DoctorSchedule{
		DoctorID:        "doc-1",
		StartTime:       "09:00",
		EndTime:         "17:00",
		IsAvailable:     true,
		MaxAppointments: 2,
		SlotDuration:    30,
	}, nil)
	appointmentRepo.On("CountActiveForDate", mock.Anything, "doc-1", mock.Anything).Return(2, nil)

	date := time.Now().UTC().AddDate(0, 0, 1)
	result, err := uc.AvailableSlots(context.Background(), "doc-1", date)

	assert.NoError(t, err)
	assert.Empty(t, result.Slots)
	assert.Equal(t, "the doctor is fully booked on this day", result.Message)
}

func TestAvailableSlots_FiltersBookedAndBlocked(t *testing.T) {
	scheduleRepo := new(MockScheduleRepository)
	appointmentRepo := new(MockAppointmentRepository)
	doctorRepo := new(MockDoctorRepository)
	redisRepo := new(MockRedisRepository)
	uc := newTestSlotUsecase(scheduleRepo, appointmentRepo, doctorRepo, redisRepo)

	date := time.Now().UTC().AddDate(0, 0, 1)
	blockStart := time.Date(date.Year(), date.Month(), date.Day(), 10, 0, 0, 0, time.UTC)

	redisRepo.On("Get", mock.Anything, mock.Anything).Return("", nil)
	redisRepo.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	doctorRepo.On("FindByID", mock.Anything, "doc-1").Return(activeDoctor(), nil)
	scheduleRepo.On("FindByDoctorAndDay", mock.Anything, "doc-1", mock.Anything).Return(&models.DoctorSchedule{
		DoctorID:        "doc-1",
		StartTime:       "09:00",
		EndTime:         "11:00",
		IsAvailable:     true,
		MaxAppointments: 10,
		SlotDuration:    30,
	}, nil)
	appointmentRepo.On("CountActiveForDate", mock.Anything, "doc-1", mock.Anything).Return(1, nil)
	appointmentRepo.On("ListBookedTimes", mock.Anything, "doc-1", mock.Anything).Return([]string{"09:00"}, nil)
	scheduleRepo.On("ListTimeBlocksForDate", mock.Anything, "doc-1", mock.Anything).Return([]models.TimeBlock{
		{DoctorID: "doc-1", StartAt: blockStart, EndAt: blockStart.Add(time.Hour)},
	}, nil)

	result, err := uc.AvailableSlots(context.Background(), "doc-1", date)

	assert.NoError(t, err)
	// 09:00 is booked; 10:00 and 10:30 fall inside the block.
	assert.Len(t, result.Slots, 1)
	assert.Equal(t, "09:30", result.Slots[0].Time)
}

func TestAvailableSlots_CacheHitSkipsCompute(t *testing.T) {
	scheduleRepo := new(MockScheduleRepository)
	appointmentRepo := new(MockAppointmentRepository)
	doctorRepo := new(MockDoctorRepository)
	redisRepo := new(MockRedisRepository)
	uc := newTestSlotUsecase(scheduleRepo, appointmentRepo, doctorRepo, redisRepo)

	cached := responses.AvailableSlots{Slots: []responses.Slot{{Time: "09:00", Display: "9:00 AM"}}}
	payload, err := json.Marshal(cached)
	assert.NoError(t, err)

	redisRepo.On("Get", mock.Anything, mock.Anything).Return(string(payload), nil)

	date := time.Now().UTC().AddDate(0, 0, 1)
	result, err := uc.AvailableSlots(context.Background(), "doc-1", date)

	assert.NoError(t, err)
	assert.Len(t, result.Slots, 1)
	assert.Equal(t, "09:00", result.Slots[0].Time)
	doctorRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestInvalidateSlotCache_DeleteFailureIsSoft(t *testing.T) {
	scheduleRepo := new(MockScheduleRepository)
	appointmentRepo := new(MockAppointmentRepository)
	doctorRepo := new(MockDoctorRepository)
	redisRepo := new(MockRedisRepository)
	uc := newTestSlotUsecase(scheduleRepo, appointmentRepo, doctorRepo, redisRepo)

	redisRepo.On("Delete", mock.Anything, "slots:doc-1:2026-09-01").Return(assert.AnError)

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	uc.InvalidateSlotCache(context.Background(), "doc-1", date)

	redisRepo.AssertExpectations(t)
}

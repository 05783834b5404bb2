package schedules

import (
	"context"
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

type scheduleUsecase struct {
	ScheduleRepository contracts.ScheduleRepository
	SessionService     contracts.SessionService
	InternalConfig     *config.InternalConfig
	Location           *time.Location
	Log                *zap.Logger
}

var (
	scheduleUsecaseInstance contracts.ScheduleUsecase
	onceScheduleUsecase     sync.Once
)

func NewScheduleUsecase(
	scheduleRepository contracts.ScheduleRepository,
	sessionService contracts.SessionService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ScheduleUsecase {
	onceScheduleUsecase.Do(func() {
		location, err := time.LoadLocation(internalConfig.App.Timezone)
		if err != nil {
			location = time.UTC
		}
		instance := &scheduleUsecase{
			ScheduleRepository: scheduleRepository,
			SessionService:     sessionService,
			InternalConfig:     internalConfig,
			Location:           location,
			Log:                logger,
		}
		scheduleUsecaseInstance = instance
	})
	return scheduleUsecaseInstance
}

func (uc *scheduleUsecase) ScheduleOverview(ctx context.Context, sessionData string) (*responses.ScheduleOverview, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.ScheduleOverview called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctorID, err := uc.requireDoctor(sessionData)
	if err != nil {
		return nil, err
	}

	schedules, err := uc.ScheduleRepository.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	blocks, err := uc.ScheduleRepository.ListTimeBlocks(ctx, doctorID, time.Now().In(uc.Location))
	if err != nil {
		return nil, err
	}

	return buildScheduleOverview(schedules, blocks), nil
}

func (uc *scheduleUsecase) UpdateSchedule(ctx context.Context, sessionData string, request *requests.UpdateScheduleRequest) (*responses.ScheduleOverview, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.UpdateSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctorID, err := uc.requireDoctor(sessionData)
	if err != nil {
		return nil, err
	}

	for i := range request.Days {
		day := &request.Days[i]
		if !day.IsAvailable {
			continue
		}
		startMin, err := utils.MinutesOfDay(day.StartTime)
		if err != nil {
			return nil, exceptions.ErrCannotParseTime(err)
		}
		endMin, err := utils.MinutesOfDay(day.EndTime)
		if err != nil {
			return nil, exceptions.ErrCannotParseTime(err)
		}
		if endMin <= startMin {
			return nil, exceptions.ErrInvalidTimeRange(nil)
		}
	}

	for i := range request.Days {
		day := &request.Days[i]
		schedule := &models.DoctorSchedule{
			DoctorID:        doctorID,
			DayOfWeek:       day.DayOfWeek,
			StartTime:       day.StartTime,
			EndTime:         day.EndTime,
			IsAvailable:     day.IsAvailable,
			MaxAppointments: day.MaxAppointments,
			SlotDuration:    day.SlotDuration,
		}
		if err := uc.ScheduleRepository.UpsertSchedule(ctx, schedule); err != nil {
			return nil, err
		}
	}

	uc.Log.Info("scheduleUsecase.UpdateSchedule succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)
	return uc.ScheduleOverview(ctx, sessionData)
}

func (uc *scheduleUsecase) CreateTimeBlock(ctx context.Context, sessionData string, request *requests.CreateTimeBlockRequest) (*responses.TimeBlock, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.CreateTimeBlock called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctorID, err := uc.requireDoctor(sessionData)
	if err != nil {
		return nil, err
	}

	startDate, err := time.ParseInLocation(constvars.DateLayout, request.StartDate, uc.Location)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	startAt, err := utils.CombineDateAndClock(startDate, request.StartTime, uc.Location)
	if err != nil {
		return nil, exceptions.ErrCannotParseTime(err)
	}
	endDate, err := time.ParseInLocation(constvars.DateLayout, request.EndDate, uc.Location)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	endAt, err := utils.CombineDateAndClock(endDate, request.EndTime, uc.Location)
	if err != nil {
		return nil, exceptions.ErrCannotParseTime(err)
	}
	if !endAt.After(startAt) {
		return nil, exceptions.ErrInvalidTimeRange(nil)
	}
	// A block that already ended would never hide a slot.
	if !endAt.After(time.Now().In(uc.Location)) {
		return nil, exceptions.ErrInvalidTimeRange(nil)
	}

	block := &models.TimeBlock{
		DoctorID:    doctorID,
		StartAt:     startAt,
		EndAt:       endAt,
		Reason:      request.Reason,
		IsRecurring: request.Recurring,
	}
	blockID, err := uc.ScheduleRepository.CreateTimeBlock(ctx, block)
	if err != nil {
		return nil, err
	}
	block.ID = blockID

	return buildTimeBlockResponse(block), nil
}

func (uc *scheduleUsecase) DeleteTimeBlock(ctx context.Context, sessionData, blockID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.DeleteTimeBlock called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctorID, err := uc.requireDoctor(sessionData)
	if err != nil {
		return err
	}

	block, err := uc.ScheduleRepository.FindTimeBlockByID(ctx, blockID)
	if err != nil {
		return err
	}
	if block == nil || block.DoctorID != doctorID {
		return exceptions.ErrTimeBlockNotFound(nil)
	}

	return uc.ScheduleRepository.DeleteTimeBlock(ctx, blockID)
}

func (uc *scheduleUsecase) requireDoctor(sessionData string) (string, error) {
	session, err := uc.SessionService.ParseSession(sessionData)
	if err != nil {
		return "", err
	}
	if !session.IsDoctor() || session.DoctorID == "" {
		return "", exceptions.ErrDoctorsOnly(nil)
	}
	return session.DoctorID, nil
}

func buildScheduleOverview(schedules []models.DoctorSchedule, blocks []models.TimeBlock) *responses.ScheduleOverview {
	byDay := make(map[string]*models.DoctorSchedule, len(schedules))
	for i := range schedules {
		byDay[schedules[i].DayOfWeek] = &schedules[i]
	}

	overview := &responses.ScheduleOverview{
		Days:       make([]responses.ScheduleDay, 0, len(models.DaysOfWeek)),
		TimeBlocks: make([]responses.TimeBlock, 0, len(blocks)),
	}
	// Days without a stored row come back as closed defaults so the
	// editor always renders a full week.
	for _, day := range models.DaysOfWeek {
		schedule, ok := byDay[day]
		if !ok {
			overview.Days = append(overview.Days, responses.ScheduleDay{
				DayOfWeek:       day,
				StartTime:       "09:00",
				EndTime:         "17:00",
				IsAvailable:     false,
				MaxAppointments: 10,
				SlotDuration:    30,
			})
			continue
		}
		overview.Days = append(overview.Days, responses.ScheduleDay{
			ID:              schedule.ID,
			DayOfWeek:       schedule.DayOfWeek,
			StartTime:       schedule.StartTime,
			EndTime:         schedule.EndTime,
			IsAvailable:     schedule.IsAvailable,
			MaxAppointments: schedule.MaxAppointments,
			SlotDuration:    schedule.SlotDuration,
		})
	}
	for i := range blocks {
		overview.TimeBlocks = append(overview.TimeBlocks, *buildTimeBlockResponse(&blocks[i]))
	}
	return overview
}

func buildTimeBlockResponse(block *models.TimeBlock) *responses.TimeBlock {
	return &responses.TimeBlock{
		ID:          block.ID,
		StartAt:     block.StartAt,
		EndAt:       block.EndAt,
		Reason:      block.Reason,
		IsRecurring: block.IsRecurring,
	}
}

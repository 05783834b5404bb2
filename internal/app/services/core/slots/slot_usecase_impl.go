package slots

import (
	"context"
	"fmt"
	"mediport-service/internal/app/config"
	"mediport-service/internal/app/contracts"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/constvars"
	"mediport-service/internal/pkg/dto/responses"
	"mediport-service/internal/pkg/exceptions"
	"mediport-service/internal/pkg/utils"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type slotUsecase struct {
	ScheduleRepository    contracts.ScheduleRepository
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	RedisRepository       contracts.RedisRepository
	InternalConfig        *config.InternalConfig
	Location              *time.Location
	Log                   *zap.Logger
}

var (
	slotUsecaseInstance contracts.SlotUsecase
	onceSlotUsecase     sync.Once
)

func NewSlotUsecase(
	scheduleRepository contracts.ScheduleRepository,
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.SlotUsecase {
	onceSlotUsecase.Do(func() {
		location, err := time.LoadLocation(internalConfig.App.Timezone)
		if err != nil {
			location = time.UTC
		}
		instance := &slotUsecase{
			ScheduleRepository:    scheduleRepository,
			AppointmentRepository: appointmentRepository,
			DoctorRepository:      doctorRepository,
			RedisRepository:       redisRepository,
			InternalConfig:        internalConfig,
			Location:              location,
			Log:                   logger,
		}
		slotUsecaseInstance = instance
	})
	return slotUsecaseInstance
}

func (uc *slotUsecase) AvailableSlots(ctx context.Context, doctorID string, date time.Time) (*responses.AvailableSlots, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	dateStr := date.Format(constvars.DateLayout)
	uc.Log.Info("slotUsecase.AvailableSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingSlotDateKey, dateStr),
	)

	cacheKey := fmt.Sprintf(constvars.SlotCacheRedisKeyFormat, doctorID, dateStr)
	if cached, err := uc.RedisRepository.Get(ctx, cacheKey); err == nil && cached != "" {
		var result responses.AvailableSlots
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return &result, nil
		}
		uc.Log.Warn("slotUsecase.AvailableSlots discarding unreadable cache entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
		)
	}

	result, err := uc.computeSlots(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	cacheTTL := time.Duration(uc.InternalConfig.App.SlotCacheTTLInSeconds) * time.Second
	if err := uc.RedisRepository.Set(ctx, cacheKey, result, cacheTTL); err != nil {
		uc.Log.Warn("slotUsecase.AvailableSlots failed to cache slots",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	}

	uc.Log.Info("slotUsecase.AvailableSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingSlotCountKey, len(result.Slots)),
	)
	return result, nil
}

func (uc *slotUsecase) computeSlots(ctx context.Context, doctorID string, date time.Time) (*responses.AvailableSlots, error) {
	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil || !doctor.IsActive {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	empty := &responses.AvailableSlots{Slots: []responses.Slot{}}

	schedule, err := uc.ScheduleRepository.FindByDoctorAndDay(ctx, doctorID, models.DayOfWeekFor(date))
	if err != nil {
		return nil, err
	}
	if schedule == nil || !schedule.IsAvailable {
		empty.Message = "the doctor is not available on this day"
		return empty, nil
	}

	if schedule.MaxAppointments > 0 {
		count, err := uc.AppointmentRepository.CountActiveForDate(ctx, doctorID, date)
		if err != nil {
			return nil, err
		}
		if count >= schedule.MaxAppointments {
			empty.Message = "the doctor is fully booked on this day"
			return empty, nil
		}
	}

	times, err := utils.GenerateSlotTimes(schedule.StartTime, schedule.EndTime, schedule.SlotDuration)
	if err != nil {
		return nil, err
	}

	booked, err := uc.AppointmentRepository.ListBookedTimes(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	bookedSet := make(map[string]bool, len(booked))
	for _, t := range booked {
		bookedSet[t] = true
	}

	blocks, err := uc.ScheduleRepository.ListTimeBlocksForDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	duration := schedule.SlotDuration
	if duration <= 0 {
		duration = 30
	}
	now := time.Now().In(uc.Location)

	result := &responses.AvailableSlots{Slots: make([]responses.Slot, 0, len(times))}
	for _, t := range times {
		if bookedSet[t] {
			continue
		}
		slotStart, err := utils.CombineDateAndClock(date, t, uc.Location)
		if err != nil {
			return nil, err
		}
		if !slotStart.After(now) {
			continue
		}
		slotEnd := slotStart.Add(time.Duration(duration) * time.Minute)
		blocked := false
		for i := range blocks {
			if blocks[i].Overlaps(slotStart, slotEnd) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		result.Slots = append(result.Slots, responses.Slot{
			Time:    t,
			Display: slotStart.Format("3:04 PM"),
		})
	}
	if len(result.Slots) == 0 {
		result.Message = "no available slots on this day"
	}
	return result, nil
}

// InvalidateSlotCache drops the cached slot list for a doctor/date. Callers
// treat a failed invalidation as soft because the cache entry expires on
// its own shortly after.
func (uc *slotUsecase) InvalidateSlotCache(ctx context.Context, doctorID string, date time.Time) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	cacheKey := fmt.Sprintf(constvars.SlotCacheRedisKeyFormat, doctorID, date.Format(constvars.DateLayout))
	if err := uc.RedisRepository.Delete(ctx, cacheKey); err != nil {
		uc.Log.Warn("slotUsecase.InvalidateSlotCache failed to delete cache entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	}
}

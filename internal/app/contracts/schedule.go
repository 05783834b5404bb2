package contracts

import (
	"context"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/dto/requests"
	"mediport-service/internal/pkg/dto/responses"
	"time"
)

type ScheduleRepository interface {
	ListByDoctor(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error)
	FindByDoctorAndDay(ctx context.Context, doctorID, dayOfWeek string) (*models.DoctorSchedule, error)
	UpsertSchedule(ctx context.Context, schedule *models.DoctorSchedule) error
	CreateTimeBlock(ctx context.Context, block *models.TimeBlock) (string, error)
	FindTimeBlockByID(ctx context.Context, blockID string) (*models.TimeBlock, error)
	ListTimeBlocks(ctx context.Context, doctorID string, from time.Time) ([]models.TimeBlock, error)
	ListTimeBlocksForDate(ctx context.Context, doctorID string, date time.Time) ([]models.TimeBlock, error)
	DeleteTimeBlock(ctx context.Context, blockID string) error
}

type ScheduleUsecase interface {
	ScheduleOverview(ctx context.Context, sessionData string) (*responses.ScheduleOverview, error)
	UpdateSchedule(ctx context.Context, sessionData string, request *requests.UpdateScheduleRequest) (*responses.ScheduleOverview, error)
	CreateTimeBlock(ctx context.Context, sessionData string, request *requests.CreateTimeBlockRequest) (*responses.TimeBlock, error)
	DeleteTimeBlock(ctx context.Context, sessionData, blockID string) error
}

type SlotUsecase interface {
	AvailableSlots(ctx context.Context, doctorID string, date time.Time) (*responses.AvailableSlots, error)
	InvalidateSlotCache(ctx context.Context, doctorID string, date time.Time)
}

package schedules

import (
	"context"
	"database/sql"
	"mediport-service/internal/app/contracts"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/constvars"
	"mediport-service/internal/pkg/exceptions"
	"mediport-service/internal/pkg/queries"
	"sync"
	"time"

	"go.uber.org/zap"
)

type schedulePostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	scheduleRepositoryInstance contracts.ScheduleRepository
	onceScheduleRepository     sync.Once
)

func NewSchedulePostgresRepository(db *sql.DB, logger *zap.Logger) contracts.ScheduleRepository {
	onceScheduleRepository.Do(func() {
		instance := &schedulePostgresRepository{
			DB:  db,
			Log: logger,
		}
		scheduleRepositoryInstance = instance
	})
	return scheduleRepositoryInstance
}

func (r *schedulePostgresRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("schedulePostgresRepository.ListByDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	rows, err := r.DB.QueryContext(ctx, queries.ListSchedulesByDoctorQuery, doctorID)
	if err != nil {
		r.Log.Error("schedulePostgresRepository.ListByDoctor error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	defer rows.Close()

	schedules := make([]models.DoctorSchedule, 0)
	for rows.Next() {
		var schedule models.DoctorSchedule
		if err := scanSchedule(rows, &schedule); err != nil {
			r.Log.Error("schedulePostgresRepository.ListByDoctor error scanning row",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrPostgresDBSelectData(err)
		}
		schedules = append(schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	return schedules, nil
}

func (r *schedulePostgresRepository) FindByDoctorAndDay(ctx context.Context, doctorID, dayOfWeek string) (*models.DoctorSchedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("schedulePostgresRepository.FindByDoctorAndDay called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingScheduleDayKey, dayOfWeek),
	)

	row := r.DB.QueryRowContext(ctx, queries.FindScheduleByDoctorAndDayQuery, doctorID, dayOfWeek)

	var schedule models.DoctorSchedule
	if err := scanSchedule(row, &schedule); err != nil {
		if err == sql.ErrNoRows {
			r.Log.Warn("schedulePostgresRepository.FindByDoctorAndDay no schedule found",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDoctorIDKey, doctorID),
				zap.String(constvars.LoggingScheduleDayKey, dayOfWeek),
			)
			return nil, nil
		}
		r.Log.Error("schedulePostgresRepository.FindByDoctorAndDay error scanning row",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	return &schedule, nil
}

func (r *schedulePostgresRepository) UpsertSchedule(ctx context.Context, schedule *models.DoctorSchedule) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("schedulePostgresRepository.UpsertSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, schedule.DoctorID),
		zap.String(constvars.LoggingScheduleDayKey, schedule.DayOfWeek),
	)

	_, err := r.DB.ExecContext(ctx, queries.UpsertScheduleQuery,
		schedule.DoctorID,
		schedule.DayOfWeek,
		schedule.StartTime,
		schedule.EndTime,
		schedule.IsAvailable,
		schedule.MaxAppointments,
		schedule.SlotDuration,
	)
	if err != nil {
		r.Log.Error("schedulePostgresRepository.UpsertSchedule error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *schedulePostgresRepository) CreateTimeBlock(ctx context.Context, block *models.TimeBlock) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("schedulePostgresRepository.CreateTimeBlock called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, block.DoctorID),
	)

	var blockID string
	err := r.DB.QueryRowContext(ctx, queries.CreateTimeBlockQuery,
		block.DoctorID,
		block.StartAt,
		block.EndAt,
		block.Reason,
		block.IsRecurring,
	).Scan(&blockID)
	if err != nil {
		r.Log.Error("schedulePostgresRepository.CreateTimeBlock error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrPostgresDBInsertData(err)
	}
	return blockID, nil
}

func (r *schedulePostgresRepository) FindTimeBlockByID(ctx context.Context, blockID string) (*models.TimeBlock, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("schedulePostgresRepository.FindTimeBlockByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	row := r.DB.QueryRowContext(ctx, queries.FindTimeBlockByIDQuery, blockID)

	var block models.TimeBlock
	if err := scanTimeBlock(row, &block); err != nil {
		if err == sql.ErrNoRows {
			r.Log.Warn("schedulePostgresRepository.FindTimeBlockByID no time block found",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			return nil, nil
		}
		r.Log.Error("schedulePostgresRepository.FindTimeBlockByID error scanning row",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	return &block, nil
}

func (r *schedulePostgresRepository) ListTimeBlocks(ctx context.Context, doctorID string, from time.Time) ([]models.TimeBlock, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("schedulePostgresRepository.ListTimeBlocks called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	return r.listTimeBlocks(ctx, requestID, queries.ListTimeBlocksQuery, doctorID, from)
}

func (r *schedulePostgresRepository) ListTimeBlocksForDate(ctx context.Context, doctorID string, date time.Time) ([]models.TimeBlock, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("schedulePostgresRepository.ListTimeBlocksForDate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingSlotDateKey, date.Format(constvars.DateLayout)),
	)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	return r.listTimeBlocks(ctx, requestID, queries.ListTimeBlocksForDateQuery, doctorID, dayStart, dayEnd)
}

func (r *schedulePostgresRepository) listTimeBlocks(ctx context.Context, requestID, query string, args ...interface{}) ([]models.TimeBlock, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.Log.Error("schedulePostgresRepository.listTimeBlocks error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	defer rows.Close()

	blocks := make([]models.TimeBlock, 0)
	for rows.Next() {
		var block models.TimeBlock
		if err := scanTimeBlock(rows, &block); err != nil {
			r.Log.Error("schedulePostgresRepository.listTimeBlocks error scanning row",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrPostgresDBSelectData(err)
		}
		blocks = append(blocks, block)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	return blocks, nil
}

func (r *schedulePostgresRepository) DeleteTimeBlock(ctx context.Context, blockID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("schedulePostgresRepository.DeleteTimeBlock called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if _, err := r.DB.ExecContext(ctx, queries.DeleteTimeBlockQuery, blockID); err != nil {
		r.Log.Error("schedulePostgresRepository.DeleteTimeBlock error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSchedule(row rowScanner, schedule *models.DoctorSchedule) error {
	return row.Scan(
		&schedule.ID,
		&schedule.DoctorID,
		&schedule.DayOfWeek,
		&schedule.StartTime,
		&schedule.EndTime,
		&schedule.IsAvailable,
		&schedule.MaxAppointments,
		&schedule.SlotDuration,
	)
}

func scanTimeBlock(row rowScanner, block *models.TimeBlock) error {
	return row.Scan(
		&block.ID,
		&block.DoctorID,
		&block.StartAt,
		&block.EndAt,
		&block.Reason,
		&block.IsRecurring,
		&block.CreatedAt,
	)
}

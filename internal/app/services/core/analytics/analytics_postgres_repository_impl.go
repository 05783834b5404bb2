package analytics

import (
	"context"
	"database/sql"
	"mediport-service/internal/app/contracts"
	"mediport-service/internal/pkg/constvars"
	"mediport-service/internal/pkg/dto/responses"
	"mediport-service/internal/pkg/exceptions"
	"mediport-service/internal/pkg/queries"
	"sync"
	"time"

	"go.uber.org/zap"
)

type analyticsPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	analyticsRepositoryInstance contracts.AnalyticsRepository
	onceAnalyticsRepository     sync.Once
)

func NewAnalyticsPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.AnalyticsRepository {
	onceAnalyticsRepository.Do(func() {
		instance := &analyticsPostgresRepository{
			DB:  db,
			Log: logger,
		}
		analyticsRepositoryInstance = instance
	})
	return analyticsRepositoryInstance
}

func (r *analyticsPostgresRepository) CountAppointmentsByStatus(ctx context.Context, doctorID string, from, to time.Time) (map[string]int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("analyticsPostgresRepository.CountAppointmentsByStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	return r.countGrouped(ctx, requestID, queries.CountAppointmentsByStatusQuery, doctorID, from, to)
}

func (r *analyticsPostgresRepository) CountAppointmentsByPriority(ctx context.Context, doctorID string, from, to time.Time) (map[string]int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("analyticsPostgresRepository.CountAppointmentsByPriority called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	return r.countGrouped(ctx, requestID, queries.CountAppointmentsByPriorityQuery, doctorID, from, to)
}

func (r *analyticsPostgresRepository) countGrouped(ctx context.Context, requestID, query, doctorID string, from, to time.Time) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, query, from, to, doctorID)
	if err != nil {
		r.Log.Error("analyticsPostgresRepository.countGrouped error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			r.Log.Error("analyticsPostgresRepository.countGrouped error scanning row",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrPostgresDBSelectData(err)
		}
		counts[key] = count
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	return counts, nil
}

func (r *analyticsPostgresRepository) DailyTrends(ctx context.Context, doctorID string, from, to time.Time) ([]responses.DailyTrend, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("analyticsPostgresRepository.DailyTrends called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	rows, err := r.DB.QueryContext(ctx, queries.DailyTrendsQuery, from, to, doctorID)
	if err != nil {
		r.Log.Error("analyticsPostgresRepository.DailyTrends error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	defer rows.Close()

	trends := make([]responses.DailyTrend, 0)
	for rows.Next() {
		var date time.Time
		var trend responses.DailyTrend
		if err := rows.Scan(&date, &trend.Appointments, &trend.Completed, &trend.Cancelled); err != nil {
			r.Log.Error("analyticsPostgresRepository.DailyTrends error scanning row",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrPostgresDBSelectData(err)
		}
		trend.Date = date.Format(constvars.DateLayout)
		trends = append(trends, trend)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	return trends, nil
}

func (r *analyticsPostgresRepository) TopDoctors(ctx context.Context, from, to time.Time, limit int) ([]responses.TopDoctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("analyticsPostgresRepository.TopDoctors called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	rows, err := r.DB.QueryContext(ctx, queries.TopDoctorsQuery, from, to, limit)
	if err != nil {
		r.Log.Error("analyticsPostgresRepository.TopDoctors error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	defer rows.Close()

	doctors := make([]responses.TopDoctor, 0, limit)
	for rows.Next() {
		var doctor responses.TopDoctor
		if err := rows.Scan(&doctor.ID, &doctor.Name, &doctor.Specialization, &doctor.AppointmentCount, &doctor.AverageRating); err != nil {
			r.Log.Error("analyticsPostgresRepository.TopDoctors error scanning row",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrPostgresDBSelectData(err)
		}
		doctors = append(doctors, doctor)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	return doctors, nil
}

func (r *analyticsPostgresRepository) CountNewPatients(ctx context.Context, from, to time.Time) (int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("analyticsPostgresRepository.CountNewPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var count int
	if err := r.DB.QueryRowContext(ctx, queries.CountNewPatientsQuery, from, to).Scan(&count); err != nil {
		r.Log.Error("analyticsPostgresRepository.CountNewPatients error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return 0, exceptions.ErrPostgresDBSelectData(err)
	}
	return count, nil
}

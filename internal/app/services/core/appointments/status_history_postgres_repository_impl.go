package appointments

import (
	"context"
	"database/sql"
	"mediport-service/internal/app/contracts"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/constvars"
	"mediport-service/internal/pkg/exceptions"
	"mediport-service/internal/pkg/queries"
	"sync"

	"go.uber.org/zap"
)

type statusHistoryPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	statusHistoryPostgresRepositoryInstance contracts.StatusHistoryRepository
	onceStatusHistoryPostgresRepository     sync.Once
)

func NewStatusHistoryPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.StatusHistoryRepository {
	onceStatusHistoryPostgresRepository.Do(func() {
		instance := &statusHistoryPostgresRepository{
			DB:  db,
			Log: logger,
		}
		statusHistoryPostgresRepositoryInstance = instance
	})
	return statusHistoryPostgresRepositoryInstance
}

func (r *statusHistoryPostgresRepository) CreateStatusHistory(ctx context.Context, history *models.StatusHistory) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("statusHistoryPostgresRepository.CreateStatusHistory called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, history.AppointmentID),
	)

	var id string
	err := r.DB.QueryRowContext(ctx, queries.CreateStatusHistoryQuery,
		history.AppointmentID, history.OldStatus, history.NewStatus,
		history.ChangedBy, history.Reason,
	).Scan(&id)
	if err != nil {
		r.Log.Error("statusHistoryPostgresRepository.CreateStatusHistory error inserting history",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *statusHistoryPostgresRepository) ListByAppointment(ctx context.Context, appointmentID string) ([]models.StatusHistory, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("statusHistoryPostgresRepository.ListByAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	rows, err := r.DB.QueryContext(ctx, queries.ListStatusHistoryByAppointmentQuery, appointmentID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	defer rows.Close()

	var entries []models.StatusHistory
	for rows.Next() {
		var entry models.StatusHistory
		var oldStatus sql.NullString
		err := rows.Scan(
			&entry.ID, &entry.AppointmentID, &oldStatus, &entry.NewStatus,
			&entry.ChangedBy, &entry.ChangedByName, &entry.Reason, &entry.ChangedAt,
		)
		if err != nil {
			return nil, exceptions.ErrPostgresDBSelectData(err)
		}
		entry.OldStatus = oldStatus.String
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

package notifications

import (
	"context"
	"database/sql"
	"mediport-service/internal/app/contracts"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/constvars"
	"mediport-service/internal/pkg/dto/requests"
	"mediport-service/internal/pkg/exceptions"
	"mediport-service/internal/pkg/queries"
	"sync"

	"go.uber.org/zap"
)

type notificationPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	notificationRepositoryInstance contracts.NotificationRepository
	onceNotificationRepository     sync.Once
)

func NewNotificationPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.NotificationRepository {
	onceNotificationRepository.Do(func() {
		instance := &notificationPostgresRepository{
			DB:  db,
			Log: logger,
		}
		notificationRepositoryInstance = instance
	})
	return notificationRepositoryInstance
}

func (r *notificationPostgresRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("notificationPostgresRepository.CreateNotification called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, notification.UserID),
	)

	err := r.DB.QueryRowContext(ctx, queries.CreateNotificationQuery,
		notification.UserID,
		notification.AppointmentID,
		notification.Type,
		notification.Title,
		notification.Message,
	).Scan(&notification.ID)
	if err != nil {
		r.Log.Error("notificationPostgresRepository.CreateNotification error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *notificationPostgresRepository) ListByUser(ctx context.Context, userID string, params *requests.QueryParams) ([]models.Notification, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("notificationPostgresRepository.ListByUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	offset := (params.Page - 1) * params.PageSize
	rows, err := r.DB.QueryContext(ctx, queries.ListNotificationsByUserQuery, userID, params.PageSize, offset)
	if err != nil {
		r.Log.Error("notificationPostgresRepository.ListByUser error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, exceptions.ErrPostgresDBSelectData(err)
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0)
	for rows.Next() {
		var notification models.Notification
		err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.AppointmentID,
			&notification.Type,
			&notification.Title,
			&notification.Message,
			&notification.IsRead,
			&notification.CreatedAt,
		)
		if err != nil {
			r.Log.Error("notificationPostgresRepository.ListByUser error scanning row",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, 0, exceptions.ErrPostgresDBSelectData(err)
		}
		notifications = append(notifications, notification)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, exceptions.ErrPostgresDBSelectData(err)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, queries.CountNotificationsByUserQuery, userID).Scan(&total); err != nil {
		r.Log.Error("notificationPostgresRepository.ListByUser error counting rows",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, exceptions.ErrPostgresDBSelectData(err)
	}
	return notifications, total, nil
}

func (r *notificationPostgresRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("notificationPostgresRepository.CountUnread called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	var count int
	if err := r.DB.QueryRowContext(ctx, queries.CountUnreadNotificationsQuery, userID).Scan(&count); err != nil {
		r.Log.Error("notificationPostgresRepository.CountUnread error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return 0, exceptions.ErrPostgresDBSelectData(err)
	}
	return count, nil
}

func (r *notificationPostgresRepository) MarkRead(ctx context.Context, notificationID, userID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("notificationPostgresRepository.MarkRead called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	result, err := r.DB.ExecContext(ctx, queries.MarkNotificationReadQuery, notificationID, userID)
	if err != nil {
		r.Log.Error("notificationPostgresRepository.MarkRead error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	if affected == 0 {
		return exceptions.ErrNotificationNotFound(nil)
	}
	return nil
}

func (r *notificationPostgresRepository) MarkAllRead(ctx context.Context, userID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("notificationPostgresRepository.MarkAllRead called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	if _, err := r.DB.ExecContext(ctx, queries.MarkAllNotificationsReadQuery, userID); err != nil {
		r.Log.Error("notificationPostgresRepository.MarkAllRead error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

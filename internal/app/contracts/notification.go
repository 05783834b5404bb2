package contracts

import (
	"context"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/dto/requests"
	"mediport-service/internal/pkg/dto/responses"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID string, params *requests.QueryParams) ([]models.Notification, int, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, notificationID, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type NotificationUsecase interface {
	Notify(ctx context.Context, userID, notificationType, title, message, appointmentID string) error
	ListByUser(ctx context.Context, sessionData string, params *requests.QueryParams) (*responses.NotificationList, *responses.Pagination, error)
	MarkRead(ctx context.Context, sessionData, notificationID string) error
	MarkAllRead(ctx context.Context, sessionData string) error
}

package notifications

import (
	"context"
	"mediport-service/internal/app/contracts"
	"mediport-service/internal/app/models"
	"mediport-service/internal/app/services/shared/mailer"
	"mediport-service/internal/pkg/constvars"
	"mediport-service/internal/pkg/dto/requests"
	"mediport-service/internal/pkg/dto/responses"
	"mediport-service/internal/pkg/utils"
	"sync"

	"go.uber.org/zap"
)

type notificationUsecase struct {
	NotificationRepository contracts.NotificationRepository
	UserRepository         contracts.UserRepository
	SessionService         contracts.SessionService
	MailerService          mailer.MailerService
	Log                    *zap.Logger
}

var (
	notificationUsecaseInstance contracts.NotificationUsecase
	onceNotificationUsecase     sync.Once
)

func NewNotificationUsecase(
	notificationRepository contracts.NotificationRepository,
	userRepository contracts.UserRepository,
	sessionService contracts.SessionService,
	mailerService mailer.MailerService,
	logger *zap.Logger,
) contracts.NotificationUsecase {
	onceNotificationUsecase.Do(func() {
		instance := &notificationUsecase{
			NotificationRepository: notificationRepository,
			UserRepository:         userRepository,
			SessionService:         sessionService,
			MailerService:          mailerService,
			Log:                    logger,
		}
		notificationUsecaseInstance = instance
	})
	return notificationUsecaseInstance
}

// Notify writes an in-app notification for a user. It is called from other
// usecases, not from a controller, so there is no session check here.
func (uc *notificationUsecase) Notify(ctx context.Context, userID, notificationType, title, message, appointmentID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.Notify called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	notification := &models.Notification{
		UserID:        userID,
		AppointmentID: appointmentID,
		Type:          notificationType,
		Title:         title,
		Message:       message,
	}
	if err := uc.NotificationRepository.CreateNotification(ctx, notification); err != nil {
		return err
	}

	uc.fanOutEmail(ctx, requestID, userID, title, message)
	return nil
}

// fanOutEmail mirrors the notification to the user's mailbox when they
// opted in. Delivery trouble never fails the caller.
func (uc *notificationUsecase) fanOutEmail(ctx context.Context, requestID, userID, title, message string) {
	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		uc.Log.Error("notificationUsecase.fanOutEmail error loading user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, userID),
			zap.Error(err),
		)
		return
	}
	if user == nil || !user.EmailNotifications || !uc.MailerService.ValidateEmail(user.Email) {
		return
	}

	payload := &requests.EmailPayload{
		To:      user.Email,
		Subject: title,
		Body:    message,
	}
	if err := uc.MailerService.SendEmail(ctx, payload); err != nil {
		uc.Log.Error("notificationUsecase.fanOutEmail error queueing email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, userID),
			zap.Error(err),
		)
	}
}

func (uc *notificationUsecase) ListByUser(ctx context.Context, sessionData string, params *requests.QueryParams) (*responses.NotificationList, *responses.Pagination, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.ListByUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := uc.SessionService.ParseSession(sessionData)
	if err != nil {
		return nil, nil, err
	}

	notifications, total, err := uc.NotificationRepository.ListByUser(ctx, session.UserID, params)
	if err != nil {
		return nil, nil, err
	}
	unread, err := uc.NotificationRepository.CountUnread(ctx, session.UserID)
	if err != nil {
		return nil, nil, err
	}

	list := &responses.NotificationList{
		Notifications: make([]responses.Notification, 0, len(notifications)),
		UnreadCount:   unread,
	}
	for i := range notifications {
		n := &notifications[i]
		list.Notifications = append(list.Notifications, responses.Notification{
			ID:            n.ID,
			AppointmentID: n.AppointmentID,
			Type:          n.Type,
			Title:         n.Title,
			Message:       n.Message,
			IsRead:        n.IsRead,
			CreatedAt:     n.CreatedAt,
		})
	}
	pagination := utils.BuildPaginationResponse(total, params.Page, params.PageSize, "/notifications")
	return list, pagination, nil
}

func (uc *notificationUsecase) MarkRead(ctx context.Context, sessionData, notificationID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.MarkRead called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := uc.SessionService.ParseSession(sessionData)
	if err != nil {
		return err
	}
	return uc.NotificationRepository.MarkRead(ctx, notificationID, session.UserID)
}

func (uc *notificationUsecase) MarkAllRead(ctx context.Context, sessionData string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.MarkAllRead called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := uc.SessionService.ParseSession(sessionData)
	if err != nil {
		return err
	}
	return uc.NotificationRepository.MarkAllRead(ctx, session.UserID)
}

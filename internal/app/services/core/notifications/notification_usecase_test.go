package notifications

import (
	"context"
	"testing"

	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID string, params *requests.QueryParams) ([]models.Notification, int, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Notification), args.Int(1), args.Error(2)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, notificationID, userID string) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	args := m.Called(ctx, email, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) CreateSession(ctx context.Context, session *models.Session) (string, error) {
	args := m.Called(ctx, session)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) GetSession(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) ParseSession(sessionData string) (*models.Session, error) {
	args := m.Called(sessionData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionService) DestroySession(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type MockMailerService struct {
	mock.Mock
}

func (m *MockMailerService) SendEmail(ctx context.Context, request *requests.EmailPayload) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockMailerService) DeliverEmail(request *requests.EmailPayload) error {
	args := m.Called(request)
	return args.Error(0)
}

func (m *MockMailerService) ValidateEmail(email string) bool {
	args := m.Called(email)
	return args.Bool(0)
}

func newTestNotificationUsecase(
	notificationRepo *MockNotificationRepository,
	userRepo *MockUserRepository,
	sessionService *MockSessionService,
	mailerService *MockMailerService,
) *notificationUsecase {
	return &notificationUsecase{
		NotificationRepository: notificationRepo,
		UserRepository:         userRepo,
		SessionService:         sessionService,
		MailerService:          mailerService,
		Log:                    zap.NewNop(),
	}
}

func TestNotify_MirrorsToEmailWhenOptedIn(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	userRepo := new(MockUserRepository)
	sessionService := new(MockSessionService)
	mailerService := new(MockMailerService)
	uc := newTestNotificationUsecase(notificationRepo, userRepo, sessionService, mailerService)

	notificationRepo.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == "user-1" && n.AppointmentID == "apt-1"
	})).Return(nil)
	userRepo.On("FindByID", mock.Anything, "user-1").Return(&models.User{
		ID: "user-1", Email: "jane@example.com", EmailNotifications: true,
	}, nil)
	mailerService.On("ValidateEmail", "jane@example.com").Return(true)
	mailerService.On("SendEmail", mock.Anything, mock.MatchedBy(func(payload *requests.EmailPayload) bool {
		return payload.To == "jane@example.com" && payload.Subject == "Appointment approved"
	})).Return(nil)

	err := uc.Notify(context.Background(), "user-1", "status_change", "Appointment approved", "See you thursday", "apt-1")

	assert.NoError(t, err)
	mailerService.AssertExpectations(t)
}

func TestNotify_SkipsEmailWhenOptedOut(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	userRepo := new(MockUserRepository)
	sessionService := new(MockSessionService)
	mailerService := new(MockMailerService)
	uc := newTestNotificationUsecase(notificationRepo, userRepo, sessionService, mailerService)

	notificationRepo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("FindByID", mock.Anything, "user-1").Return(&models.User{
		ID: "user-1", Email: "jane@example.com", EmailNotifications: false,
	}, nil)

	err := uc.Notify(context.Background(), "user-1", "status_change", "Appointment approved", "See you thursday", "apt-1")

	assert.NoError(t, err)
	mailerService.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
}

func TestNotify_EmailFailureDoesNotFailTheNotification(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	userRepo := new(MockUserRepository)
	sessionService := new(MockSessionService)
	mailerService := new(MockMailerService)
	uc := newTestNotificationUsecase(notificationRepo, userRepo, sessionService, mailerService)

	notificationRepo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("FindByID", mock.Anything, "user-1").Return(&models.User{
		ID: "user-1", Email: "jane@example.com", EmailNotifications: true,
	}, nil)
	mailerService.On("ValidateEmail", "jane@example.com").Return(true)
	mailerService.On("SendEmail", mock.Anything, mock.Anything).Return(assert.AnError)

	err := uc.Notify(context.Background(), "user-1", "status_change", "Appointment approved", "See you thursday", "apt-1")

	assert.NoError(t, err, "queue trouble should stay invisible to the caller")
}

func TestMarkRead_ScopedToSessionUser(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	userRepo := new(MockUserRepository)
	sessionService := new(MockSessionService)
	mailerService := new(MockMailerService)
	uc := newTestNotificationUsecase(notificationRepo, userRepo, sessionService, mailerService)

	sessionService.On("ParseSession", "session-data").Return(&models.Session{UserID: "user-1", Role: "patient"}, nil)
	notificationRepo.On("MarkRead", mock.Anything, "notif-1", "user-1").Return(nil)

	err := uc.MarkRead(context.Background(), "session-data", "notif-1")

	assert.NoError(t, err)
	notificationRepo.AssertExpectations(t)
}

package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"mediport-service/internal/app/config"
	"mediport-service/internal/app/delivery/http/controllers"
	"mediport-service/internal/app/delivery/http/middlewares"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/dto/requests"
	"mediport-service/internal/pkg/dto/responses"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockAppointmentUsecase struct {
	mock.Mock
}

func (m *MockAppointmentUsecase) CreateAppointment(ctx context.Context, sessionData string, request *requests.CreateAppointmentRequest) (*responses.Appointment, error) {
	args := m.Called(ctx, sessionData, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Appointment), args.Error(1)
}

func (m *MockAppointmentUsecase) FindAll(ctx context.Context, sessionData string, params *requests.QueryParams) ([]responses.Appointment, *responses.Pagination, error) {
	args := m.Called(ctx, sessionData, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]responses.Appointment), args.Get(1).(*responses.Pagination), args.Error(2)
}

func (m *MockAppointmentUsecase) FindUpcoming(ctx context.Context, sessionData string, params *requests.QueryParams) ([]responses.Appointment, error) {
	args := m.Called(ctx, sessionData, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]responses.Appointment), args.Error(1)
}

func (m *MockAppointmentUsecase) FindByID(ctx context.Context, sessionData, appointmentID string) (*responses.AppointmentDetail, error) {
	args := m.Called(ctx, sessionData, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.AppointmentDetail), args.Error(1)
}

func (m *MockAppointmentUsecase) UpdateStatus(ctx context.Context, sessionData, appointmentID string, request *requests.UpdateAppointmentStatusRequest) (*responses.UpdateStatus, error) {
	args := m.Called(ctx, sessionData, appointmentID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.UpdateStatus), args.Error(1)
}

func (m *MockAppointmentUsecase) Reschedule(ctx context.Context, sessionData, appointmentID string, request *requests.RescheduleAppointmentRequest) (*responses.Appointment, error) {
	args := m.Called(ctx, sessionData, appointmentID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Appointment), args.Error(1)
}

func (m *MockAppointmentUsecase) BulkUpdateStatus(ctx context.Context, sessionData string, request *requests.BulkUpdateStatusRequest) (*responses.BulkUpdate, error) {
	args := m.Called(ctx, sessionData, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.BulkUpdate), args.Error(1)
}

func (m *MockAppointmentUsecase) Export(ctx context.Context, sessionData string, params *requests.QueryParams) ([]models.Appointment, error) {
	args := m.Called(ctx, sessionData, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentUsecase) CalendarEvents(ctx context.Context, sessionData string) ([]responses.CalendarEvent, error) {
	args := m.Called(ctx, sessionData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]responses.CalendarEvent), args.Error(1)
}

type MockReminderUsecase struct {
	mock.Mock
}

func (m *MockReminderUsecase) CreateReminder(ctx context.Context, sessionData, appointmentID string, request *requests.CreateReminderRequest) (*responses.Reminder, error) {
	args := m.Called(ctx, sessionData, appointmentID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Reminder), args.Error(1)
}

func (m *MockReminderUsecase) ScheduleDefaultReminders(ctx context.Context, appointment *models.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockReminderUsecase) CancelPendingByAppointment(ctx context.Context, appointmentID string) error {
	args := m.Called(ctx, appointmentID)
	return args.Error(0)
}

func (m *MockReminderUsecase) ListByAppointment(ctx context.Context, sessionData, appointmentID string) (*responses.AppointmentReminders, error) {
	args := m.Called(ctx, sessionData, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.AppointmentReminders), args.Error(1)
}

func (m *MockReminderUsecase) ListUpcoming(ctx context.Context, sessionData string) ([]responses.UpcomingReminder, error) {
	args := m.Called(ctx, sessionData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]responses.UpcomingReminder), args.Error(1)
}

func (m *MockReminderUsecase) DeleteReminder(ctx context.Context, sessionData, reminderID string) error {
	args := m.Called(ctx, sessionData, reminderID)
	return args.Error(0)
}

func (m *MockReminderUsecase) DispatchDue(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
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

func TestAppointmentRouter_AuthAndRoleGuards(t *testing.T) {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{}

	mockAppointmentUsecase := new(MockAppointmentUsecase)
	mockReminderUsecase := new(MockReminderUsecase)
	mockSessionService := new(MockSessionService)

	appointmentController := controllers.NewAppointmentController(logger, mockAppointmentUsecase)
	reminderController := controllers.NewReminderController(logger, mockReminderUsecase)

	middlewareInstance := &middlewares.Middlewares{
		SessionService: mockSessionService,
		InternalConfig: internalConfig,
		Log:            logger,
	}

	router := chi.NewRouter()
	attachAppointmentRoutes(router, middlewareInstance, appointmentController, reminderController)

	t.Run("List without Bearer Token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized without a bearer token")
		mockAppointmentUsecase.AssertNotCalled(t, "FindAll")
	})

	t.Run("List with Valid Token", func(t *testing.T) {
		mockSessionService.On("GetSession", mock.Anything, "valid-token").Return("session-json", nil)
		mockAppointmentUsecase.On("FindAll", mock.Anything, "session-json", mock.Anything).Return(
			[]responses.Appointment{{ID: "apt-1", Status: "pending", CreatedAt: time.Now()}},
			&responses.Pagination{Total: 1, Page: 1, PageSize: 10},
			nil,
		)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockAppointmentUsecase.AssertExpectations(t)
	})

	t.Run("Bulk Status as Patient", func(t *testing.T) {
		mockSessionService.On("GetSession", mock.Anything, "patient-token").Return("patient-session", nil)
		mockSessionService.On("ParseSession", "patient-session").Return(&models.Session{UserID: "patient-1", Role: "patient"}, nil)

		requestBody := requests.BulkUpdateStatusRequest{
			AppointmentIDs: []string{"6f1e0b55-8a5a-4f40-9c1e-0a2b3c4d5e6f"},
			Status:         "approved",
		}
		jsonBody, _ := json.Marshal(requestBody)

		req := httptest.NewRequest("POST", "/bulk-status", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer patient-token")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code, "should return 403 Forbidden for a patient role")
		mockAppointmentUsecase.AssertNotCalled(t, "BulkUpdateStatus")
	})

	t.Run("Bulk Status as Doctor", func(t *testing.T) {
		mockSessionService.On("GetSession", mock.Anything, "doctor-token").Return("doctor-session", nil)
		mockSessionService.On("ParseSession", "doctor-session").Return(&models.Session{UserID: "doc-user-1", Role: "doctor", DoctorID: "doc-1"}, nil)
		mockAppointmentUsecase.On("BulkUpdateStatus", mock.Anything, "doctor-session", mock.AnythingOfType("*requests.BulkUpdateStatusRequest")).Return(
			&responses.BulkUpdate{UpdatedCount: 1}, nil,
		)

		requestBody := requests.BulkUpdateStatusRequest{
			AppointmentIDs: []string{"6f1e0b55-8a5a-4f40-9c1e-0a2b3c4d5e6f"},
			Status:         "approved",
		}
		jsonBody, _ := json.Marshal(requestBody)

		req := httptest.NewRequest("POST", "/bulk-status", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer doctor-token")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockAppointmentUsecase.AssertExpectations(t)
	})
}

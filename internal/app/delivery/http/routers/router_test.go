package routers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"mediport-service/internal/app/config"
	"mediport-service/internal/app/delivery/http/controllers"
	"mediport-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSetupRoutes_CORSPreflightAllowsPatch(t *testing.T) {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			MaxRequests:    100,
			EndpointPrefix: "api",
			Version:        "v1",
		},
	}

	middlewareInstance := &middlewares.Middlewares{
		SessionService: new(MockSessionService),
		InternalConfig: internalConfig,
		Log:            logger,
	}

	router := chi.NewRouter()
	SetupRoutes(
		router,
		internalConfig,
		logger,
		middlewareInstance,
		controllers.NewAuthController(logger, nil),
		controllers.NewDoctorController(logger, nil, nil),
		controllers.NewAppointmentController(logger, nil),
		controllers.NewScheduleController(logger, nil),
		controllers.NewReviewController(logger, nil),
		controllers.NewReminderController(logger, nil),
		controllers.NewNotificationController(logger, nil),
		controllers.NewAnalyticsController(logger, nil),
	)

	preflight := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		req.Header.Set("Origin", "https://portal.example.com")
		req.Header.Set("Access-Control-Request-Method", method)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("Patch Status Preflight", func(t *testing.T) {
		rr := preflight("PATCH", "/api/v1/appointments/apt-1/status")
		assert.Equal(t, "PATCH", rr.Header().Get("Access-Control-Allow-Methods"),
			"a browser preflight for PATCH should be allowed")
	})

	t.Run("Patch Notification Read Preflight", func(t *testing.T) {
		rr := preflight("PATCH", "/api/v1/notifications/notif-1/read")
		assert.Equal(t, "PATCH", rr.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("Put Still Allowed", func(t *testing.T) {
		rr := preflight("PUT", "/api/v1/schedule")
		assert.Equal(t, "PUT", rr.Header().Get("Access-Control-Allow-Methods"))
	})
}

package main

import (
	"context"
	"log"
	"mediport-service/internal/app/config"
	"mediport-service/internal/app/delivery/http/controllers"
	"mediport-service/internal/app/delivery/http/middlewares"
	"mediport-service/internal/app/delivery/http/routers"
	"mediport-service/internal/app/drivers/database"
	"mediport-service/internal/app/drivers/logger"
	"mediport-service/internal/app/drivers/mailer"
	"mediport-service/internal/app/drivers/messaging"
	"mediport-service/internal/app/drivers/storage"
	"mediport-service/internal/app/services/core/analytics"
	"mediport-service/internal/app/services/core/appointments"
	"mediport-service/internal/app/services/core/auth"
	"mediport-service/internal/app/services/core/doctors"
	"mediport-service/internal/app/services/core/notifications"
	"mediport-service/internal/app/services/core/reminders"
	"mediport-service/internal/app/services/core/reviews"
	"mediport-service/internal/app/services/core/schedules"
	"mediport-service/internal/app/services/core/session"
	"mediport-service/internal/app/services/core/slots"
	"mediport-service/internal/app/services/core/users"
	"mediport-service/internal/app/services/shared/locker"
	sharedMailer "mediport-service/internal/app/services/shared/mailer"
	sharedRedis "mediport-service/internal/app/services/shared/redis"
	sharedStorage "mediport-service/internal/app/services/shared/storage"
	"mediport-service/internal/app/services/shared/tokenmanager"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	postgresDB := database.NewPostgresDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQConnection := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		Postgres:       postgresDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQConnection,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	bootstrapTheApp(bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	// Shutdown the server
	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error while closing resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapTheApp(bootstrap config.Bootstrap) {
	// Shared services
	redisRepository := sharedRedis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	sessionService := session.NewSessionService(redisRepository, bootstrap.InternalConfig.App.LoginSessionExpiredTimeInHours)
	tokenManager := tokenmanager.NewTokenManager(bootstrap.InternalConfig)

	minioClient := storage.NewMinio(bootstrap.DriverConfig)
	minioStorage := sharedStorage.NewMinioStorage(minioClient)

	smtpClient := mailer.NewSMTPClient(bootstrap.DriverConfig)
	mailerService, err := sharedMailer.NewMailerService(smtpClient, bootstrap.RabbitMQ, bootstrap.InternalConfig.RabbitMQ.MailerQueue)
	if err != nil {
		log.Fatalf("Error creating mailer service: %v", err)
	}

	// Middlewares
	appMiddlewares := middlewares.NewMiddlewares(sessionService, bootstrap.InternalConfig, bootstrap.Logger)

	// Repositories
	userRepository := users.NewUserPostgresRepository(bootstrap.Postgres, bootstrap.Logger)
	doctorRepository := doctors.NewDoctorPostgresRepository(bootstrap.Postgres, bootstrap.Logger)
	appointmentRepository := appointments.NewAppointmentPostgresRepository(bootstrap.Postgres, bootstrap.Logger)
	statusHistoryRepository := appointments.NewStatusHistoryPostgresRepository(bootstrap.Postgres, bootstrap.Logger)
	scheduleRepository := schedules.NewSchedulePostgresRepository(bootstrap.Postgres, bootstrap.Logger)
	reviewRepository := reviews.NewReviewPostgresRepository(bootstrap.Postgres, bootstrap.Logger)
	reminderRepository := reminders.NewReminderPostgresRepository(bootstrap.Postgres, bootstrap.Logger)
	notificationRepository := notifications.NewNotificationPostgresRepository(bootstrap.Postgres, bootstrap.Logger)
	analyticsRepository := analytics.NewAnalyticsPostgresRepository(bootstrap.Postgres, bootstrap.Logger)

	// Usecases
	notificationUsecase := notifications.NewNotificationUsecase(notificationRepository, userRepository, sessionService, mailerService, bootstrap.Logger)
	reminderUsecase := reminders.NewReminderUsecase(
		reminderRepository,
		appointmentRepository,
		sessionService,
		notificationUsecase,
		mailerService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	slotUsecase := slots.NewSlotUsecase(
		scheduleRepository,
		appointmentRepository,
		doctorRepository,
		redisRepository,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	authUsecase := auth.NewAuthUsecase(
		userRepository,
		doctorRepository,
		scheduleRepository,
		sessionService,
		mailerService,
		tokenManager,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	doctorUsecase := doctors.NewDoctorUsecase(
		doctorRepository,
		reviewRepository,
		appointmentRepository,
		sessionService,
		minioStorage,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentRepository,
		statusHistoryRepository,
		doctorRepository,
		scheduleRepository,
		sessionService,
		lockerService,
		slotUsecase,
		reminderUsecase,
		notificationUsecase,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	scheduleUsecase := schedules.NewScheduleUsecase(scheduleRepository, sessionService, bootstrap.InternalConfig, bootstrap.Logger)
	reviewUsecase := reviews.NewReviewUsecase(
		reviewRepository,
		appointmentRepository,
		doctorRepository,
		sessionService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	analyticsUsecase := analytics.NewAnalyticsUsecase(analyticsRepository, sessionService, bootstrap.InternalConfig, bootstrap.Logger)

	// Controllers
	authController := controllers.NewAuthController(bootstrap.Logger, authUsecase)
	doctorController := controllers.NewDoctorController(bootstrap.Logger, doctorUsecase, slotUsecase)
	appointmentController := controllers.NewAppointmentController(bootstrap.Logger, appointmentUsecase)
	scheduleController := controllers.NewScheduleController(bootstrap.Logger, scheduleUsecase)
	reviewController := controllers.NewReviewController(bootstrap.Logger, reviewUsecase)
	reminderController := controllers.NewReminderController(bootstrap.Logger, reminderUsecase)
	notificationController := controllers.NewNotificationController(bootstrap.Logger, notificationUsecase)
	analyticsController := controllers.NewAnalyticsController(bootstrap.Logger, analyticsUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		bootstrap.Logger,
		appMiddlewares,
		authController,
		doctorController,
		appointmentController,
		scheduleController,
		reviewController,
		reminderController,
		notificationController,
		analyticsController,
	)
}

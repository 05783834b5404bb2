package main

import (
	"context"
	"log"
	"mediport-service/internal/app/config"
	"mediport-service/internal/app/drivers/database"
	"mediport-service/internal/app/drivers/logger"
	"mediport-service/internal/app/drivers/mailer"
	"mediport-service/internal/app/drivers/messaging"
	"mediport-service/internal/app/services/core/appointments"
	"mediport-service/internal/app/services/core/notifications"
	"mediport-service/internal/app/services/core/reminders"
	"mediport-service/internal/app/services/core/session"
	"mediport-service/internal/app/services/core/users"
	"mediport-service/internal/app/services/shared/locker"
	sharedMailer "mediport-service/internal/app/services/shared/mailer"
	sharedRedis "mediport-service/internal/app/services/shared/redis"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// reminderd runs the scheduled reminder dispatcher and the mail queue
// consumer. Several instances may run at once; the leader lock makes sure
// only one of them dispatches per tick.
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

	redisRepository := sharedRedis.NewRedisRepository(redisClient)
	lockerService := locker.NewLockService(redisRepository, zapLogger)
	sessionService := session.NewSessionService(redisRepository, internalConfig.App.LoginSessionExpiredTimeInHours)

	smtpClient := mailer.NewSMTPClient(driverConfig)
	mailerService, err := sharedMailer.NewMailerService(smtpClient, rabbitMQConnection, internalConfig.RabbitMQ.MailerQueue)
	if err != nil {
		log.Fatalf("Error creating mailer service: %v", err)
	}

	appointmentRepository := appointments.NewAppointmentPostgresRepository(postgresDB, zapLogger)
	notificationRepository := notifications.NewNotificationPostgresRepository(postgresDB, zapLogger)
	reminderRepository := reminders.NewReminderPostgresRepository(postgresDB, zapLogger)
	userRepository := users.NewUserPostgresRepository(postgresDB, zapLogger)

	notificationUsecase := notifications.NewNotificationUsecase(notificationRepository, userRepository, sessionService, mailerService, zapLogger)
	reminderUsecase := reminders.NewReminderUsecase(
		reminderRepository,
		appointmentRepository,
		sessionService,
		notificationUsecase,
		mailerService,
		internalConfig,
		zapLogger,
	)

	consumer, err := sharedMailer.NewConsumer(
		rabbitMQConnection,
		smtpClient,
		mailerService,
		zapLogger,
		internalConfig.RabbitMQ.MailerQueue,
		internalConfig.RabbitMQ.MailerPrefetch,
	)
	if err != nil {
		log.Fatalf("Error creating mailer consumer: %v", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := consumer.Run(runCtx); err != nil {
			log.Fatalf("Mailer consumer stopped: %v", err)
		}
	}()

	worker := reminders.NewWorker(zapLogger, internalConfig, lockerService, reminderUsecase)
	worker.Start(runCtx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Stopping reminder dispatcher..")
	worker.Stop()
	cancel()

	bootstrap := config.Bootstrap{
		Postgres: postgresDB,
		Redis:    redisClient,
		RabbitMQ: rabbitMQConnection,
		Logger:   zapLogger,
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer shutdownCancel()

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error while closing resources: %v", err)
	}

	log.Println("Reminder daemon exiting")
}

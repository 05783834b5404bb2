package config

import (
	"mediport-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Postgres: Postgres{
			Host:     utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:     utils.GetEnvString("POSTGRES_PORT", "5432"),
			DbName:   utils.GetEnvString("POSTGRES_DB_NAME", "mediport"),
			Username: utils.GetEnvString("POSTGRES_USERNAME", "mediport"),
			Password: utils.GetEnvString("POSTGRES_PASSWORD", "mediport"),
			SSLMode:  utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		SMTP: SMTP{
			Host:        utils.GetEnvString("SMTP_HOST", "localhost"),
			Port:        utils.GetEnvInt("SMTP_PORT", 2525),
			Username:    utils.GetEnvString("SMTP_USERNAME", ""),
			Password:    utils.GetEnvString("SMTP_PASSWORD", ""),
			EmailSender: utils.GetEnvString("SMTP_EMAIL_SENDER", "no-reply@mediport.local"),
		},
		RabbitMQ: RabbitMQ{
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                            utils.GetEnvString("APP_ENV", "development"),
			Port:                           utils.GetEnvString("APP_PORT", ":8080"),
			Version:                        utils.GetEnvString("APP_VERSION", "v1"),
			Address:                        utils.GetEnvString("APP_ADDRESS", "localhost"),
			BaseUrl:                        utils.GetEnvString("APP_BASE_URL", "http://localhost:8080"),
			Timezone:                       utils.GetEnvString("APP_TIMEZONE", "UTC"),
			FrontendDomain:                 utils.GetEnvString("APP_FRONTEND_DOMAIN", "http://localhost:3000"),
			EndpointPrefix:                 utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			ActivationUrl:                  utils.GetEnvString("APP_ACTIVATION_URL", "http://localhost:3000/activate"),
			MaxRequests:                    utils.GetEnvInt("APP_MAX_REQUESTS", 100),
			ShutdownTimeoutInSeconds:       utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			MaxTimeRequestsPerSeconds:      utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte:     utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			LoginSessionExpiredTimeInHours: utils.GetEnvInt("APP_LOGIN_SESSION_EXPIRED_TIME_IN_HOURS", 24),
			BookingLockTTLInSeconds:        utils.GetEnvInt("APP_BOOKING_LOCK_TTL_IN_SECONDS", 10),
			SlotCacheTTLInSeconds:          utils.GetEnvInt("APP_SLOT_CACHE_TTL_IN_SECONDS", 60),
			ReviewAutoApprove:              utils.GetEnvBool("APP_REVIEW_AUTO_APPROVE", false),
		},
		JWT: AppJWT{
			Secret:                        utils.GetEnvString("JWT_SECRET", "changeme"),
			ActivationTokenExpTimeInHours: utils.GetEnvInt("JWT_ACTIVATION_TOKEN_EXP_TIME_IN_HOURS", 48),
		},
		Mailer: AppMailer{
			EmailSender: utils.GetEnvString("APP_MAILER_EMAIL_SENDER", "no-reply@mediport.local"),
		},
		Minio: AppMinio{
			ProfilePictureMaxUploadSizeInMB:     int64(utils.GetEnvInt("APP_MINIO_PROFILE_PICTURE_UPLOAD_MAX_SIZE_IN_MB", 2)),
			BucketName:                          utils.GetEnvString("APP_MINIO_BUCKET_NAME", "mediport"),
			PreSignedUrlObjectExpiryTimeInHours: utils.GetEnvInt("APP_MINIO_PRE_SIGNED_URL_OBJECT_EXPIRY_TIME_IN_HOURS", 24),
		},
		RabbitMQ: AppRabbitMQ{
			MailerQueue:    utils.GetEnvString("APP_RABBITMQ_MAILER_QUEUE", "mediport.mailer"),
			MailerPrefetch: utils.GetEnvInt("APP_RABBITMQ_MAILER_PREFETCH", 10),
		},
		Reminder: AppReminder{
			CronSpec:               utils.GetEnvString("APP_REMINDER_CRON_SPEC", "*/5 * * * *"),
			LeaderLockTTLInSeconds: utils.GetEnvInt("APP_REMINDER_LEADER_LOCK_TTL_IN_SECONDS", 90),
			BatchSize:              utils.GetEnvInt("APP_REMINDER_BATCH_SIZE", 100),
		},
	}
}

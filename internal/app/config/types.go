package config

type (
	DriverConfig struct {
		Postgres Postgres
		Redis    Redis
		Logger   Logger
		SMTP     SMTP
		RabbitMQ RabbitMQ
		Minio    Minio
	}

	Postgres struct {
		Host     string
		Port     string
		DbName   string
		Username string
		Password string
		SSLMode  string
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}

	SMTP struct {
		Host        string
		Port        int
		Username    string
		Password    string
		EmailSender string
	}

	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}

	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
)

type InternalConfig struct {
	App      App
	JWT      AppJWT
	Mailer   AppMailer
	Minio    AppMinio
	RabbitMQ AppRabbitMQ
	Reminder AppReminder
}

type App struct {
	Env                            string
	Port                           string
	Version                        string
	Address                        string
	BaseUrl                        string
	Timezone                       string
	FrontendDomain                 string
	EndpointPrefix                 string
	ActivationUrl                  string
	MaxRequests                    int
	ShutdownTimeoutInSeconds       int
	MaxTimeRequestsPerSeconds      int
	RequestBodyLimitInMegabyte     int
	LoginSessionExpiredTimeInHours int
	BookingLockTTLInSeconds        int
	SlotCacheTTLInSeconds          int
	ReviewAutoApprove              bool
}

type AppJWT struct {
	Secret                        string
	ActivationTokenExpTimeInHours int
}

type AppMailer struct {
	EmailSender string
}

type AppMinio struct {
	ProfilePictureMaxUploadSizeInMB     int64
	BucketName                          string
	PreSignedUrlObjectExpiryTimeInHours int
}

type AppRabbitMQ struct {
	MailerQueue    string
	MailerPrefetch int
}

type AppReminder struct {
	// CronSpec defines how often the dispatcher scans for due reminders.
	CronSpec string
	// LeaderLockTTLInSeconds bounds how long a crashed dispatcher keeps the lock.
	LeaderLockTTLInSeconds int
	// BatchSize caps the number of reminders dispatched per tick.
	BatchSize int
}

package auth

import (
	"context"
	"fmt"
	"mediport-service/internal/app/config"
	"mediport-service/internal/app/contracts"
	"mediport-service/internal/app/models"
	"mediport-service/internal/app/services/shared/mailer"
	"mediport-service/internal/app/services/shared/tokenmanager"
	"mediport-service/internal/pkg/constvars"
	"mediport-service/internal/pkg/dto/requests"
	"mediport-service/internal/pkg/dto/responses"
	"mediport-service/internal/pkg/exceptions"
	"mediport-service/internal/pkg/utils"
	"sync"

	"go.uber.org/zap"
)

type authUsecase struct {
	UserRepository     contracts.UserRepository
	DoctorRepository   contracts.DoctorRepository
	ScheduleRepository contracts.ScheduleRepository
	SessionService     contracts.SessionService
	MailerService      mailer.MailerService
	TokenManager       *tokenmanager.TokenManager
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger
}

var (
	authUsecaseInstance contracts.AuthUsecase
	onceAuthUsecase     sync.Once
)

func NewAuthUsecase(
	userRepository contracts.UserRepository,
	doctorRepository contracts.DoctorRepository,
	scheduleRepository contracts.ScheduleRepository,
	sessionService contracts.SessionService,
	mailerService mailer.MailerService,
	tokenManager *tokenmanager.TokenManager,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AuthUsecase {
	onceAuthUsecase.Do(func() {
		instance := &authUsecase{
			UserRepository:     userRepository,
			DoctorRepository:   doctorRepository,
			ScheduleRepository: scheduleRepository,
			SessionService:     sessionService,
			MailerService:      mailerService,
			TokenManager:       tokenManager,
			InternalConfig:     internalConfig,
			Log:                logger,
		}
		authUsecaseInstance = instance
	})
	return authUsecaseInstance
}

func (uc *authUsecase) RegisterPatient(ctx context.Context, request *requests.RegisterPatientRequest) (*responses.Register, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.RegisterPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	user := &models.User{
		Username:           request.Username,
		Email:              request.Email,
		Role:               constvars.RolePatient,
		Phone:              request.Phone,
		EmailNotifications: true,
		IsActive:           true,
	}

	userID, err := uc.registerUser(ctx, user, request.Password)
	if err != nil {
		return nil, err
	}

	return &responses.Register{UserID: userID}, nil
}

func (uc *authUsecase) RegisterDoctor(ctx context.Context, request *requests.RegisterDoctorRequest) (*responses.Register, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.RegisterDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if request.Password != request.PasswordConfirm {
		return nil, exceptions.ErrPasswordDoNotMatch(nil)
	}

	user := &models.User{
		Username:           request.Username,
		Email:              request.Email,
		Role:               constvars.RoleDoctor,
		Phone:              request.Phone,
		EmailNotifications: request.EmailNotifications,
		SMSNotifications:   request.SMSNotifications,
		IsActive:           true,
	}

	userID, err := uc.registerUser(ctx, user, request.Password)
	if err != nil {
		return nil, err
	}

	doctor := &models.Doctor{
		UserID:          userID,
		Name:            request.FullName,
		Specialization:  request.Specialization,
		Email:           request.Email,
		Phone:           request.Phone,
		IsActive:        false,
		ConsultationFee: request.ConsultationFee,
		ExperienceYears: request.ExperienceYears,
		Description:     request.Description,
		Affiliation:     request.Affiliation,
		LicenseNumber:   request.LicenseNumber,
	}
	doctorID, err := uc.DoctorRepository.CreateDoctor(ctx, doctor)
	if err != nil {
		uc.Log.Error("authUsecase.RegisterDoctor error creating doctor profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, userID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := uc.seedDefaultSchedule(ctx, doctorID); err != nil {
		// The doctor can still fill in the week by hand through the
		// schedule editor.
		uc.Log.Error("authUsecase.RegisterDoctor error seeding default schedule",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, userID),
			zap.Error(err),
		)
	}

	return &responses.Register{UserID: userID}, nil
}

// seedDefaultSchedule gives a freshly registered doctor a standard working
// week so the profile is bookable right after activation: weekdays
// 09:00-17:00, saturday 10:00-14:00, sunday closed.
func (uc *authUsecase) seedDefaultSchedule(ctx context.Context, doctorID string) error {
	for _, day := range models.DaysOfWeek {
		schedule := &models.DoctorSchedule{
			DoctorID:        doctorID,
			DayOfWeek:       day,
			StartTime:       "09:00",
			EndTime:         "17:00",
			IsAvailable:     true,
			MaxAppointments: 8,
			SlotDuration:    30,
		}
		switch day {
		case "saturday":
			schedule.StartTime = "10:00"
			schedule.EndTime = "14:00"
		case "sunday":
			schedule.IsAvailable = false
		}
		if err := uc.ScheduleRepository.UpsertSchedule(ctx, schedule); err != nil {
			return err
		}
	}
	return nil
}

func (uc *authUsecase) registerUser(ctx context.Context, user *models.User, plainPassword string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	existing, err := uc.UserRepository.FindByEmail(ctx, user.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", exceptions.ErrEmailAlreadyExist(nil)
	}

	existing, err = uc.UserRepository.FindByUsername(ctx, user.Username)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", exceptions.ErrUsernameAlreadyExist(nil)
	}

	hashedPassword, err := utils.HashPassword(plainPassword)
	if err != nil {
		return "", exceptions.ErrHashPassword(err)
	}
	user.Password = hashedPassword

	userID, err := uc.UserRepository.CreateUser(ctx, user)
	if err != nil {
		return "", err
	}

	if err := uc.sendActivationEmail(ctx, userID, user.Email); err != nil {
		// Registration stands even when the activation mail cannot be
		// queued; the user can request a resend.
		uc.Log.Error("authUsecase.registerUser error sending activation email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, userID),
			zap.Error(err),
		)
	}

	return userID, nil
}

func (uc *authUsecase) sendActivationEmail(ctx context.Context, userID, email string) error {
	token, err := uc.TokenManager.CreateActivationToken(userID)
	if err != nil {
		return err
	}

	activationLink := fmt.Sprintf("%s?token=%s", uc.InternalConfig.App.ActivationUrl, token)
	payload := &requests.EmailPayload{
		To:      email,
		Subject: constvars.EmailActivationSubject,
		Body: fmt.Sprintf(
			"Welcome to Mediport!\r\n\r\nPlease verify your email address by opening the link below:\r\n\r\n%s\r\n\r\nThe link expires in %d hours.",
			activationLink,
			uc.InternalConfig.JWT.ActivationTokenExpTimeInHours,
		),
	}
	return uc.MailerService.SendEmail(ctx, payload)
}

func (uc *authUsecase) ActivateAccount(ctx context.Context, token string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.ActivateAccount called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	userID, err := uc.TokenManager.ParseActivationToken(token)
	if err != nil {
		return err
	}

	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return exceptions.ErrActivationTokenInvalid(nil)
	}
	if user.EmailVerified {
		return nil
	}

	user.EmailVerified = true
	if err := uc.UserRepository.UpdateUser(ctx, user); err != nil {
		return err
	}

	if user.Role != constvars.RoleDoctor {
		return nil
	}
	doctor, err := uc.DoctorRepository.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if doctor == nil || doctor.IsActive {
		return nil
	}
	return uc.DoctorRepository.SetActive(ctx, doctor.ID, true)
}

func (uc *authUsecase) Login(ctx context.Context, request *requests.LoginRequest) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	user, err := uc.UserRepository.FindByEmailOrUsername(ctx, request.Username, request.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(request.Password, user.Password) {
		return nil, exceptions.ErrInvalidUsernameOrPassword(nil)
	}
	if !user.IsActive {
		return nil, exceptions.ErrPermissionDenied(nil)
	}
	if !user.EmailVerified {
		return nil, exceptions.ErrAccountNotActivated(nil)
	}

	session := &models.Session{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}

	if user.IsDoctor() {
		doctor, err := uc.DoctorRepository.FindByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if doctor != nil {
			session.DoctorID = doctor.ID
		}
	}

	token, err := uc.SessionService.CreateSession(ctx, session)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)
	return &responses.Login{
		Token:     token,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (uc *authUsecase) Logout(ctx context.Context, sessionData string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := uc.SessionService.ParseSession(sessionData)
	if err != nil {
		return err
	}
	return uc.SessionService.DestroySession(ctx, session.SessionID)
}

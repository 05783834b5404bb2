package doctors

import (
	"context"
	"mediport-service/internal/app/config"
	"mediport-service/internal/app/contracts"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/constvars"
	"mediport-service/internal/pkg/dto/requests"
	"mediport-service/internal/pkg/dto/responses"
	"mediport-service/internal/pkg/exceptions"
	"mediport-service/internal/pkg/utils"
	"mime/multipart"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

type doctorUsecase struct {
	DoctorRepository      contracts.DoctorRepository
	ReviewRepository      contracts.ReviewRepository
	AppointmentRepository contracts.AppointmentRepository
	SessionService        contracts.SessionService
	MinioStorage          contracts.Storage
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

var (
	doctorUsecaseInstance contracts.DoctorUsecase
	onceDoctorUsecase     sync.Once
)

func NewDoctorUsecase(
	doctorRepository contracts.DoctorRepository,
	reviewRepository contracts.ReviewRepository,
	appointmentRepository contracts.AppointmentRepository,
	sessionService contracts.SessionService,
	minioStorage contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.DoctorUsecase {
	onceDoctorUsecase.Do(func() {
		instance := &doctorUsecase{
			DoctorRepository:      doctorRepository,
			ReviewRepository:      reviewRepository,
			AppointmentRepository: appointmentRepository,
			SessionService:        sessionService,
			MinioStorage:          minioStorage,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
		doctorUsecaseInstance = instance
	})
	return doctorUsecaseInstance
}

func (uc *doctorUsecase) FindAll(ctx context.Context, params *requests.QueryParams) ([]responses.Doctor, *responses.Pagination, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctors, total, err := uc.DoctorRepository.FindAll(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	result := make([]responses.Doctor, 0, len(doctors))
	for i := range doctors {
		result = append(result, buildDoctorResponse(&doctors[i]))
	}

	pagination := utils.BuildPaginationResponse(total, params.Page, params.PageSize, "/doctors")
	return result, pagination, nil
}

func (uc *doctorUsecase) FindSpecializations(ctx context.Context) ([]string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.FindSpecializations called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return uc.DoctorRepository.ListSpecializations(ctx)
}

// FindByID builds the doctor detail page payload. sessionData may be empty
// for anonymous visitors, in which case the review eligibility fields stay
// at their zero values.
func (uc *doctorUsecase) FindByID(ctx context.Context, sessionData, doctorID string) (*responses.DoctorDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil || !doctor.IsActive {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	reviews, _, err := uc.ReviewRepository.ListByDoctor(ctx, doctorID, &requests.QueryParams{Page: 1, PageSize: 10})
	if err != nil {
		return nil, err
	}

	_, _, distribution, err := uc.ReviewRepository.RatingAggregates(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	detail := &responses.DoctorDetail{
		Doctor:             buildDoctorResponse(doctor),
		Reviews:            buildReviewResponses(reviews),
		RatingDistribution: distribution,
	}

	if sessionData != "" {
		session, err := uc.SessionService.ParseSession(sessionData)
		if err != nil {
			return nil, err
		}
		if session.IsPatient() {
			completedID, err := uc.AppointmentRepository.HasCompletedAppointment(ctx, session.UserID, doctorID)
			if err != nil {
				return nil, err
			}
			existing, err := uc.ReviewRepository.FindByDoctorAndUser(ctx, doctorID, session.UserID)
			if err != nil {
				return nil, err
			}
			detail.CanReview = completedID != "" && existing == nil
			if existing != nil {
				review := buildReviewResponse(existing)
				detail.UserReview = &review
			}
		}
	}

	return detail, nil
}

func (uc *doctorUsecase) UploadProfilePicture(ctx context.Context, sessionData, doctorID string, file multipart.File, header *multipart.FileHeader) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.UploadProfilePicture called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	session, err := uc.SessionService.ParseSession(sessionData)
	if err != nil {
		return err
	}
	if !session.IsAdmin() && session.DoctorID != doctorID {
		return exceptions.ErrPermissionDenied(nil)
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return exceptions.ErrDoctorNotFound(nil)
	}

	maxSize := uc.InternalConfig.Minio.ProfilePictureMaxUploadSizeInMB << 20
	if header.Size > maxSize {
		return exceptions.ErrCannotParseMultipartForm(nil)
	}

	header.Filename = utils.GenerateFileName("doctor", doctorID, filepath.Ext(header.Filename))
	objectName, err := uc.MinioStorage.UploadFile(ctx, file, header, uc.InternalConfig.Minio.BucketName)
	if err != nil {
		return err
	}

	return uc.DoctorRepository.SetProfilePicture(ctx, doctorID, objectName)
}

func (uc *doctorUsecase) ProfilePictureURL(ctx context.Context, doctorID string) (*responses.ProfilePicture, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.ProfilePictureURL called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil || doctor.ProfilePictureName == "" {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	expiry := time.Duration(uc.InternalConfig.Minio.PreSignedUrlObjectExpiryTimeInHours) * time.Hour
	url, err := uc.MinioStorage.GetObjectUrlWithExpiryTime(ctx, uc.InternalConfig.Minio.BucketName, doctor.ProfilePictureName, expiry)
	if err != nil {
		return nil, err
	}
	return &responses.ProfilePicture{URL: url}, nil
}

func buildDoctorResponse(doctor *models.Doctor) responses.Doctor {
	return responses.Doctor{
		ID:              doctor.ID,
		Name:            doctor.Name,
		Specialization:  doctor.Specialization,
		Email:           doctor.Email,
		Phone:           doctor.Phone,
		ConsultationFee: doctor.ConsultationFee,
		ExperienceYears: doctor.ExperienceYears,
		Description:     doctor.Description,
		Affiliation:     doctor.Affiliation,
		AverageRating:   doctor.AverageRating,
		TotalReviews:    doctor.TotalReviews,
	}
}

func buildReviewResponse(review *models.Review) responses.Review {
	return responses.Review{
		ID:              review.ID,
		DoctorID:        review.DoctorID,
		DoctorName:      review.DoctorName,
		PatientName:     review.PatientName,
		Rating:          review.Rating,
		Title:           review.Title,
		Comment:         review.Comment,
		IsApproved:      review.IsApproved,
		IsFeatured:      review.IsFeatured,
		HelpfulCount:    review.HelpfulCount,
		NotHelpfulCount: review.NotHelpfulCount,
		CreatedAt:       review.CreatedAt,
	}
}

func buildReviewResponses(reviews []models.Review) []responses.Review {
	result := make([]responses.Review, 0, len(reviews))
	for i := range reviews {
		result = append(result, buildReviewResponse(&reviews[i]))
	}
	return result
}

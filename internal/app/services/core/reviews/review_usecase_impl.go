package reviews

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
	"sync"

	"go.uber.org/zap"
)

type reviewUsecase struct {
	ReviewRepository      contracts.ReviewRepository
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	SessionService        contracts.SessionService
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

var (
	reviewUsecaseInstance contracts.ReviewUsecase
	onceReviewUsecase     sync.Once
)

func NewReviewUsecase(
	reviewRepository contracts.ReviewRepository,
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	sessionService contracts.SessionService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ReviewUsecase {
	onceReviewUsecase.Do(func() {
		instance := &reviewUsecase{
			ReviewRepository:      reviewRepository,
			AppointmentRepository: appointmentRepository,
			DoctorRepository:      doctorRepository,
			SessionService:        sessionService,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
		reviewUsecaseInstance = instance
	})
	return reviewUsecaseInstance
}

func (uc *reviewUsecase) CreateReview(ctx context.Context, sessionData, doctorID string, request *requests.CreateReviewRequest) (*responses.Review, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reviewUsecase.CreateReview called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	session, err := uc.SessionService.ParseSession(sessionData)
	if err != nil {
		return nil, err
	}
	if !session.IsPatient() {
		return nil, exceptions.ErrPatientsOnly(nil)
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil || !doctor.IsActive {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	// Only patients who actually saw the doctor may review them.
	completedID, err := uc.AppointmentRepository.HasCompletedAppointment(ctx, session.UserID, doctorID)
	if err != nil {
		return nil, err
	}
	if completedID == "" {
		return nil, exceptions.ErrReviewNeedsCompletedAppointment(nil)
	}

	existing, err := uc.ReviewRepository.FindByDoctorAndUser(ctx, doctorID, session.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrAlreadyReviewed(nil)
	}

	review := &models.Review{
		DoctorID:      doctorID,
		PatientID:     session.UserID,
		AppointmentID: completedID,
		Rating:        request.Rating,
		Title:         request.Title,
		Comment:       request.Comment,
		IsApproved:    uc.InternalConfig.App.ReviewAutoApprove,
	}
	reviewID, err := uc.ReviewRepository.CreateReview(ctx, review)
	if err != nil {
		return nil, err
	}
	review.ID = reviewID
	review.PatientName = session.Username
	review.DoctorName = doctor.Name
	review.SetCreatedAtUpdatedAt()

	uc.refreshAggregates(ctx, doctorID)

	uc.Log.Info("reviewUsecase.CreateReview succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReviewIDKey, reviewID),
	)
	return buildReviewResponsePtr(review), nil
}

func (uc *reviewUsecase) ListByDoctor(ctx context.Context, sessionData, doctorID string, params *requests.QueryParams) ([]responses.Review, *responses.Pagination, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reviewUsecase.ListByDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, nil, err
	}
	if doctor == nil || !doctor.IsActive {
		return nil, nil, exceptions.ErrDoctorNotFound(nil)
	}

	reviews, total, err := uc.ReviewRepository.ListByDoctor(ctx, doctorID, params)
	if err != nil {
		return nil, nil, err
	}

	result := make([]responses.Review, 0, len(reviews))
	for i := range reviews {
		result = append(result, buildReviewResponse(&reviews[i]))
	}
	pagination := utils.BuildPaginationResponse(total, params.Page, params.PageSize, "/doctors/"+doctorID+"/reviews")
	return result, pagination, nil
}

// ListMine returns the caller's own reviews, including ones still
// waiting for moderation.
func (uc *reviewUsecase) ListMine(ctx context.Context, sessionData string) ([]responses.Review, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reviewUsecase.ListMine called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := uc.SessionService.ParseSession(sessionData)
	if err != nil {
		return nil, err
	}
	if !session.IsPatient() {
		return nil, exceptions.ErrPatientsOnly(nil)
	}

	reviews, err := uc.ReviewRepository.ListByPatient(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	result := make([]responses.Review, 0, len(reviews))
	for i := range reviews {
		result = append(result, buildReviewResponse(&reviews[i]))
	}
	return result, nil
}

func (uc *reviewUsecase) UpdateReview(ctx context.Context, sessionData, reviewID string, request *requests.UpdateReviewRequest) (*responses.Review, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reviewUsecase.UpdateReview called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReviewIDKey, reviewID),
	)

	session, err := uc.SessionService.ParseSession(sessionData)
	if err != nil {
		return nil, err
	}

	review, err := uc.findOwned(ctx, session, reviewID)
	if err != nil {
		return nil, err
	}

	review.Rating = request.Rating
	review.Title = request.Title
	review.Comment = request.Comment
	// An edited review goes back through moderation unless auto
	// approval is on.
	review.IsApproved = uc.InternalConfig.App.ReviewAutoApprove
	if err := uc.ReviewRepository.UpdateReview(ctx, review); err != nil {
		return nil, err
	}

	uc.refreshAggregates(ctx, review.DoctorID)
	return buildReviewResponsePtr(review), nil
}

func (uc *reviewUsecase) DeleteReview(ctx context.Context, sessionData, reviewID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reviewUsecase.DeleteReview called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReviewIDKey, reviewID),
	)

	session, err := uc.SessionService.ParseSession(sessionData)
	if err != nil {
		return err
	}

	review, err := uc.findOwned(ctx, session, reviewID)
	if err != nil {
		return err
	}

	if err := uc.ReviewRepository.DeleteReview(ctx, reviewID); err != nil {
		return err
	}

	uc.refreshAggregates(ctx, review.DoctorID)
	return nil
}

func (uc *reviewUsecase) ModerateReview(ctx context.Context, sessionData, reviewID string, request *requests.ModerateReviewRequest) (*responses.Review, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reviewUsecase.ModerateReview called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReviewIDKey, reviewID),
	)

	session, err := uc.SessionService.ParseSession(sessionData)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin() {
		return nil, exceptions.ErrPermissionDenied(nil)
	}

	review, err := uc.ReviewRepository.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, exceptions.ErrReviewNotFound(nil)
	}

	review.IsApproved = request.IsApproved
	review.IsFeatured = request.IsFeatured
	if err := uc.ReviewRepository.UpdateReview(ctx, review); err != nil {
		return nil, err
	}

	uc.refreshAggregates(ctx, review.DoctorID)
	return buildReviewResponsePtr(review), nil
}

func (uc *reviewUsecase) VoteReview(ctx context.Context, sessionData, reviewID string, request *requests.VoteReviewRequest) (*responses.Review, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reviewUsecase.VoteReview called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReviewIDKey, reviewID),
	)

	if _, err := uc.SessionService.ParseSession(sessionData); err != nil {
		return nil, err
	}

	review, err := uc.ReviewRepository.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil || !review.IsApproved {
		return nil, exceptions.ErrReviewNotFound(nil)
	}

	helpful := request.Vote == "helpful"
	if err := uc.ReviewRepository.IncrementVote(ctx, reviewID, helpful); err != nil {
		return nil, err
	}
	if helpful {
		review.HelpfulCount++
	} else {
		review.NotHelpfulCount++
	}
	return buildReviewResponsePtr(review), nil
}

func (uc *reviewUsecase) findOwned(ctx context.Context, session *models.Session, reviewID string) (*models.Review, error) {
	review, err := uc.ReviewRepository.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, exceptions.ErrReviewNotFound(nil)
	}
	if !session.IsAdmin() && review.PatientID != session.UserID {
		return nil, exceptions.ErrReviewNotFound(nil)
	}
	return review, nil
}

// refreshAggregates recomputes the denormalized rating columns on the
// doctor row. A failure here leaves the aggregates stale until the next
// review event, so it is logged and swallowed.
func (uc *reviewUsecase) refreshAggregates(ctx context.Context, doctorID string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if err := uc.DoctorRepository.UpdateRatingAggregates(ctx, doctorID); err != nil {
		uc.Log.Error("reviewUsecase.refreshAggregates error updating doctor aggregates",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
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

func buildReviewResponsePtr(review *models.Review) *responses.Review {
	response := buildReviewResponse(review)
	return &response
}

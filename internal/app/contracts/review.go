package contracts

import (
	"context"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/dto/requests"
	"mediport-service/internal/pkg/dto/responses"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) (string, error)
	FindByID(ctx context.Context, reviewID string) (*models.Review, error)
	FindByDoctorAndUser(ctx context.Context, doctorID, userID string) (*models.Review, error)
	ListByDoctor(ctx context.Context, doctorID string, params *requests.QueryParams) ([]models.Review, int, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Review, error)
	UpdateReview(ctx context.Context, review *models.Review) error
	DeleteReview(ctx context.Context, reviewID string) error
	IncrementVote(ctx context.Context, reviewID string, helpful bool) error
	RatingAggregates(ctx context.Context, doctorID string) (float64, int, map[int]int, error)
}

type ReviewUsecase interface {
	CreateReview(ctx context.Context, sessionData, doctorID string, request *requests.CreateReviewRequest) (*responses.Review, error)
	ListByDoctor(ctx context.Context, sessionData, doctorID string, params *requests.QueryParams) ([]responses.Review, *responses.Pagination, error)
	ListMine(ctx context.Context, sessionData string) ([]responses.Review, error)
	UpdateReview(ctx context.Context, sessionData, reviewID string, request *requests.UpdateReviewRequest) (*responses.Review, error)
	DeleteReview(ctx context.Context, sessionData, reviewID string) error
	ModerateReview(ctx context.Context, sessionData, reviewID string, request *requests.ModerateReviewRequest) (*responses.Review, error)
	VoteReview(ctx context.Context, sessionData, reviewID string, request *requests.VoteReviewRequest) (*responses.Review, error)
}

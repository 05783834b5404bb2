package contracts

import (
	"context"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/dto/requests"
	"mediport-service/internal/pkg/dto/responses"
	"mime/multipart"
)

type DoctorRepository interface {
	CreateDoctor(ctx context.Context, doctor *models.Doctor) (string, error)
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	FindByUserID(ctx context.Context, userID string) (*models.Doctor, error)
	FindAll(ctx context.Context, params *requests.QueryParams) ([]models.Doctor, int, error)
	ListSpecializations(ctx context.Context) ([]string, error)
	UpdateDoctor(ctx context.Context, doctor *models.Doctor) error
	UpdateRatingAggregates(ctx context.Context, doctorID string) error
	SetActive(ctx context.Context, doctorID string, active bool) error
	SetProfilePicture(ctx context.Context, doctorID, objectName string) error
}

type DoctorUsecase interface {
	FindAll(ctx context.Context, params *requests.QueryParams) ([]responses.Doctor, *responses.Pagination, error)
	FindSpecializations(ctx context.Context) ([]string, error)
	FindByID(ctx context.Context, sessionData, doctorID string) (*responses.DoctorDetail, error)
	UploadProfilePicture(ctx context.Context, sessionData, doctorID string, file multipart.File, header *multipart.FileHeader) error
	ProfilePictureURL(ctx context.Context, doctorID string) (*responses.ProfilePicture, error)
}

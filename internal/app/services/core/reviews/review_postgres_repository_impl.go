package reviews

import (
	"context"
	"database/sql"
	"mediport-service/internal/app/contracts"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/constvars"
	"mediport-service/internal/pkg/dto/requests"
	"mediport-service/internal/pkg/exceptions"
	"mediport-service/internal/pkg/queries"
	"sync"

	"go.uber.org/zap"
)

type reviewPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	reviewRepositoryInstance contracts.ReviewRepository
	onceReviewRepository     sync.Once
)

func NewReviewPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.ReviewRepository {
	onceReviewRepository.Do(func() {
		instance := &reviewPostgresRepository{
			DB:  db,
			Log: logger,
		}
		reviewRepositoryInstance = instance
	})
	return reviewRepositoryInstance
}

func (r *reviewPostgresRepository) CreateReview(ctx context.Context, review *models.Review) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("reviewPostgresRepository.CreateReview called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, review.DoctorID),
	)

	var reviewID string
	err := r.DB.QueryRowContext(ctx, queries.CreateReviewQuery,
		review.DoctorID,
		review.PatientID,
		review.AppointmentID,
		review.Rating,
		review.Title,
		review.Comment,
		review.IsApproved,
	).Scan(&reviewID)
	if err != nil {
		r.Log.Error("reviewPostgresRepository.CreateReview error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrPostgresDBInsertData(err)
	}
	return reviewID, nil
}

func (r *reviewPostgresRepository) FindByID(ctx context.Context, reviewID string) (*models.Review, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("reviewPostgresRepository.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReviewIDKey, reviewID),
	)

	return r.findOne(ctx, requestID, queries.FindReviewByIDQuery, reviewID)
}

func (r *reviewPostgresRepository) FindByDoctorAndUser(ctx context.Context, doctorID, userID string) (*models.Review, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("reviewPostgresRepository.FindByDoctorAndUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	return r.findOne(ctx, requestID, queries.FindReviewByDoctorAndUserQuery, doctorID, userID)
}

func (r *reviewPostgresRepository) findOne(ctx context.Context, requestID, query string, args ...interface{}) (*models.Review, error) {
	row := r.DB.QueryRowContext(ctx, query, args...)

	var review models.Review
	if err := scanReview(row, &review); err != nil {
		if err == sql.ErrNoRows {
			r.Log.Warn("reviewPostgresRepository.findOne no review found",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			return nil, nil
		}
		r.Log.Error("reviewPostgresRepository.findOne error scanning row",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	return &review, nil
}

func (r *reviewPostgresRepository) ListByDoctor(ctx context.Context, doctorID string, params *requests.QueryParams) ([]models.Review, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("reviewPostgresRepository.ListByDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	offset := (params.Page - 1) * params.PageSize
	rows, err := r.DB.QueryContext(ctx, queries.ListReviewsByDoctorQuery, doctorID, params.PageSize, offset)
	if err != nil {
		r.Log.Error("reviewPostgresRepository.ListByDoctor error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, exceptions.ErrPostgresDBSelectData(err)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0)
	for rows.Next() {
		var review models.Review
		if err := scanReview(rows, &review); err != nil {
			r.Log.Error("reviewPostgresRepository.ListByDoctor error scanning row",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, 0, exceptions.ErrPostgresDBSelectData(err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, exceptions.ErrPostgresDBSelectData(err)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, queries.CountReviewsByDoctorQuery, doctorID).Scan(&total); err != nil {
		r.Log.Error("reviewPostgresRepository.ListByDoctor error counting rows",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, exceptions.ErrPostgresDBSelectData(err)
	}
	return reviews, total, nil
}

func (r *reviewPostgresRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Review, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("reviewPostgresRepository.ListByPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, patientID),
	)

	rows, err := r.DB.QueryContext(ctx, queries.ListReviewsByPatientQuery, patientID)
	if err != nil {
		r.Log.Error("reviewPostgresRepository.ListByPatient error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0)
	for rows.Next() {
		var review models.Review
		if err := scanReview(rows, &review); err != nil {
			r.Log.Error("reviewPostgresRepository.ListByPatient error scanning row",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrPostgresDBSelectData(err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	return reviews, nil
}

func (r *reviewPostgresRepository) UpdateReview(ctx context.Context, review *models.Review) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("reviewPostgresRepository.UpdateReview called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReviewIDKey, review.ID),
	)

	_, err := r.DB.ExecContext(ctx, queries.UpdateReviewQuery,
		review.Rating,
		review.Title,
		review.Comment,
		review.IsApproved,
		review.IsFeatured,
		review.ID,
	)
	if err != nil {
		r.Log.Error("reviewPostgresRepository.UpdateReview error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *reviewPostgresRepository) DeleteReview(ctx context.Context, reviewID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("reviewPostgresRepository.DeleteReview called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReviewIDKey, reviewID),
	)

	if _, err := r.DB.ExecContext(ctx, queries.DeleteReviewQuery, reviewID); err != nil {
		r.Log.Error("reviewPostgresRepository.DeleteReview error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	return nil
}

func (r *reviewPostgresRepository) IncrementVote(ctx context.Context, reviewID string, helpful bool) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("reviewPostgresRepository.IncrementVote called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReviewIDKey, reviewID),
	)

	query := queries.IncrementReviewNotHelpfulQuery
	if helpful {
		query = queries.IncrementReviewHelpfulQuery
	}
	if _, err := r.DB.ExecContext(ctx, query, reviewID); err != nil {
		r.Log.Error("reviewPostgresRepository.IncrementVote error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *reviewPostgresRepository) RatingAggregates(ctx context.Context, doctorID string) (float64, int, map[int]int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("reviewPostgresRepository.RatingAggregates called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	var average float64
	var total int
	if err := r.DB.QueryRowContext(ctx, queries.RatingAggregatesQuery, doctorID).Scan(&average, &total); err != nil {
		r.Log.Error("reviewPostgresRepository.RatingAggregates error scanning aggregates",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return 0, 0, nil, exceptions.ErrPostgresDBSelectData(err)
	}

	distribution := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	rows, err := r.DB.QueryContext(ctx, queries.RatingDistributionQuery, doctorID)
	if err != nil {
		r.Log.Error("reviewPostgresRepository.RatingAggregates error querying distribution",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return 0, 0, nil, exceptions.ErrPostgresDBSelectData(err)
	}
	defer rows.Close()

	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return 0, 0, nil, exceptions.ErrPostgresDBSelectData(err)
		}
		distribution[rating] = count
	}
	if err := rows.Err(); err != nil {
		return 0, 0, nil, exceptions.ErrPostgresDBSelectData(err)
	}
	return average, total, distribution, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReview(row rowScanner, review *models.Review) error {
	var appointmentID sql.NullString
	err := row.Scan(
		&review.ID,
		&review.DoctorID,
		&review.PatientID,
		&appointmentID,
		&review.Rating,
		&review.Title,
		&review.Comment,
		&review.IsApproved,
		&review.IsFeatured,
		&review.HelpfulCount,
		&review.NotHelpfulCount,
		&review.CreatedAt,
		&review.UpdatedAt,
		&review.PatientName,
		&review.DoctorName,
	)
	if err != nil {
		return err
	}
	review.AppointmentID = appointmentID.String
	return nil
}

package doctors

import (
	"context"
	"database/sql"
	"fmt"
	"mediport-service/internal/app/contracts"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/constvars"
	"mediport-service/internal/pkg/dto/requests"
	"mediport-service/internal/pkg/exceptions"
	"mediport-service/internal/pkg/queries"
	"sync"

	"go.uber.org/zap"
)

type doctorPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	doctorPostgresRepositoryInstance contracts.DoctorRepository
	onceDoctorPostgresRepository     sync.Once
)

func NewDoctorPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.DoctorRepository {
	onceDoctorPostgresRepository.Do(func() {
		instance := &doctorPostgresRepository{
			DB:  db,
			Log: logger,
		}
		doctorPostgresRepositoryInstance = instance
	})
	return doctorPostgresRepositoryInstance
}

func (r *doctorPostgresRepository) CreateDoctor(ctx context.Context, doctor *models.Doctor) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("doctorPostgresRepository.CreateDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var id string
	err := r.DB.QueryRowContext(ctx, queries.CreateDoctorQuery,
		doctor.UserID, doctor.Name, doctor.Specialization, doctor.Email,
		doctor.Phone, doctor.IsActive, doctor.ConsultationFee,
		doctor.ExperienceYears, doctor.Description, doctor.Affiliation,
		doctor.LicenseNumber,
	).Scan(&id)
	if err != nil {
		r.Log.Error("doctorPostgresRepository.CreateDoctor error inserting doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrPostgresDBInsertData(err)
	}

	r.Log.Info("doctorPostgresRepository.CreateDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, id),
	)
	return id, nil
}

func (r *doctorPostgresRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("doctorPostgresRepository.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)
	return r.findOne(ctx, "id", doctorID)
}

func (r *doctorPostgresRepository) FindByUserID(ctx context.Context, userID string) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("doctorPostgresRepository.FindByUserID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)
	return r.findOne(ctx, "user_id", userID)
}

func (r *doctorPostgresRepository) FindAll(ctx context.Context, params *requests.QueryParams) ([]models.Doctor, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("doctorPostgresRepository.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	offset := (params.Page - 1) * params.PageSize
	rows, err := r.DB.QueryContext(ctx, queries.FindDoctorsQuery,
		params.Search, params.Specialization, params.PageSize, offset,
	)
	if err != nil {
		r.Log.Error("doctorPostgresRepository.FindAll error querying doctors",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, exceptions.ErrPostgresDBSelectData(err)
	}
	defer rows.Close()

	var doctors []models.Doctor
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, exceptions.ErrPostgresDBSelectData(err)
		}
		doctors = append(doctors, *doctor)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, exceptions.ErrPostgresDBSelectData(err)
	}

	var total int
	err = r.DB.QueryRowContext(ctx, queries.CountDoctorsQuery,
		params.Search, params.Specialization,
	).Scan(&total)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBSelectData(err)
	}

	return doctors, total, nil
}

func (r *doctorPostgresRepository) ListSpecializations(ctx context.Context) ([]string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("doctorPostgresRepository.ListSpecializations called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	rows, err := r.DB.QueryContext(ctx, queries.ListSpecializationsQuery)
	if err != nil {
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	defer rows.Close()

	var specializations []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, exceptions.ErrPostgresDBSelectData(err)
		}
		specializations = append(specializations, s)
	}
	return specializations, rows.Err()
}

func (r *doctorPostgresRepository) UpdateDoctor(ctx context.Context, doctor *models.Doctor) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("doctorPostgresRepository.UpdateDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
	)
	_, err := r.DB.ExecContext(ctx, queries.UpdateDoctorQuery,
		doctor.Name, doctor.Specialization, doctor.Email, doctor.Phone,
		doctor.ConsultationFee, doctor.ExperienceYears, doctor.Description,
		doctor.Affiliation, doctor.LicenseNumber, doctor.ID,
	)
	if err != nil {
		r.Log.Error("doctorPostgresRepository.UpdateDoctor error updating doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

// UpdateRatingAggregates recomputes the denormalized rating columns from
// the approved reviews.
func (r *doctorPostgresRepository) UpdateRatingAggregates(ctx context.Context, doctorID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("doctorPostgresRepository.UpdateRatingAggregates called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	var average float64
	var total int
	err := r.DB.QueryRowContext(ctx, queries.RatingAggregatesQuery, doctorID).Scan(&average, &total)
	if err != nil {
		return exceptions.ErrPostgresDBSelectData(err)
	}

	_, err = r.DB.ExecContext(ctx, queries.UpdateDoctorRatingAggregatesQuery, average, total, doctorID)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *doctorPostgresRepository) SetActive(ctx context.Context, doctorID string, active bool) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("doctorPostgresRepository.SetActive called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)
	_, err := r.DB.ExecContext(ctx, queries.SetDoctorActiveQuery, active, doctorID)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *doctorPostgresRepository) SetProfilePicture(ctx context.Context, doctorID, objectName string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("doctorPostgresRepository.SetProfilePicture called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)
	_, err := r.DB.ExecContext(ctx, queries.SetDoctorProfilePictureQuery, objectName, doctorID)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *doctorPostgresRepository) findOne(ctx context.Context, field string, value interface{}) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	query := fmt.Sprintf(queries.FindDoctorByFieldQueryTemplate, field)

	row := r.DB.QueryRowContext(ctx, query, value)
	doctor, err := scanDoctor(row)
	if err != nil {
		if err == sql.ErrNoRows {
			r.Log.Warn("doctorPostgresRepository.findOne no rows found",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			return nil, nil
		}
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	return doctor, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDoctor(row rowScanner) (*models.Doctor, error) {
	var doctor models.Doctor
	err := row.Scan(
		&doctor.ID, &doctor.UserID, &doctor.Name, &doctor.Specialization,
		&doctor.Email, &doctor.Phone, &doctor.IsActive,
		&doctor.ConsultationFee, &doctor.ExperienceYears, &doctor.Description,
		&doctor.Affiliation, &doctor.LicenseNumber, &doctor.ProfilePictureName,
		&doctor.AverageRating, &doctor.TotalReviews,
		&doctor.CreatedAt, &doctor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

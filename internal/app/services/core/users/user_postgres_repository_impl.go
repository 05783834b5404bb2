package users

import (
	"context"
	"database/sql"
	"fmt"
	"mediport-service/internal/app/contracts"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/constvars"
	"mediport-service/internal/pkg/exceptions"
	"mediport-service/internal/pkg/queries"
	"sync"

	"go.uber.org/zap"
)

type userPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	userPostgresRepositoryInstance contracts.UserRepository
	onceUserPostgresRepository     sync.Once
)

func NewUserPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.UserRepository {
	onceUserPostgresRepository.Do(func() {
		instance := &userPostgresRepository{
			DB:  db,
			Log: logger,
		}
		userPostgresRepositoryInstance = instance
	})
	return userPostgresRepositoryInstance
}

func (r *userPostgresRepository) CreateUser(ctx context.Context, user *models.User) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("userPostgresRepository.CreateUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var id string
	err := r.DB.QueryRowContext(ctx, queries.CreateUserQuery,
		user.Username, user.Email, user.Password, user.Role, user.Phone,
		user.DateOfBirth, user.Address, user.ProfilePictureName,
		user.EmailNotifications, user.SMSNotifications,
		user.EmailVerified, user.IsActive,
	).Scan(&id)
	if err != nil {
		r.Log.Error("userPostgresRepository.CreateUser error inserting user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrPostgresDBInsertData(err)
	}

	r.Log.Info("userPostgresRepository.CreateUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, id),
	)
	return id, nil
}

func (r *userPostgresRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("userPostgresRepository.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)
	return r.findOne(ctx, "id", userID)
}

func (r *userPostgresRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("userPostgresRepository.FindByUsername called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return r.findOne(ctx, "username", username)
}

func (r *userPostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("userPostgresRepository.FindByEmail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return r.findOne(ctx, "email", email)
}

func (r *userPostgresRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("userPostgresRepository.FindByEmailOrUsername called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return r.findUser(ctx, queries.FindUserByEmailOrUsernameQuery, email, username)
}

func (r *userPostgresRepository) UpdateUser(ctx context.Context, user *models.User) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("userPostgresRepository.UpdateUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)
	_, err := r.DB.ExecContext(ctx, queries.UpdateUserQuery,
		user.Username, user.Email, user.Password, user.Role, user.Phone,
		user.DateOfBirth, user.Address, user.ProfilePictureName,
		user.EmailNotifications, user.SMSNotifications,
		user.EmailVerified, user.IsActive, user.ID,
	)
	if err != nil {
		r.Log.Error("userPostgresRepository.UpdateUser error updating user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, user.ID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	r.Log.Info("userPostgresRepository.UpdateUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)
	return nil
}

func (r *userPostgresRepository) findOne(ctx context.Context, field string, value interface{}) (*models.User, error) {
	query := fmt.Sprintf(queries.FindUserByFieldQueryTemplate, field)
	return r.findUser(ctx, query, value)
}

func (r *userPostgresRepository) findUser(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	row := r.DB.QueryRowContext(ctx, query, args...)

	var user models.User
	var dateOfBirth sql.NullTime

	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.Password, &user.Role,
		&user.Phone, &dateOfBirth, &user.Address, &user.ProfilePictureName,
		&user.EmailNotifications, &user.SMSNotifications,
		&user.EmailVerified, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			r.Log.Warn("userPostgresRepository.findUser no rows found",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			return nil, nil
		}
		r.Log.Error("userPostgresRepository.findUser error scanning user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}

	if dateOfBirth.Valid {
		user.DateOfBirth = &dateOfBirth.Time
	}
	return &user, nil
}

package reminders

import (
	"context"
	"database/sql"
	"mediport-service/internal/app/contracts"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/constvars"
	"mediport-service/internal/pkg/exceptions"
	"mediport-service/internal/pkg/queries"
	"sync"
	"time"

	"go.uber.org/zap"
)

type reminderPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	reminderRepositoryInstance contracts.ReminderRepository
	onceReminderRepository     sync.Once
)

func NewReminderPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.ReminderRepository {
	onceReminderRepository.Do(func() {
		instance := &reminderPostgresRepository{
			DB:  db,
			Log: logger,
		}
		reminderRepositoryInstance = instance
	})
	return reminderRepositoryInstance
}

func (r *reminderPostgresRepository) CreateReminder(ctx context.Context, reminder *models.AppointmentReminder) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("reminderPostgresRepository.CreateReminder called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, reminder.AppointmentID),
	)

	var reminderID string
	err := r.DB.QueryRowContext(ctx, queries.CreateReminderQuery,
		reminder.AppointmentID,
		reminder.ReminderType,
		reminder.HoursBefore,
		reminder.ScheduledFor,
	).Scan(&reminderID)
	if err != nil {
		r.Log.Error("reminderPostgresRepository.CreateReminder error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrPostgresDBInsertData(err)
	}
	return reminderID, nil
}

func (r *reminderPostgresRepository) FindByID(ctx context.Context, reminderID string) (*models.AppointmentReminder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("reminderPostgresRepository.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReminderIDKey, reminderID),
	)

	row := r.DB.QueryRowContext(ctx, queries.FindReminderByIDQuery, reminderID)

	var reminder models.AppointmentReminder
	if err := scanReminder(row, &reminder); err != nil {
		if err == sql.ErrNoRows {
			r.Log.Warn("reminderPostgresRepository.FindByID no reminder found",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingReminderIDKey, reminderID),
			)
			return nil, nil
		}
		r.Log.Error("reminderPostgresRepository.FindByID error scanning row",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	return &reminder, nil
}

func (r *reminderPostgresRepository) ListByAppointment(ctx context.Context, appointmentID string) ([]models.AppointmentReminder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("reminderPostgresRepository.ListByAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	return r.list(ctx, requestID, queries.ListRemindersByAppointmentQuery, appointmentID)
}

func (r *reminderPostgresRepository) ListUpcoming(ctx context.Context, userID, doctorID string, now time.Time) ([]models.AppointmentReminder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("reminderPostgresRepository.ListUpcoming called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	return r.list(ctx, requestID, queries.ListUpcomingRemindersQuery, userID, doctorID, now)
}

func (r *reminderPostgresRepository) FindDueUnsent(ctx context.Context, now time.Time, limit int) ([]models.AppointmentReminder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("reminderPostgresRepository.FindDueUnsent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	return r.list(ctx, requestID, queries.FindDueUnsentRemindersQuery, now, limit)
}

func (r *reminderPostgresRepository) list(ctx context.Context, requestID, query string, args ...interface{}) ([]models.AppointmentReminder, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.Log.Error("reminderPostgresRepository.list error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	defer rows.Close()

	reminders := make([]models.AppointmentReminder, 0)
	for rows.Next() {
		var reminder models.AppointmentReminder
		if err := scanReminder(rows, &reminder); err != nil {
			r.Log.Error("reminderPostgresRepository.list error scanning row",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrPostgresDBSelectData(err)
		}
		reminders = append(reminders, reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	return reminders, nil
}

func (r *reminderPostgresRepository) MarkSent(ctx context.Context, reminderID, sentVia string, sentAt time.Time) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("reminderPostgresRepository.MarkSent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReminderIDKey, reminderID),
	)

	if _, err := r.DB.ExecContext(ctx, queries.MarkReminderSentQuery, sentAt, sentVia, reminderID); err != nil {
		r.Log.Error("reminderPostgresRepository.MarkSent error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *reminderPostgresRepository) MarkFailed(ctx context.Context, reminderID, errorMessage string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("reminderPostgresRepository.MarkFailed called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReminderIDKey, reminderID),
	)

	if _, err := r.DB.ExecContext(ctx, queries.MarkReminderFailedQuery, errorMessage, reminderID); err != nil {
		r.Log.Error("reminderPostgresRepository.MarkFailed error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *reminderPostgresRepository) DeleteReminder(ctx context.Context, reminderID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("reminderPostgresRepository.DeleteReminder called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReminderIDKey, reminderID),
	)

	if _, err := r.DB.ExecContext(ctx, queries.DeleteReminderQuery, reminderID); err != nil {
		r.Log.Error("reminderPostgresRepository.DeleteReminder error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	return nil
}

func (r *reminderPostgresRepository) CancelPendingByAppointment(ctx context.Context, appointmentID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("reminderPostgresRepository.CancelPendingByAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	if _, err := r.DB.ExecContext(ctx, queries.CancelPendingRemindersByAppointmentQuery, appointmentID); err != nil {
		r.Log.Error("reminderPostgresRepository.CancelPendingByAppointment error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReminder(row rowScanner, reminder *models.AppointmentReminder) error {
	var sentAt sql.NullTime
	var sentVia, errorMessage sql.NullString
	err := row.Scan(
		&reminder.ID,
		&reminder.AppointmentID,
		&reminder.ReminderType,
		&reminder.HoursBefore,
		&reminder.IsSent,
		&sentAt,
		&sentVia,
		&errorMessage,
		&reminder.ScheduledFor,
		&reminder.CreatedAt,
		&reminder.UserID,
		&reminder.PatientName,
		&reminder.PatientEmail,
		&reminder.AppointmentDate,
		&reminder.AppointmentTime,
		&reminder.AppointmentStatus,
		&reminder.DoctorName,
		&reminder.DoctorSpecialization,
	)
	if err != nil {
		return err
	}
	if sentAt.Valid {
		reminder.SentAt = &sentAt.Time
	}
	reminder.SentVia = sentVia.String
	reminder.ErrorMessage = errorMessage.String
	return nil
}

package appointments

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
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type appointmentPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	appointmentPostgresRepositoryInstance contracts.AppointmentRepository
	onceAppointmentPostgresRepository     sync.Once
)

func NewAppointmentPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.AppointmentRepository {
	onceAppointmentPostgresRepository.Do(func() {
		instance := &appointmentPostgresRepository{
			DB:  db,
			Log: logger,
		}
		appointmentPostgresRepositoryInstance = instance
	})
	return appointmentPostgresRepositoryInstance
}

func (r *appointmentPostgresRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("appointmentPostgresRepository.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, appointment.DoctorID),
	)

	var id string
	err := r.DB.QueryRowContext(ctx, queries.CreateAppointmentQuery,
		appointment.DoctorID, appointment.UserID, appointment.PatientName,
		appointment.PatientEmail, appointment.PatientPhone,
		appointment.AppointmentDate, appointment.AppointmentTime,
		appointment.Status, appointment.Priority, appointment.Reason,
		appointment.Notes,
	).Scan(&id)
	if err != nil {
		r.Log.Error("appointmentPostgresRepository.CreateAppointment error inserting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		// The partial unique index on active slots fires when two
		// bookings race past the redis lock.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return "", exceptions.ErrSlotAlreadyBooked(err)
		}
		return "", exceptions.ErrPostgresDBInsertData(err)
	}

	r.Log.Info("appointmentPostgresRepository.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, id),
	)
	return id, nil
}

func (r *appointmentPostgresRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("appointmentPostgresRepository.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	row := r.DB.QueryRowContext(ctx, queries.FindAppointmentByIDQuery, appointmentID)
	appointment, err := scanAppointment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			r.Log.Warn("appointmentPostgresRepository.FindByID no rows found",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			)
			return nil, nil
		}
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	return appointment, nil
}

func (r *appointmentPostgresRepository) Search(ctx context.Context, params *requests.QueryParams) ([]models.Appointment, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("appointmentPostgresRepository.Search called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	offset := (params.Page - 1) * params.PageSize
	rows, err := r.DB.QueryContext(ctx, queries.SearchAppointmentsQuery,
		params.UserID, params.DoctorID, params.Status, params.Search,
		params.DateFrom, params.DateTo, params.PageSize, offset,
	)
	if err != nil {
		r.Log.Error("appointmentPostgresRepository.Search error querying appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, exceptions.ErrPostgresDBSelectData(err)
	}
	defer rows.Close()

	appointments, err := collectAppointments(rows)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBSelectData(err)
	}

	var total int
	err = r.DB.QueryRowContext(ctx, queries.CountAppointmentsQuery,
		params.UserID, params.DoctorID, params.Status, params.Search,
		params.DateFrom, params.DateTo,
	).Scan(&total)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBSelectData(err)
	}

	return appointments, total, nil
}

func (r *appointmentPostgresRepository) FindUpcoming(ctx context.Context, params *requests.QueryParams, from time.Time) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("appointmentPostgresRepository.FindUpcoming called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	limit := params.PageSize
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.DB.QueryContext(ctx, queries.FindUpcomingAppointmentsQuery,
		params.UserID, params.DoctorID, from, limit,
	)
	if err != nil {
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	defer rows.Close()

	appointments, err := collectAppointments(rows)
	if err != nil {
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	return appointments, nil
}

func (r *appointmentPostgresRepository) ExistsActiveSlot(ctx context.Context, doctorID string, date time.Time, timeOfDay string, excludeID string) (bool, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("appointmentPostgresRepository.ExistsActiveSlot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	var exists bool
	err := r.DB.QueryRowContext(ctx, queries.ExistsActiveSlotQuery,
		doctorID, date, timeOfDay, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, exceptions.ErrPostgresDBSelectData(err)
	}
	return exists, nil
}

func (r *appointmentPostgresRepository) ListBookedTimes(ctx context.Context, doctorID string, date time.Time) ([]string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("appointmentPostgresRepository.ListBookedTimes called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	rows, err := r.DB.QueryContext(ctx, queries.ListBookedTimesQuery, doctorID, date)
	if err != nil {
		return nil, exceptions.ErrPostgresDBSelectData(err)
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, exceptions.ErrPostgresDBSelectData(err)
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

func (r *appointmentPostgresRepository) CountActiveForDate(ctx context.Context, doctorID string, date time.Time) (int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("appointmentPostgresRepository.CountActiveForDate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	var count int
	err := r.DB.QueryRowContext(ctx, queries.CountActiveForDateQuery, doctorID, date).Scan(&count)
	if err != nil {
		return 0, exceptions.ErrPostgresDBSelectData(err)
	}
	return count, nil
}

func (r *appointmentPostgresRepository) UpdateAppointment(ctx context.Context, appointment *models.Appointment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("appointmentPostgresRepository.UpdateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)

	_, err := r.DB.ExecContext(ctx, queries.UpdateAppointmentQuery,
		appointment.AppointmentDate, appointment.AppointmentTime,
		appointment.Status, appointment.Priority, appointment.Reason,
		appointment.Notes, appointment.CancellationReason,
		appointment.ConfirmedAt, appointment.CompletedAt, appointment.ID,
	)
	if err != nil {
		r.Log.Error("appointmentPostgresRepository.UpdateAppointment error updating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

// HasCompletedAppointment returns the latest completed appointment ID
// between the patient and the doctor, or empty when none exists.
func (r *appointmentPostgresRepository) HasCompletedAppointment(ctx context.Context, userID, doctorID string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("appointmentPostgresRepository.HasCompletedAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	var id string
	err := r.DB.QueryRowContext(ctx, queries.FindCompletedAppointmentQuery, userID, doctorID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", exceptions.ErrPostgresDBSelectData(err)
	}
	return id, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*models.Appointment, error) {
	var appointment models.Appointment
	var cancellationReason sql.NullString
	var notes sql.NullString
	var confirmedAt, completedAt sql.NullTime

	err := row.Scan(
		&appointment.ID, &appointment.DoctorID, &appointment.UserID,
		&appointment.PatientName, &appointment.PatientEmail,
		&appointment.PatientPhone, &appointment.AppointmentDate,
		&appointment.AppointmentTime, &appointment.Status,
		&appointment.Priority, &appointment.Reason, &notes,
		&cancellationReason, &confirmedAt, &completedAt,
		&appointment.CreatedAt, &appointment.UpdatedAt,
		&appointment.DoctorName, &appointment.DoctorSpecialization,
	)
	if err != nil {
		return nil, err
	}

	appointment.Notes = notes.String
	appointment.CancellationReason = cancellationReason.String
	if confirmedAt.Valid {
		appointment.ConfirmedAt = &confirmedAt.Time
	}
	if completedAt.Valid {
		appointment.CompletedAt = &completedAt.Time
	}
	return &appointment, nil
}

func collectAppointments(rows *sql.Rows) ([]models.Appointment, error) {
	var appointments []models.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, *appointment)
	}
	return appointments, rows.Err()
}

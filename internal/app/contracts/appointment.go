package contracts

import (
	"context"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/dto/requests"
	"mediport-service/internal/pkg/dto/responses"
	"time"
)

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	Search(ctx context.Context, params *requests.QueryParams) ([]models.Appointment, int, error)
	FindUpcoming(ctx context.Context, params *requests.QueryParams, from time.Time) ([]models.Appointment, error)
	ExistsActiveSlot(ctx context.Context, doctorID string, date time.Time, timeOfDay string, excludeID string) (bool, error)
	ListBookedTimes(ctx context.Context, doctorID string, date time.Time) ([]string, error)
	CountActiveForDate(ctx context.Context, doctorID string, date time.Time) (int, error)
	UpdateAppointment(ctx context.Context, appointment *models.Appointment) error
	HasCompletedAppointment(ctx context.Context, userID, doctorID string) (string, error)
}

type StatusHistoryRepository interface {
	CreateStatusHistory(ctx context.Context, history *models.StatusHistory) error
	ListByAppointment(ctx context.Context, appointmentID string) ([]models.StatusHistory, error)
}

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, sessionData string, request *requests.CreateAppointmentRequest) (*responses.Appointment, error)
	FindAll(ctx context.Context, sessionData string, params *requests.QueryParams) ([]responses.Appointment, *responses.Pagination, error)
	FindUpcoming(ctx context.Context, sessionData string, params *requests.QueryParams) ([]responses.Appointment, error)
	FindByID(ctx context.Context, sessionData, appointmentID string) (*responses.AppointmentDetail, error)
	UpdateStatus(ctx context.Context, sessionData, appointmentID string, request *requests.UpdateAppointmentStatusRequest) (*responses.UpdateStatus, error)
	Reschedule(ctx context.Context, sessionData, appointmentID string, request *requests.RescheduleAppointmentRequest) (*responses.Appointment, error)
	BulkUpdateStatus(ctx context.Context, sessionData string, request *requests.BulkUpdateStatusRequest) (*responses.BulkUpdate, error)
	Export(ctx context.Context, sessionData string, params *requests.QueryParams) ([]models.Appointment, error)
	CalendarEvents(ctx context.Context, sessionData string) ([]responses.CalendarEvent, error)
}

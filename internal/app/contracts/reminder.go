package contracts

import (
	"context"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/dto/requests"
	"mediport-service/internal/pkg/dto/responses"
	"time"
)

type ReminderRepository interface {
	CreateReminder(ctx context.Context, reminder *models.AppointmentReminder) (string, error)
	FindByID(ctx context.Context, reminderID string) (*models.AppointmentReminder, error)
	ListByAppointment(ctx context.Context, appointmentID string) ([]models.AppointmentReminder, error)
	ListUpcoming(ctx context.Context, userID, doctorID string, now time.Time) ([]models.AppointmentReminder, error)
	FindDueUnsent(ctx context.Context, now time.Time, limit int) ([]models.AppointmentReminder, error)
	MarkSent(ctx context.Context, reminderID, sentVia string, sentAt time.Time) error
	MarkFailed(ctx context.Context, reminderID, errorMessage string) error
	DeleteReminder(ctx context.Context, reminderID string) error
	CancelPendingByAppointment(ctx context.Context, appointmentID string) error
}

type ReminderUsecase interface {
	CreateReminder(ctx context.Context, sessionData, appointmentID string, request *requests.CreateReminderRequest) (*responses.Reminder, error)
	ScheduleDefaultReminders(ctx context.Context, appointment *models.Appointment) error
	CancelPendingByAppointment(ctx context.Context, appointmentID string) error
	ListByAppointment(ctx context.Context, sessionData, appointmentID string) (*responses.AppointmentReminders, error)
	ListUpcoming(ctx context.Context, sessionData string) ([]responses.UpcomingReminder, error)
	DeleteReminder(ctx context.Context, sessionData, reminderID string) error
	DispatchDue(ctx context.Context) (int, error)
}

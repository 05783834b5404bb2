package routers

import (
	"mediport-service/internal/app/delivery/http/controllers"
	"mediport-service/internal/app/delivery/http/middlewares"
	"mediport-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController, reminderController *controllers.ReminderController) {
	router.Use(middlewares.Authenticate)

	router.Get("/", appointmentController.FindAll)
	router.Post("/", appointmentController.CreateAppointment)
	router.Get("/upcoming", appointmentController.FindUpcoming)
	router.Get("/calendar", appointmentController.CalendarEvents)
	router.Get("/export", appointmentController.Export)
	router.With(middlewares.RequireRoles(constvars.RoleDoctor, constvars.RoleAdmin)).
		Post("/bulk-status", appointmentController.BulkUpdateStatus)

	router.Get("/{appointmentID}", appointmentController.FindByID)
	router.Patch("/{appointmentID}/status", appointmentController.UpdateStatus)
	router.Post("/{appointmentID}/reschedule", appointmentController.Reschedule)

	router.Get("/{appointmentID}/reminders", reminderController.ListByAppointment)
	router.Post("/{appointmentID}/reminders", reminderController.CreateReminder)
}

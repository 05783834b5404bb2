package routers

import (
	"mediport-service/internal/app/delivery/http/controllers"
	"mediport-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachReminderRoutes(router chi.Router, middlewares *middlewares.Middlewares, reminderController *controllers.ReminderController) {
	router.Use(middlewares.Authenticate)

	router.Get("/", reminderController.ListUpcoming)
	router.Post("/", reminderController.CreateReminder)
	router.Delete("/{reminderID}", reminderController.DeleteReminder)
}

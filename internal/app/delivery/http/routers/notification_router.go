package routers

import (
	"mediport-service/internal/app/delivery/http/controllers"
	"mediport-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachNotificationRoutes(router chi.Router, middlewares *middlewares.Middlewares, notificationController *controllers.NotificationController) {
	router.Use(middlewares.Authenticate)

	router.Get("/", notificationController.ListByUser)
	router.Patch("/{notificationID}/read", notificationController.MarkRead)
	router.Post("/read-all", notificationController.MarkAllRead)
}

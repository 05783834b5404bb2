package routers

import (
	"mediport-service/internal/app/delivery/http/controllers"
	"mediport-service/internal/app/delivery/http/middlewares"
	"mediport-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachScheduleRoutes(router chi.Router, middlewares *middlewares.Middlewares, scheduleController *controllers.ScheduleController) {
	router.Use(middlewares.Authenticate)
	router.Use(middlewares.RequireRoles(constvars.RoleDoctor))

	router.Get("/", scheduleController.ScheduleOverview)
	router.Put("/", scheduleController.UpdateSchedule)
	router.Post("/blocks", scheduleController.CreateTimeBlock)
	router.Delete("/blocks/{blockID}", scheduleController.DeleteTimeBlock)
}

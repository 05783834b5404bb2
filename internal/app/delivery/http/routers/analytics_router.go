package routers

import (
	"mediport-service/internal/app/delivery/http/controllers"
	"mediport-service/internal/app/delivery/http/middlewares"
	"mediport-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAnalyticsRoutes(router chi.Router, middlewares *middlewares.Middlewares, analyticsController *controllers.AnalyticsController) {
	router.Use(middlewares.Authenticate)
	router.Use(middlewares.RequireRoles(constvars.RoleDoctor, constvars.RoleAdmin))

	router.Get("/dashboard", analyticsController.Dashboard)
}

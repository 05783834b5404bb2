package routers

import (
	"mediport-service/internal/app/delivery/http/controllers"
	"mediport-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, middlewares *middlewares.Middlewares, authController *controllers.AuthController) {
	router.Post("/register/patient", authController.RegisterPatient)
	router.Post("/register/doctor", authController.RegisterDoctor)
	router.Get("/activate", authController.ActivateAccount)
	router.Post("/login", authController.Login)
	router.With(middlewares.Authenticate).Post("/logout", authController.Logout)
}

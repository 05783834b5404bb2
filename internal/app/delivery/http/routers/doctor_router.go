package routers

import (
	"mediport-service/internal/app/delivery/http/controllers"
	"mediport-service/internal/app/delivery/http/middlewares"
	"mediport-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, middlewares *middlewares.Middlewares, doctorController *controllers.DoctorController, reviewController *controllers.ReviewController) {
	router.Get("/", doctorController.FindAll)
	router.Get("/specializations", doctorController.FindSpecializations)
	router.Get("/{doctorID}", doctorController.FindByID)
	router.Get("/{doctorID}/slots", doctorController.AvailableSlots)
	router.Get("/{doctorID}/picture", doctorController.ProfilePictureURL)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleDoctor, constvars.RoleAdmin)).
		Post("/{doctorID}/picture", doctorController.UploadProfilePicture)

	router.Get("/{doctorID}/reviews", reviewController.ListByDoctor)
	router.With(middlewares.Authenticate).Post("/{doctorID}/reviews", reviewController.CreateReview)
}

package routers

import (
	"mediport-service/internal/app/delivery/http/controllers"
	"mediport-service/internal/app/delivery/http/middlewares"
	"mediport-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachReviewRoutes(router chi.Router, middlewares *middlewares.Middlewares, reviewController *controllers.ReviewController) {
	router.Use(middlewares.Authenticate)

	router.Get("/mine", reviewController.ListMine)
	router.Put("/{reviewID}", reviewController.UpdateReview)
	router.Delete("/{reviewID}", reviewController.DeleteReview)
	router.Post("/{reviewID}/vote", reviewController.VoteReview)
	router.With(middlewares.RequireRoles(constvars.RoleAdmin)).
		Patch("/{reviewID}/approval", reviewController.ModerateReview)
}

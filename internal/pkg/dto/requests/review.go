package requests

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Title   string `json:"title" validate:"max=200"`
	Comment string `json:"comment" validate:"required"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Title   string `json:"title" validate:"max=200"`
	Comment string `json:"comment" validate:"required"`
}

type ModerateReviewRequest struct {
	IsApproved bool `json:"is_approved"`
	IsFeatured bool `json:"is_featured"`
}

type VoteReviewRequest struct {
	Vote string `json:"vote" validate:"required,oneof=helpful not_helpful"`
}

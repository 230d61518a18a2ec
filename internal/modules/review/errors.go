package review

import "coderr/internal/pkg/apperr"

const msgAlreadyReviewed = "You have already reviewed this business user."

func errAlreadyReviewed() error {
	return apperr.NewValidation(apperr.NonFieldErrors, msgAlreadyReviewed)
}

func errReviewNotFound() error {
	return apperr.NotFound("No Review matches the given query.")
}

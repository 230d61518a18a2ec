package review

import (
	"time"

	"coderr/internal/domain"
)

type CreateReviewRequest struct {
	BusinessUser *int64  `json:"business_user"`
	Rating       *int    `json:"rating"`
	Description  *string `json:"description"`
}

// UpdateReviewRequest may change rating and description only.
type UpdateReviewRequest struct {
	Rating      *int    `json:"rating"`
	Description *string `json:"description"`
}

type ListQuery struct {
	BusinessUserID int64
	ReviewerID     int64
	Ordering       string
}

type ReviewResponse struct {
	ID           int64     `json:"id"`
	BusinessUser int64     `json:"business_user"`
	Reviewer     int64     `json:"reviewer"`
	Rating       int       `json:"rating"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toReviewResponse(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:           r.ID,
		BusinessUser: r.BusinessUserID,
		Reviewer:     r.ReviewerID,
		Rating:       r.Rating,
		Description:  r.Description,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

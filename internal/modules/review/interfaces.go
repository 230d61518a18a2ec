package review

import (
	"context"

	"coderr/internal/domain"
	"coderr/internal/repository"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ExistsByReviewerAndBusiness(ctx context.Context, reviewerID, businessUserID int64) (bool, error)
	List(ctx context.Context, f repository.ReviewFilters) ([]domain.Review, error)
	UpdateContent(ctx context.Context, rv *domain.Review, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
}

// ProfileReader resolves the profile of the reviewed user.
type ProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
}

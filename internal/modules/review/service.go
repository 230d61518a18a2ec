package review

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"coderr/internal/access"
	"coderr/internal/database"
	"coderr/internal/domain"
	"coderr/internal/pkg/apperr"
	"coderr/internal/repository"
)

type Service struct {
	reviews  ReviewRepository
	profiles ProfileReader
}

func NewService(reviews ReviewRepository, profiles ProfileReader) *Service {
	return &Service{reviews: reviews, profiles: profiles}
}

func (s *Service) List(ctx context.Context, p access.Principal, q ListQuery) ([]domain.Review, error) {
	if err := access.CheckAction(p, access.Review, access.List); err != nil {
		return nil, err
	}
	return s.reviews.List(ctx, repository.ReviewFilters{
		BusinessUserID: q.BusinessUserID,
		ReviewerID:     q.ReviewerID,
		Ordering:       q.Ordering,
	})
}

func (s *Service) Get(ctx context.Context, p access.Principal, id int64) (*domain.Review, error) {
	return s.Authorize(ctx, p, access.Retrieve, id)
}

// Authorize runs both access checks for action on review id and returns
// the loaded review.
func (s *Service) Authorize(ctx context.Context, p access.Principal, action access.Action, id int64) (*domain.Review, error) {
	if err := access.CheckAction(p, access.Review, action); err != nil {
		return nil, err
	}
	rv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.CheckObject(p, access.Review, action, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

// Create stores the caller's review of a business user. A caller may
// review each business user once.
func (s *Service) Create(ctx context.Context, p access.Principal, req CreateReviewRequest) (*domain.Review, error) {
	if err := access.CheckAction(p, access.Review, access.Create); err != nil {
		return nil, err
	}

	verr := &apperr.ValidationError{}
	if req.BusinessUser == nil {
		verr.Add("business_user", "This field is required.")
	}
	validateRating(req.Rating, true, verr)
	description := ""
	if req.Description == nil || strings.TrimSpace(*req.Description) == "" {
		verr.Add("description", "This field is required.")
	} else {
		description = strings.TrimSpace(*req.Description)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByUserID(ctx, *req.BusinessUser)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewValidation("business_user", "Invalid pk - object does not exist.")
		}
		return nil, err
	}
	if profile.Type != domain.RoleBusiness {
		return nil, apperr.NewValidation("business_user", "The selected user is not a business user.")
	}

	exists, err := s.reviews.ExistsByReviewerAndBusiness(ctx, p.UserID, *req.BusinessUser)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errAlreadyReviewed()
	}

	rv := &domain.Review{
		BusinessUserID: *req.BusinessUser,
		ReviewerID:     p.UserID,
		Rating:         *req.Rating,
		Description:    description,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		// a concurrent request stored the same pair first
		if database.IsUniqueViolation(err) {
			return nil, errAlreadyReviewed()
		}
		return nil, err
	}
	return rv, nil
}

// Update changes rating and description of a review returned by Authorize.
func (s *Service) Update(ctx context.Context, rv *domain.Review, req UpdateReviewRequest) (*domain.Review, error) {
	verr := &apperr.ValidationError{}
	fields := map[string]any{}
	if validateRating(req.Rating, false, verr) {
		fields["rating"] = *req.Rating
	}
	if req.Description != nil {
		if d := strings.TrimSpace(*req.Description); d == "" {
			verr.Add("description", "This field may not be blank.")
		} else {
			fields["description"] = d
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := s.reviews.UpdateContent(ctx, rv, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errReviewNotFound()
		}
		return nil, err
	}
	return rv, nil
}

func (s *Service) Delete(ctx context.Context, p access.Principal, id int64) error {
	rv, err := s.Authorize(ctx, p, access.Destroy, id)
	if err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, rv.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errReviewNotFound()
		}
		return err
	}
	return nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Review, error) {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errReviewNotFound()
		}
		return nil, err
	}
	return rv, nil
}

// validateRating reports whether rating is present and usable.
func validateRating(rating *int, required bool, verr *apperr.ValidationError) bool {
	if rating == nil {
		if required {
			verr.Add("rating", "This field is required.")
		}
		return false
	}
	if *rating < 1 || *rating > 5 {
		verr.Add("rating", "Ensure this value is between 1 and 5.")
		return false
	}
	return true
}

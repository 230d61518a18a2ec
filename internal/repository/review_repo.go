package repository

import (
	"context"

	"gorm.io/gorm"

	"coderr/internal/domain"
)

type ReviewFilters struct {
	BusinessUserID int64
	ReviewerID     int64
	// Ordering is one of updated_at, -updated_at, rating, -rating.
	Ordering string
}

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) ExistsByReviewerAndBusiness(ctx context.Context, reviewerID, businessUserID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("reviewer_id = ? AND business_user_id = ?", reviewerID, businessUserID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepository) List(ctx context.Context, f ReviewFilters) ([]domain.Review, error) {
	q := r.db.WithContext(ctx).Model(&domain.Review{})
	if f.BusinessUserID > 0 {
		q = q.Where("business_user_id = ?", f.BusinessUserID)
	}
	if f.ReviewerID > 0 {
		q = q.Where("reviewer_id = ?", f.ReviewerID)
	}

	var out []domain.Review
	err := q.Order(reviewOrder(f.Ordering)).Order("id DESC").Find(&out).Error
	return out, err
}

func reviewOrder(o string) string {
	switch o {
	case "updated_at":
		return "updated_at ASC"
	case "rating":
		return "rating ASC"
	case "-rating":
		return "rating DESC"
	default:
		return "updated_at DESC"
	}
}

// UpdateContent writes rating and description; the reviewer/business pair
// is never touched.
func (r *ReviewRepository) UpdateContent(ctx context.Context, rv *domain.Review, fields map[string]any) error {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&domain.Review{}).Where("id = ?", rv.ID).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return r.db.WithContext(ctx).First(rv, rv.ID).Error
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Review{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

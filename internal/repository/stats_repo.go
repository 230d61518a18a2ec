package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"coderr/internal/domain"
)

type PlatformStats struct {
	ReviewCount          int64
	AverageRating        float64
	BusinessProfileCount int64
	OfferCount           int64
}

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Platform computes the summary with aggregate queries only.
func (r *StatsRepository) Platform(ctx context.Context) (*PlatformStats, error) {
	db := r.db.WithContext(ctx)

	var reviews struct {
		Count   int64
		Average float64
	}
	err := db.Model(&domain.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Scan(&reviews).Error
	if err != nil {
		return nil, errors.Wrap(err, "aggregate reviews")
	}

	out := &PlatformStats{ReviewCount: reviews.Count, AverageRating: reviews.Average}
	if err := db.Model(&domain.Profile{}).Where("type = ?", domain.RoleBusiness).Count(&out.BusinessProfileCount).Error; err != nil {
		return nil, errors.Wrap(err, "count business profiles")
	}
	if err := db.Model(&domain.Offer{}).Count(&out.OfferCount).Error; err != nil {
		return nil, errors.Wrap(err, "count offers")
	}
	return out, nil
}

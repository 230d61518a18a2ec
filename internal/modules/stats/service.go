package stats

import (
	"context"

	"coderr/internal/repository"
)

type StatsRepository interface {
	Platform(ctx context.Context) (*repository.PlatformStats, error)
}

type BaseInfoResponse struct {
	ReviewCount          int64   `json:"review_count"`
	AverageRating        float64 `json:"average_rating"`
	BusinessProfileCount int64   `json:"business_profile_count"`
	OfferCount           int64   `json:"offer_count"`
}

type Service struct {
	stats StatsRepository
}

func NewService(stats StatsRepository) *Service {
	return &Service{stats: stats}
}

// BaseInfo summarises the platform. It is public.
func (s *Service) BaseInfo(ctx context.Context) (*BaseInfoResponse, error) {
	st, err := s.stats.Platform(ctx)
	if err != nil {
		return nil, err
	}
	return &BaseInfoResponse{
		ReviewCount:          st.ReviewCount,
		AverageRating:        st.AverageRating,
		BusinessProfileCount: st.BusinessProfileCount,
		OfferCount:           st.OfferCount,
	}, nil
}

package order

import (
	"context"

	"coderr/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, o *domain.Order, status domain.OrderStatus) error
	Delete(ctx context.Context, id int64) error
	CountByBusinessAndStatus(ctx context.Context, businessUserID int64, status domain.OrderStatus) (int64, error)
}

// OfferDetailReader loads a detail together with its offer.
type OfferDetailReader interface {
	GetDetailByID(ctx context.Context, id int64) (*domain.OfferDetail, error)
}

type UserReader interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

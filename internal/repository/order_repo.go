package repository

import (
	"context"

	"gorm.io/gorm"

	"coderr/internal/domain"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// ListForUser returns the orders in which userID is buyer or seller.
func (r *OrderRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Where("customer_user_id = ? OR business_user_id = ?", userID, userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&out).Error
	return out, err
}

// UpdateStatus changes only the status column; snapshot columns stay frozen.
func (r *OrderRepository) UpdateStatus(ctx context.Context, o *domain.Order, status domain.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", o.ID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return r.db.WithContext(ctx).First(o, o.ID).Error
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *OrderRepository) CountByBusinessAndStatus(ctx context.Context, businessUserID int64, status domain.OrderStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("business_user_id = ? AND status = ?", businessUserID, status).
		Count(&n).Error
	return n, err
}

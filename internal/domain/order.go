package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	return s == OrderInProgress || s == OrderCompleted || s == OrderCancelled
}

// Order is a frozen copy of one OfferDetail taken at purchase time.
// Only Status changes after creation.
type Order struct {
	ID                 int64                       `json:"id" gorm:"primaryKey"`
	CustomerUserID     int64                       `json:"customer_user" gorm:"not null;index"`
	BusinessUserID     int64                       `json:"business_user" gorm:"not null;index:idx_order_business_status"`
	Title              string                      `json:"title" gorm:"size:255;not null"`
	Revisions          int                         `json:"revisions" gorm:"not null"`
	DeliveryTimeInDays int                         `json:"delivery_time_in_days" gorm:"not null"`
	Price              decimal.Decimal             `json:"price" gorm:"type:decimal(10,2);not null"`
	Features           datatypes.JSONSlice[string] `json:"features"`
	OfferType          OfferType                   `json:"offer_type" gorm:"size:10;not null"`
	Status             OrderStatus                 `json:"status" gorm:"size:15;not null;default:in_progress;index:idx_order_business_status"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

func (o *Order) AccessParties() Parties {
	return Parties{Customer: o.CustomerUserID, Business: o.BusinessUserID}
}

// SnapshotOrder copies the purchasable fields of d into a new order.
func SnapshotOrder(d *OfferDetail, customerID, businessID int64) *Order {
	features := make(datatypes.JSONSlice[string], len(d.Features))
	copy(features, d.Features)
	return &Order{
		CustomerUserID:     customerID,
		BusinessUserID:     businessID,
		Title:              d.Title,
		Revisions:          d.Revisions,
		DeliveryTimeInDays: d.DeliveryTimeInDays,
		Price:              d.Price,
		Features:           features,
		OfferType:          d.OfferType,
		Status:             OrderInProgress,
	}
}

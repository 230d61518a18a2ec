package order

import (
	"time"

	"coderr/internal/domain"
	"coderr/internal/pkg/utils"
)

type CreateOrderRequest struct {
	OfferDetailID *int64 `json:"offer_detail_id" binding:"required"`
}

// UpdateOrderRequest carries the only writable order field. Anything else
// in the body is ignored.
type UpdateOrderRequest struct {
	Status *string `json:"status"`
}

type OrderResponse struct {
	ID                 int64     `json:"id"`
	CustomerUser       int64     `json:"customer_user"`
	BusinessUser       int64     `json:"business_user"`
	Title              string    `json:"title"`
	Revisions          int       `json:"revisions"`
	DeliveryTimeInDays int       `json:"delivery_time_in_days"`
	Price              string    `json:"price"`
	Features           []string  `json:"features"`
	OfferType          string    `json:"offer_type"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func toOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:                 o.ID,
		CustomerUser:       o.CustomerUserID,
		BusinessUser:       o.BusinessUserID,
		Title:              o.Title,
		Revisions:          o.Revisions,
		DeliveryTimeInDays: o.DeliveryTimeInDays,
		Price:              o.Price.StringFixed(2),
		Features:           utils.NonNil([]string(o.Features)),
		OfferType:          string(o.OfferType),
		Status:             string(o.Status),
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

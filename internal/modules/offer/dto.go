package offer

import (
	"time"

	"github.com/shopspring/decimal"
)

// DetailInput is one tier in a create or update payload. Pointer fields
// distinguish "absent" from zero values for partial updates.
type DetailInput struct {
	Title              *string          `json:"title" binding:"omitempty,max=255"`
	Revisions          *int             `json:"revisions" binding:"omitempty,gte=0"`
	DeliveryTimeInDays *int             `json:"delivery_time_in_days" binding:"omitempty,gte=0"`
	Price              *decimal.Decimal `json:"price"`
	Features           *[]string        `json:"features"`
	OfferType          string           `json:"offer_type"`
}

type OfferInput struct {
	Title       *string       `json:"title" binding:"omitempty,max=255"`
	Image       *string       `json:"image" binding:"omitempty,max=255"`
	Description *string       `json:"description"`
	Details     []DetailInput `json:"details" binding:"omitempty,dive"`
}

type ListQuery struct {
	CreatorID       int64
	MinPrice        *decimal.Decimal
	MaxDeliveryTime *int
	Search          string
	Ordering        string
	Page            int
	PageSize        int
}

type DetailResponse struct {
	ID                 int64    `json:"id"`
	Title              string   `json:"title"`
	Revisions          int      `json:"revisions"`
	DeliveryTimeInDays int      `json:"delivery_time_in_days"`
	Price              string   `json:"price"`
	Features           []string `json:"features"`
	OfferType          string   `json:"offer_type"`
}

type DetailLink struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type UserDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// OfferResponse is the single-offer representation used by create,
// retrieve and update.
type OfferResponse struct {
	ID              int64            `json:"id"`
	User            int64            `json:"user"`
	Title           string           `json:"title"`
	Image           string           `json:"image"`
	Description     string           `json:"description"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	Details         []DetailResponse `json:"details"`
	MinPrice        *float64         `json:"min_price"`
	MinDeliveryTime *int64           `json:"min_delivery_time"`
}

type OfferListItem struct {
	ID              int64        `json:"id"`
	User            int64        `json:"user"`
	Title           string       `json:"title"`
	Image           string       `json:"image"`
	Description     string       `json:"description"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	Details         []DetailLink `json:"details"`
	MinPrice        *float64     `json:"min_price"`
	MinDeliveryTime *int64       `json:"min_delivery_time"`
	UserDetails     UserDetails  `json:"user_details"`
}

type PageResponse struct {
	Count    int64           `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []OfferListItem `json:"results"`
}

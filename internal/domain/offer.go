package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OfferType string

const (
	OfferBasic    OfferType = "basic"
	OfferStandard OfferType = "standard"
	OfferPremium  OfferType = "premium"
)

// OfferTypes lists the tiers every offer is created with.
var OfferTypes = []OfferType{OfferBasic, OfferStandard, OfferPremium}

func (t OfferType) Valid() bool {
	return t == OfferBasic || t == OfferStandard || t == OfferPremium
}

type Offer struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      int64     `json:"user" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Image       string    `json:"image" gorm:"size:255"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Details []OfferDetail `json:"details" gorm:"foreignKey:OfferID"`
	User    *User         `json:"-" gorm:"foreignKey:UserID"`
}

func (o *Offer) AccessParties() Parties {
	return Parties{Owner: o.UserID}
}

// Detail returns the offer's detail of the given tier, if loaded.
func (o *Offer) Detail(t OfferType) *OfferDetail {
	for i := range o.Details {
		if o.Details[i].OfferType == t {
			return &o.Details[i]
		}
	}
	return nil
}

type OfferDetail struct {
	ID                 int64                      `json:"id" gorm:"primaryKey"`
	OfferID            int64                      `json:"-" gorm:"not null;uniqueIndex:idx_offer_detail_type"`
	Title              string                     `json:"title" gorm:"size:255;not null"`
	Revisions          int                        `json:"revisions" gorm:"not null;check:revisions >= 0"`
	DeliveryTimeInDays int                        `json:"delivery_time_in_days" gorm:"not null;check:delivery_time_in_days >= 0"`
	Price              decimal.Decimal            `json:"price" gorm:"type:decimal(10,2);not null"`
	Features           datatypes.JSONSlice[string] `json:"features"`
	OfferType          OfferType                  `json:"offer_type" gorm:"size:10;not null;uniqueIndex:idx_offer_detail_type"`

	Offer *Offer `json:"-" gorm:"foreignKey:OfferID"`
}

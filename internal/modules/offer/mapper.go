package offer

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"coderr/internal/domain"
	"coderr/internal/pkg/utils"
	"coderr/internal/repository"
)

func detailURL(c *gin.Context, id int64) string {
	return utils.AbsoluteURL(c, "/api/offerdetails/"+strconv.FormatInt(id, 10)+"/", nil)
}

func toDetailResponse(d *domain.OfferDetail) DetailResponse {
	return DetailResponse{
		ID:                 d.ID,
		Title:              d.Title,
		Revisions:          d.Revisions,
		DeliveryTimeInDays: d.DeliveryTimeInDays,
		Price:              d.Price.StringFixed(2),
		Features:           utils.NonNil([]string(d.Features)),
		OfferType:          string(d.OfferType),
	}
}

func toOfferResponse(o *domain.Offer) OfferResponse {
	out := OfferResponse{
		ID:          o.ID,
		User:        o.UserID,
		Title:       o.Title,
		Image:       o.Image,
		Description: o.Description,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Details:     make([]DetailResponse, 0, len(o.Details)),
	}
	for i := range o.Details {
		d := &o.Details[i]
		out.Details = append(out.Details, toDetailResponse(d))

		price := d.Price.InexactFloat64()
		if out.MinPrice == nil || price < *out.MinPrice {
			out.MinPrice = &price
		}
		days := int64(d.DeliveryTimeInDays)
		if out.MinDeliveryTime == nil || days < *out.MinDeliveryTime {
			out.MinDeliveryTime = &days
		}
	}
	return out
}

func toListItem(c *gin.Context, s repository.OfferSummary) OfferListItem {
	item := OfferListItem{
		ID:          s.ID,
		User:        s.UserID,
		Title:       s.Title,
		Image:       s.Image,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Details:     make([]DetailLink, 0, len(s.Details)),
	}
	for _, d := range s.Details {
		item.Details = append(item.Details, DetailLink{ID: d.ID, URL: detailURL(c, d.ID)})
	}
	if s.MinPrice.Valid {
		v := s.MinPrice.Decimal.InexactFloat64()
		item.MinPrice = &v
	}
	if s.MinDeliveryTime.Valid {
		v := s.MinDeliveryTime.Int64
		item.MinDeliveryTime = &v
	}
	if s.User != nil {
		item.UserDetails = UserDetails{
			FirstName: s.User.FirstName,
			LastName:  s.User.LastName,
			Username:  s.User.Username,
		}
	}
	return item
}

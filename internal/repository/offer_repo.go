package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"coderr/internal/domain"
)

type OfferOrdering string

const (
	OrderByUpdatedAsc   OfferOrdering = "updated_at"
	OrderByUpdatedDesc  OfferOrdering = "-updated_at"
	OrderByMinPriceAsc  OfferOrdering = "min_price"
	OrderByMinPriceDesc OfferOrdering = "-min_price"
)

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type OfferFilters struct {
	CreatorID       int64
	MinPrice        *decimal.Decimal
	MaxDeliveryTime *int
	Search          string
	Ordering        OfferOrdering
	Limit           int
	Offset          int
}

// OfferSummary is an offer with the aggregates computed over its details.
type OfferSummary struct {
	domain.Offer
	MinPrice        decimal.NullDecimal
	MinDeliveryTime sql.NullInt64
}

type offerSummaryRow struct {
	ID              int64
	UserID          int64
	Title           string
	Image           string
	Description     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	MinPrice        decimal.NullDecimal
	MinDeliveryTime sql.NullInt64
}

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// CreateWithDetails persists the offer and its details atomically.
func (r *OfferRepository) CreateWithDetails(ctx context.Context, o *domain.Offer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		details := o.Details
		o.Details = nil
		if err := tx.Omit("User").Create(o).Error; err != nil {
			return errors.Wrap(err, "create offer")
		}
		for i := range details {
			details[i].OfferID = o.ID
		}
		if len(details) > 0 {
			if err := tx.Omit("Offer").Create(&details).Error; err != nil {
				return errors.Wrap(err, "create offer details")
			}
		}
		o.Details = details
		return nil
	})
}

func (r *OfferRepository) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	var o domain.Offer
	err := r.db.WithContext(ctx).
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("User").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OfferRepository) GetDetailByID(ctx context.Context, id int64) (*domain.OfferDetail, error) {
	var d domain.OfferDetail
	if err := r.db.WithContext(ctx).Preload("Offer").First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// Update saves the offer's scalar columns and the given detail rows in one
// transaction. Details are matched by primary key; offer_type is never
// written.
func (r *OfferRepository) Update(ctx context.Context, o *domain.Offer, fields map[string]any, details []domain.OfferDetail) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := tx.Model(&domain.Offer{}).Where("id = ?", o.ID).Updates(fields).Error; err != nil {
				return errors.Wrap(err, "update offer")
			}
		} else {
			// details-only edits still touch the offer
			if err := tx.Model(&domain.Offer{}).Where("id = ?", o.ID).Update("updated_at", time.Now()).Error; err != nil {
				return errors.Wrap(err, "touch offer")
			}
		}
		for i := range details {
			d := details[i]
			err := tx.Model(&domain.OfferDetail{}).
				Where("id = ? AND offer_id = ?", d.ID, o.ID).
				Updates(map[string]any{
					"title":                 d.Title,
					"revisions":             d.Revisions,
					"delivery_time_in_days": d.DeliveryTimeInDays,
					"price":                 d.Price,
					"features":              d.Features,
				}).Error
			if err != nil {
				return errors.Wrap(err, "update offer detail")
			}
		}
		return tx.
			Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
			Preload("User").
			First(o, o.ID).Error
	})
}

// Delete removes the offer and all of its details.
func (r *OfferRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offer_id = ?", id).Delete(&domain.OfferDetail{}).Error; err != nil {
			return errors.Wrap(err, "delete offer details")
		}
		res := tx.Delete(&domain.Offer{}, id)
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete offer")
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// List returns one page of offers matching f together with the total
// number of matches. Aggregates are computed by the database.
func (r *OfferRepository) List(ctx context.Context, f OfferFilters) ([]OfferSummary, int64, error) {
	agg := r.db.
		Model(&domain.OfferDetail{}).
		Select("offer_id, MIN(price) AS min_price, MIN(delivery_time_in_days) AS min_delivery_time").
		Group("offer_id")

	q := r.db.WithContext(ctx).
		Table("offers").
		Joins("LEFT JOIN (?) AS agg ON agg.offer_id = offers.id", agg)

	if f.CreatorID > 0 {
		q = q.Where("offers.user_id = ?", f.CreatorID)
	}
	if f.MinPrice != nil {
		// compare as a number; sqlite will not coerce a text parameter
		q = q.Where("agg.min_price >= ?", f.MinPrice.InexactFloat64())
	}
	if f.MaxDeliveryTime != nil {
		q = q.Where("agg.min_delivery_time <= ?", *f.MaxDeliveryTime)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
		q = q.Where(`LOWER(offers.title) LIKE ? ESCAPE '\'`, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count offers")
	}

	var rows []offerSummaryRow
	err := q.
		Select("offers.id, offers.user_id, offers.title, offers.image, offers.description, " +
			"offers.created_at, offers.updated_at, agg.min_price, agg.min_delivery_time").
		Order(orderClause(f.Ordering)).
		Order("offers.id ASC").
		Limit(f.Limit).
		Offset(f.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list offers")
	}
	if len(rows) == 0 {
		return []OfferSummary{}, total, nil
	}

	ids := make([]int64, 0, len(rows))
	ownerIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
		ownerIDs = append(ownerIDs, row.UserID)
	}

	var details []domain.OfferDetail
	if err := r.db.WithContext(ctx).Where("offer_id IN ?", ids).Order("id ASC").Find(&details).Error; err != nil {
		return nil, 0, errors.Wrap(err, "load offer details")
	}
	var owners []domain.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ownerIDs).Find(&owners).Error; err != nil {
		return nil, 0, errors.Wrap(err, "load offer owners")
	}

	byOffer := make(map[int64][]domain.OfferDetail, len(rows))
	for _, d := range details {
		byOffer[d.OfferID] = append(byOffer[d.OfferID], d)
	}
	ownerByID := make(map[int64]*domain.User, len(owners))
	for i := range owners {
		ownerByID[owners[i].ID] = &owners[i]
	}

	out := make([]OfferSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, OfferSummary{
			Offer: domain.Offer{
				ID:          row.ID,
				UserID:      row.UserID,
				Title:       row.Title,
				Image:       row.Image,
				Description: row.Description,
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
				Details:     byOffer[row.ID],
				User:        ownerByID[row.UserID],
			},
			MinPrice:        row.MinPrice,
			MinDeliveryTime: row.MinDeliveryTime,
		})
	}
	return out, total, nil
}

func orderClause(o OfferOrdering) string {
	switch o {
	case OrderByUpdatedDesc:
		return "offers.updated_at DESC"
	case OrderByMinPriceAsc:
		return "agg.min_price ASC"
	case OrderByMinPriceDesc:
		return "agg.min_price DESC"
	default:
		return "offers.updated_at ASC"
	}
}

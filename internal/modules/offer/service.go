package offer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"coderr/internal/access"
	"coderr/internal/domain"
	"coderr/internal/pkg/apperr"
	"coderr/internal/repository"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var maxPrice = decimal.New(1, 8)

type OfferRepository interface {
	CreateWithDetails(ctx context.Context, o *domain.Offer) error
	GetByID(ctx context.Context, id int64) (*domain.Offer, error)
	GetDetailByID(ctx context.Context, id int64) (*domain.OfferDetail, error)
	Update(ctx context.Context, o *domain.Offer, fields map[string]any, details []domain.OfferDetail) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.OfferFilters) ([]repository.OfferSummary, int64, error)
}

type Service struct {
	offers OfferRepository
}

func NewService(offers OfferRepository) *Service {
	return &Service{offers: offers}
}

func errOfferNotFound() error {
	return apperr.NotFound("No Offer matches the given query.")
}

// List returns one page of offers and the total number of matches.
func (s *Service) List(ctx context.Context, p access.Principal, q ListQuery) ([]repository.OfferSummary, int64, error) {
	if err := access.CheckAction(p, access.Offer, access.List); err != nil {
		return nil, 0, err
	}
	if q.Page < 1 {
		return nil, 0, apperr.NotFound("Invalid page.")
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}

	offset := (q.Page - 1) * q.PageSize
	items, total, err := s.offers.List(ctx, repository.OfferFilters{
		CreatorID:       q.CreatorID,
		MinPrice:        q.MinPrice,
		MaxDeliveryTime: q.MaxDeliveryTime,
		Search:          q.Search,
		Ordering:        repository.OfferOrdering(q.Ordering),
		Limit:           q.PageSize,
		Offset:          offset,
	})
	if err != nil {
		return nil, 0, err
	}
	if q.Page > 1 && int64(offset) >= total {
		return nil, 0, apperr.NotFound("Invalid page.")
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, p access.Principal, id int64) (*domain.Offer, error) {
	return s.Authorize(ctx, p, access.Retrieve, id)
}

// Authorize runs both access checks for action on offer id and returns the
// loaded offer.
func (s *Service) Authorize(ctx context.Context, p access.Principal, action access.Action, id int64) (*domain.Offer, error) {
	if err := access.CheckAction(p, access.Offer, action); err != nil {
		return nil, err
	}
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.CheckObject(p, access.Offer, action, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Create persists an offer owned by the caller with exactly one detail per
// tier.
func (s *Service) Create(ctx context.Context, p access.Principal, in OfferInput) (*domain.Offer, error) {
	if err := access.CheckAction(p, access.Offer, access.Create); err != nil {
		return nil, err
	}

	verr := &apperr.ValidationError{}
	title := trimmed(in.Title)
	if title == "" {
		verr.Add("title", "This field is required.")
	}
	details := validateNewDetails(in.Details, verr)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	o := &domain.Offer{
		UserID:      p.UserID,
		Title:       title,
		Image:       deref(in.Image),
		Description: deref(in.Description),
		Details:     details,
	}
	if err := s.offers.CreateWithDetails(ctx, o); err != nil {
		return nil, err
	}
	return s.offers.GetByID(ctx, o.ID)
}

// Update applies a partial update to an offer returned by Authorize.
// Details are matched by offer_type; the tier of an existing detail never
// changes.
func (s *Service) Update(ctx context.Context, o *domain.Offer, in OfferInput) (*domain.Offer, error) {
	verr := &apperr.ValidationError{}
	fields := map[string]any{}
	if in.Title != nil {
		if t := strings.TrimSpace(*in.Title); t == "" {
			verr.Add("title", "This field may not be blank.")
		} else {
			fields["title"] = t
		}
	}
	if in.Image != nil {
		fields["image"] = *in.Image
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	details := mergeDetails(o, in.Details, verr)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := s.offers.Update(ctx, o, fields, details); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) Delete(ctx context.Context, p access.Principal, id int64) error {
	o, err := s.Authorize(ctx, p, access.Destroy, id)
	if err != nil {
		return err
	}
	if err := s.offers.Delete(ctx, o.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errOfferNotFound()
		}
		return err
	}
	return nil
}

func (s *Service) GetDetail(ctx context.Context, p access.Principal, id int64) (*domain.OfferDetail, error) {
	if err := access.CheckAction(p, access.OfferDetail, access.Retrieve); err != nil {
		return nil, err
	}
	d, err := s.offers.GetDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("No OfferDetail matches the given query.")
		}
		return nil, err
	}
	return d, nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Offer, error) {
	o, err := s.offers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errOfferNotFound()
		}
		return nil, err
	}
	return o, nil
}

func validateNewDetails(in []DetailInput, verr *apperr.ValidationError) []domain.OfferDetail {
	if in == nil {
		verr.Add("details", "This field is required.")
		return nil
	}
	if len(in) != len(domain.OfferTypes) {
		verr.Add("details", "Exactly three offer details are required.")
		return nil
	}

	seen := make(map[domain.OfferType]bool, len(in))
	out := make([]domain.OfferDetail, 0, len(in))
	for i, d := range in {
		prefix := fmt.Sprintf("details[%d].", i)
		ot := domain.OfferType(d.OfferType)
		if !ot.Valid() {
			verr.Add(prefix+"offer_type", "\""+d.OfferType+"\" is not a valid choice.")
		}
		seen[ot] = true

		nd := domain.OfferDetail{OfferType: ot, Features: []string{}}
		if t := trimmed(d.Title); t == "" {
			verr.Add(prefix+"title", "This field is required.")
		} else {
			nd.Title = t
		}
		if d.Revisions == nil {
			verr.Add(prefix+"revisions", "This field is required.")
		} else {
			nd.Revisions = *d.Revisions
		}
		if d.DeliveryTimeInDays == nil {
			verr.Add(prefix+"delivery_time_in_days", "This field is required.")
		} else {
			nd.DeliveryTimeInDays = *d.DeliveryTimeInDays
		}
		if d.Price == nil {
			verr.Add(prefix+"price", "This field is required.")
		} else if msg := priceProblem(*d.Price); msg != "" {
			verr.Add(prefix+"price", msg)
		} else {
			nd.Price = *d.Price
		}
		if d.Features != nil {
			nd.Features = append(nd.Features, *d.Features...)
		}
		out = append(out, nd)
	}

	for _, ot := range domain.OfferTypes {
		if !seen[ot] {
			verr.Add("details", "offer_type must contain basic, standard and premium exactly once.")
			break
		}
	}
	return out
}

// mergeDetails overlays the payload onto the offer's stored details and
// returns the rows to write.
func mergeDetails(o *domain.Offer, in []DetailInput, verr *apperr.ValidationError) []domain.OfferDetail {
	if len(in) == 0 {
		return nil
	}

	byType := make(map[domain.OfferType]int, len(in))
	var out []domain.OfferDetail
	for i, d := range in {
		prefix := fmt.Sprintf("details[%d].", i)
		if d.OfferType == "" {
			verr.Add("details", "offer_type is required for updating a detail.")
			continue
		}
		ot := domain.OfferType(d.OfferType)
		existing := o.Detail(ot)
		if existing == nil {
			verr.Add("details", fmt.Sprintf("No offer detail with offer_type '%s' for this offer.", d.OfferType))
			continue
		}

		idx, ok := byType[ot]
		if !ok {
			out = append(out, *existing)
			idx = len(out) - 1
			byType[ot] = idx
		}
		nd := &out[idx]

		if d.Title != nil {
			if t := strings.TrimSpace(*d.Title); t == "" {
				verr.Add(prefix+"title", "This field may not be blank.")
			} else {
				nd.Title = t
			}
		}
		if d.Revisions != nil {
			nd.Revisions = *d.Revisions
		}
		if d.DeliveryTimeInDays != nil {
			nd.DeliveryTimeInDays = *d.DeliveryTimeInDays
		}
		if d.Price != nil {
			if msg := priceProblem(*d.Price); msg != "" {
				verr.Add(prefix+"price", msg)
			} else {
				nd.Price = *d.Price
			}
		}
		if d.Features != nil {
			nd.Features = append([]string{}, *d.Features...)
		}
	}
	return out
}

// priceProblem describes why p does not fit decimal(10,2), or "" if it does.
func priceProblem(p decimal.Decimal) string {
	switch {
	case p.IsNegative():
		return "Ensure this value is greater than or equal to 0."
	case !p.Equal(p.Truncate(2)):
		return "Ensure that there are no more than 2 decimal places."
	case p.GreaterThanOrEqual(maxPrice):
		return "Ensure that there are no more than 8 digits before the decimal point."
	}
	return ""
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package order

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"coderr/internal/access"
	"coderr/internal/domain"
	"coderr/internal/pkg/apperr"
)

type Service struct {
	orders  OrderRepository
	details OfferDetailReader
	users   UserReader
}

func NewService(orders OrderRepository, details OfferDetailReader, users UserReader) *Service {
	return &Service{orders: orders, details: details, users: users}
}

func errOrderNotFound() error {
	return apperr.NotFound("No Order matches the given query.")
}

// List returns the caller's orders as buyer or seller, newest first.
func (s *Service) List(ctx context.Context, p access.Principal) ([]domain.Order, error) {
	if err := access.CheckAction(p, access.Order, access.List); err != nil {
		return nil, err
	}
	return s.orders.ListForUser(ctx, p.UserID)
}

func (s *Service) Get(ctx context.Context, p access.Principal, id int64) (*domain.Order, error) {
	return s.Authorize(ctx, p, access.Retrieve, id)
}

// Authorize runs both access checks for action on order id and returns the
// loaded order. Request bodies are read only after it succeeds.
func (s *Service) Authorize(ctx context.Context, p access.Principal, action access.Action, id int64) (*domain.Order, error) {
	if err := access.CheckAction(p, access.Order, action); err != nil {
		return nil, err
	}
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.CheckObject(p, access.Order, action, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Create snapshots the referenced offer detail into a new in-progress
// order. The seller is the offer's owner at this moment.
func (s *Service) Create(ctx context.Context, p access.Principal, req CreateOrderRequest) (*domain.Order, error) {
	if err := access.CheckAction(p, access.Order, access.Create); err != nil {
		return nil, err
	}
	if req.OfferDetailID == nil {
		return nil, apperr.NewValidation("offer_detail_id", "This field is required.")
	}

	d, err := s.details.GetDetailByID(ctx, *req.OfferDetailID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("No OfferDetail matches the given query.")
		}
		return nil, err
	}
	if d.Offer == nil {
		return nil, apperr.NotFound("No Offer matches the given query.")
	}

	o := domain.SnapshotOrder(d, p.UserID, d.Offer.UserID)
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "order created", "order_id", o.ID, "customer", o.CustomerUserID, "business", o.BusinessUserID)
	return o, nil
}

// UpdateStatus changes the status of an order returned by Authorize. Any
// status may follow any other.
func (s *Service) UpdateStatus(ctx context.Context, o *domain.Order, req UpdateOrderRequest) (*domain.Order, error) {
	if req.Status == nil {
		return nil, apperr.NewValidation("status", "This field is required.")
	}
	status := domain.OrderStatus(*req.Status)
	if !status.Valid() {
		return nil, apperr.NewValidation("status", "\""+*req.Status+"\" is not a valid choice.")
	}

	if err := s.orders.UpdateStatus(ctx, o, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errOrderNotFound()
		}
		return nil, err
	}
	return o, nil
}

func (s *Service) Delete(ctx context.Context, p access.Principal, id int64) error {
	o, err := s.Authorize(ctx, p, access.Destroy, id)
	if err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, o.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errOrderNotFound()
		}
		return err
	}
	return nil
}

// CountForBusiness counts the business user's orders in the given status.
func (s *Service) CountForBusiness(ctx context.Context, p access.Principal, businessUserID int64, status domain.OrderStatus) (int64, error) {
	if !p.Authenticated() {
		return 0, apperr.ErrNotAuthenticated
	}
	exists, err := s.users.Exists(ctx, businessUserID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, apperr.NotFound("Business user not found.")
	}
	return s.orders.CountByBusinessAndStatus(ctx, businessUserID, status)
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errOrderNotFound()
		}
		return nil, err
	}
	return o, nil
}

package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/matthews-wong/setaside-be/internal/apperr"
	"github.com/matthews-wong/setaside-be/internal/authn"
	"github.com/matthews-wong/setaside-be/internal/modules/product"
)

type service struct {
	repo     Repository
	products product.Repository
	logger   zerolog.Logger
}

// NewService creates a new order service.
func NewService(repo Repository, products product.Repository, logger zerolog.Logger) Service {
	return &service{
		repo:     repo,
		products: products,
		logger:   logger.With().Str("service", "order").Logger(),
	}
}

func (s *service) Create(ctx context.Context, actor authn.Identity, req CreateRequest) (*Order, error) {
	o := &Order{
		ID:         uuid.New(),
		CustomerID: actor.ID,
		Status:     StatusPending,
		Notes:      req.Notes,
		PickupTime: req.PickupTime,
	}
	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, err
	}

	// The order row is already committed, so each line is added on the
	// trusted path: the order is pending and owned by the actor by
	// construction. A failed line is skipped, not fatal.
	for _, ir := range req.Items {
		if _, err := s.applyAddItem(ctx, o.ID, ir); err != nil {
			s.logger.Warn().
				Err(err).
				Str("order_id", o.ID.String()).
				Str("product_id", ir.ProductID.String()).
				Msg("skipping order item")
		}
	}

	return s.repo.GetOrderByID(ctx, o.ID)
}

func (s *service) List(ctx context.Context, actor authn.Identity, q ListQuery) ([]*Order, int, error) {
	f := ListFilter{CustomerID: q.CustomerID, Limit: q.Limit, Offset: q.Offset}
	if q.Status != "" {
		status, err := ParseStatus(q.Status)
		if err != nil {
			return nil, 0, err
		}
		f.Status = status
	}
	// Customers are always scoped to themselves, whatever filter they sent.
	if !actor.Role.IsStaff() {
		f.CustomerID = actor.ID
	}
	return s.repo.ListOrders(ctx, f)
}

func (s *service) Get(ctx context.Context, id uuid.UUID, actor authn.Identity) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(o, actor, guardOpts{}); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, actor authn.Identity, req UpdateRequest) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(o, actor, guardOpts{requirePending: true}); err != nil {
		return nil, err
	}
	if req.Notes != nil {
		o.Notes = *req.Notes
	}
	if req.PickupTime != nil {
		o.PickupTime = req.PickupTime
	}
	if err := s.repo.UpdateOrder(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, actor authn.Identity, requested string) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsStaff() {
		return nil, apperr.New(apperr.KindForbidden, "only staff can change order status")
	}
	next, err := ParseStatus(requested)
	if err != nil {
		return nil, err
	}
	if !IsValidTransition(o.Status, next) {
		return nil, apperr.Newf(apperr.KindInvalidTransition,
			"cannot transition order from %s to %s", o.Status, next)
	}
	if err := s.repo.UpdateStatus(ctx, id, next, actor.ID); err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("order_id", id.String()).
		Str("from", string(o.Status)).
		Str("to", string(next)).
		Str("staff_id", actor.ID.String()).
		Msg("order status updated")

	o.Status = next
	staffID := actor.ID
	o.PreparedBy = &staffID
	return o, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, actor authn.Identity) error {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(o, actor, guardOpts{}); err != nil {
		return err
	}
	// Deleting a non-pending order is off-limits for every actor, staff
	// included.
	if o.Status != StatusPending {
		return apperr.New(apperr.KindInvalidState, "only pending orders can be deleted")
	}
	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("order_id", id.String()).Msg("order deleted")
	return nil
}

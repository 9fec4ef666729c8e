package order

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/matthews-wong/setaside-be/internal/apperr"
	"github.com/matthews-wong/setaside-be/internal/authn"
)

func (s *service) ListItems(ctx context.Context, orderID uuid.UUID, actor authn.Identity) ([]*Item, error) {
	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authorize(o, actor, guardOpts{}); err != nil {
		return nil, err
	}
	return s.repo.ListItems(ctx, orderID)
}

func (s *service) AddItem(ctx context.Context, orderID uuid.UUID, actor authn.Identity, req ItemRequest) (*Item, error) {
	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authorize(o, actor, guardOpts{requirePending: true}); err != nil {
		return nil, err
	}
	return s.applyAddItem(ctx, orderID, req)
}

// applyAddItem is the trusted add path: callers have already established
// that the order is pending and owned by the actor (or was created by them
// in the same call).
func (s *service) applyAddItem(ctx context.Context, orderID uuid.UUID, req ItemRequest) (*Item, error) {
	if req.Quantity <= 0 {
		return nil, apperr.New(apperr.KindValidation, "quantity must be a positive integer")
	}

	p, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !p.IsAvailable {
		return nil, apperr.Newf(apperr.KindInvalidState, "product %q is not available", p.Name)
	}
	if !p.HasStock(req.Quantity) {
		return nil, apperr.Newf(apperr.KindInvalidState, "insufficient stock for product %q", p.Name)
	}

	existing, err := s.repo.FindItemByProduct(ctx, orderID, p.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// Merge into the existing line. The unit price stays pinned to the
		// price captured when the line was first added.
		existing.Quantity += req.Quantity
		existing.Subtotal = round2(float64(existing.Quantity) * existing.UnitPrice)
		if req.SpecialInstructions != "" {
			existing.SpecialInstructions = req.SpecialInstructions
		}
		if err := s.repo.UpdateItem(ctx, existing); err != nil {
			return nil, err
		}
		existing.Product = p
		return existing, nil
	}

	it := &Item{
		ID:                  uuid.New(),
		OrderID:             orderID,
		ProductID:           p.ID,
		Quantity:            req.Quantity,
		UnitPrice:           p.Price,
		Subtotal:            round2(float64(req.Quantity) * p.Price),
		SpecialInstructions: req.SpecialInstructions,
	}
	if err := s.repo.InsertItem(ctx, it); err != nil {
		return nil, err
	}
	it.Product = p
	return it, nil
}

func (s *service) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, actor authn.Identity, req UpdateItemRequest) (*Item, error) {
	it, err := s.itemInPendingOrder(ctx, orderID, itemID, actor)
	if err != nil {
		return nil, err
	}

	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, apperr.New(apperr.KindValidation, "quantity must be a positive integer")
		}
		p, err := s.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if !p.HasStock(*req.Quantity) {
			return nil, apperr.Newf(apperr.KindInvalidState, "insufficient stock for product %q", p.Name)
		}
		it.Quantity = *req.Quantity
		// The pinned unit price is authoritative even if the product price
		// has changed since the line was added.
		it.Subtotal = round2(float64(it.Quantity) * it.UnitPrice)
	}
	if req.SpecialInstructions != nil {
		it.SpecialInstructions = *req.SpecialInstructions
	}

	if err := s.repo.UpdateItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID, actor authn.Identity) error {
	it, err := s.itemInPendingOrder(ctx, orderID, itemID, actor)
	if err != nil {
		return err
	}
	return s.repo.DeleteItem(ctx, it.ID)
}

// itemInPendingOrder fetches an item after enforcing the pending-window
// guard against its stated parent order. An item that exists but belongs to
// a different order is a malformed request, not a missing resource.
func (s *service) itemInPendingOrder(ctx context.Context, orderID, itemID uuid.UUID, actor authn.Identity) (*Item, error) {
	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authorize(o, actor, guardOpts{requirePending: true}); err != nil {
		return nil, err
	}
	it, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OrderID != orderID {
		return nil, apperr.New(apperr.KindValidation, "item does not belong to this order")
	}
	return it, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

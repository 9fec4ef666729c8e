package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/matthews-wong/setaside-be/internal/authn"
)

// Service defines the order lifecycle business logic.
type Service interface {
	// Create opens a pending order for the actor. Requested items are added
	// best-effort: a line that fails (missing product, no stock) is logged
	// and skipped, and the order is returned with the lines that succeeded.
	Create(ctx context.Context, actor authn.Identity, req CreateRequest) (*Order, error)

	// List returns orders visible to the actor, newest first. Customers only
	// ever see their own orders; staff may filter by any customer.
	List(ctx context.Context, actor authn.Identity, f ListQuery) ([]*Order, int, error)

	// Get retrieves a full order (customer, items with products, preparer).
	Get(ctx context.Context, id uuid.UUID, actor authn.Identity) (*Order, error)

	// Update edits notes and pickup time. The owning customer may edit only
	// while the order is pending; staff may edit at any status.
	Update(ctx context.Context, id uuid.UUID, actor authn.Identity, req UpdateRequest) (*Order, error)

	// UpdateStatus advances the order through the status workflow. Staff
	// only; the transition must be legal; the acting staff member is
	// recorded as the preparer.
	UpdateStatus(ctx context.Context, id uuid.UUID, actor authn.Identity, requested string) (*Order, error)

	// Delete removes a pending order and its items. Non-pending orders
	// cannot be deleted by anyone.
	Delete(ctx context.Context, id uuid.UUID, actor authn.Identity) error

	// ListItems returns the order's lines, oldest first.
	ListItems(ctx context.Context, orderID uuid.UUID, actor authn.Identity) ([]*Item, error)

	// AddItem adds a product line inside the order's pending window. Adding
	// a product already on the order merges quantities at the pinned unit
	// price.
	AddItem(ctx context.Context, orderID uuid.UUID, actor authn.Identity, req ItemRequest) (*Item, error)

	// UpdateItem edits a line's quantity or special instructions inside the
	// pending window. Subtotals always use the pinned unit price.
	UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, actor authn.Identity, req UpdateItemRequest) (*Item, error)

	// RemoveItem deletes a line inside the pending window.
	RemoveItem(ctx context.Context, orderID, itemID uuid.UUID, actor authn.Identity) error
}

// ListQuery carries the caller-supplied listing filters.
type ListQuery struct {
	Status     string
	CustomerID uuid.UUID // staff-only filter; ignored for customers
	Limit      int
	Offset     int
}

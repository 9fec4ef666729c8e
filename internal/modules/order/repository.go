package order

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows and pages an order listing.
type ListFilter struct {
	Status     Status
	CustomerID uuid.UUID // uuid.Nil means all customers
	Limit      int
	Offset     int
}

// Repository defines data access for orders and their items. Item mutations
// recompute the parent order's total atomically in the same transaction.
type Repository interface {
	// CreateOrder persists a new order row (no items).
	CreateOrder(ctx context.Context, o *Order) error

	// GetOrderByID retrieves an order with customer, preparer, and items
	// (each joined with its product).
	GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// ListOrders returns one page of orders (joined with customer, newest
	// first) plus the unpaged total count.
	ListOrders(ctx context.Context, f ListFilter) ([]*Order, int, error)

	// UpdateOrder persists notes and pickup-time changes.
	UpdateOrder(ctx context.Context, o *Order) error

	// UpdateStatus advances an order's status and records the staff member
	// who performed the transition.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, preparedBy uuid.UUID) error

	// DeleteOrder removes an order; its items cascade away via the schema's
	// referential constraint.
	DeleteOrder(ctx context.Context, id uuid.UUID) error

	// GetItem retrieves an item (joined with its product) by id.
	GetItem(ctx context.Context, itemID uuid.UUID) (*Item, error)

	// FindItemByProduct returns the existing line for (order, product), or
	// (nil, nil) when the order has no line for that product.
	FindItemByProduct(ctx context.Context, orderID, productID uuid.UUID) (*Item, error)

	// InsertItem persists a new line and refreshes the order total.
	InsertItem(ctx context.Context, it *Item) error

	// UpdateItem persists line changes and refreshes the order total.
	UpdateItem(ctx context.Context, it *Item) error

	// DeleteItem removes a line and refreshes the order total.
	DeleteItem(ctx context.Context, itemID uuid.UUID) error

	// ListItems returns an order's items joined with products, oldest first.
	ListItems(ctx context.Context, orderID uuid.UUID) ([]*Item, error)
}

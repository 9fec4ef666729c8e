package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/matthews-wong/setaside-be/internal/apperr"
	"github.com/matthews-wong/setaside-be/internal/modules/product"
	"github.com/matthews-wong/setaside-be/internal/modules/user"
)

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusPickedUp  Status = "picked_up"
)

// ParseStatus validates a status string from a request.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPreparing, StatusReady, StatusPickedUp:
		return Status(s), nil
	}
	return "", apperr.Newf(apperr.KindValidation, "unknown status %q", s)
}

// Order is a customer's pending-to-fulfilled pickup transaction. TotalAmount
// is derived from item subtotals and recomputed by the storage layer on
// every item mutation.
type Order struct {
	ID          uuid.UUID  `json:"id"`
	CustomerID  uuid.UUID  `json:"customer_id"`
	Status      Status     `json:"status"`
	TotalAmount float64    `json:"total_amount"`
	Notes       string     `json:"notes,omitempty"`
	PickupTime  *time.Time `json:"pickup_time,omitempty"`
	PreparedBy  *uuid.UUID `json:"prepared_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Customer *user.User `json:"customer,omitempty"`
	Preparer *user.User `json:"preparer,omitempty"`
	Items    []*Item    `json:"items,omitempty"`
}

// Item is one product line within an order. UnitPrice is pinned to the
// product price at the moment the line was first added; Subtotal is always
// quantity times the pinned price.
type Item struct {
	ID                  uuid.UUID `json:"id"`
	OrderID             uuid.UUID `json:"order_id"`
	ProductID           uuid.UUID `json:"product_id"`
	Quantity            int       `json:"quantity"`
	UnitPrice           float64   `json:"unit_price"`
	Subtotal            float64   `json:"subtotal"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	Product *product.Product `json:"product,omitempty"`
}

// CreateRequest is the payload for creating a new order.
type CreateRequest struct {
	Notes      string        `json:"notes,omitempty"`
	PickupTime *time.Time    `json:"pickup_time,omitempty"`
	Items      []ItemRequest `json:"items,omitempty"`
}

// ItemRequest describes one product line to add.
type ItemRequest struct {
	ProductID           uuid.UUID `json:"product_id"`
	Quantity            int       `json:"quantity"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`
}

// UpdateRequest is a partial edit of an order's own fields. Status and items
// have their own operations.
type UpdateRequest struct {
	Notes      *string    `json:"notes,omitempty"`
	PickupTime *time.Time `json:"pickup_time,omitempty"`
}

// UpdateStatusRequest is the payload for advancing an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateItemRequest is a partial edit of an order line.
type UpdateItemRequest struct {
	Quantity            *int    `json:"quantity,omitempty"`
	SpecialInstructions *string `json:"special_instructions,omitempty"`
}

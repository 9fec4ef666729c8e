package product

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows and pages the public catalog listing.
type ListFilter struct {
	Category      string
	Search        string
	AvailableOnly bool
	Limit         int
	Offset        int
}

// Repository defines data access for products.
type Repository interface {
	// Create persists a new product.
	Create(ctx context.Context, p *Product) error

	// GetByID retrieves a product by id.
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// List returns one page of products plus the unpaged total count.
	List(ctx context.Context, f ListFilter) ([]*Product, int, error)

	// Update persists product changes.
	Update(ctx context.Context, p *Product) error

	// Delete removes a product. Deletion fails with INVALID_STATE while any
	// order item still references the product.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListCategories returns the distinct non-empty categories in use.
	ListCategories(ctx context.Context) ([]string, error)
}

package product

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable item in the catalog.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	Category    string    `json:"category,omitempty"`
	IsAvailable bool      `json:"is_available"`
	// StockQuantity is nil for unlimited stock.
	StockQuantity *int      `json:"stock_quantity,omitempty"`
	CreatedBy     uuid.UUID `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasStock reports whether the product can cover the requested quantity.
func (p *Product) HasStock(quantity int) bool {
	return p.StockQuantity == nil || *p.StockQuantity >= quantity
}

// CreateRequest holds the data for creating a product.
type CreateRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	Category      string  `json:"category,omitempty"`
	IsAvailable   *bool   `json:"is_available,omitempty"`
	StockQuantity *int    `json:"stock_quantity,omitempty"`
}

// UpdateRequest holds a partial product edit.
type UpdateRequest struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Category      *string  `json:"category,omitempty"`
	IsAvailable   *bool    `json:"is_available,omitempty"`
	StockQuantity *int     `json:"stock_quantity,omitempty"`
	// UnlimitedStock clears the stock quantity so the product is never
	// stock-checked again.
	UnlimitedStock bool `json:"unlimited_stock,omitempty"`
}

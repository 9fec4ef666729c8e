package product

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/matthews-wong/setaside-be/internal/apperr"
)

// Service defines catalog business logic.
type Service interface {
	Create(ctx context.Context, createdBy uuid.UUID, req CreateRequest) (*Product, error)
	Get(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, f ListFilter) ([]*Product, int, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Categories(ctx context.Context) ([]string, error)

	// SetImage records the served URL of an uploaded product image.
	SetImage(ctx context.Context, id uuid.UUID, imageURL string) (*Product, error)
}

type service struct {
	repo   Repository
	logger zerolog.Logger
}

// NewService creates a new product service.
func NewService(repo Repository, logger zerolog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With().Str("service", "product").Logger(),
	}
}

func (s *service) Create(ctx context.Context, createdBy uuid.UUID, req CreateRequest) (*Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.New(apperr.KindValidation, "name is required")
	}
	if req.Price < 0 {
		return nil, apperr.New(apperr.KindValidation, "price cannot be negative")
	}
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		return nil, apperr.New(apperr.KindValidation, "stock_quantity cannot be negative")
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	p := &Product{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Price:         round2(req.Price),
		Category:      req.Category,
		IsAvailable:   available,
		StockQuantity: req.StockQuantity,
		CreatedBy:     createdBy,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info().Str("product_id", p.ID.String()).Str("name", p.Name).Msg("product created")
	return p, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, f ListFilter) ([]*Product, int, error) {
	return s.repo.List(ctx, f)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperr.New(apperr.KindValidation, "name cannot be empty")
		}
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, apperr.New(apperr.KindValidation, "price cannot be negative")
		}
		p.Price = round2(*req.Price)
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}
	if req.UnlimitedStock {
		p.StockQuantity = nil
	} else if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, apperr.New(apperr.KindValidation, "stock_quantity cannot be negative")
		}
		p.StockQuantity = req.StockQuantity
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")
	return nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) SetImage(ctx context.Context, id uuid.UUID, imageURL string) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.ImageURL = imageURL
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

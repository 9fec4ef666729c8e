package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/matthews-wong/setaside-be/internal/apperr"
	"github.com/matthews-wong/setaside-be/internal/authn"
)

type service struct {
	repo   Repository
	logger zerolog.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, logger zerolog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With().Str("service", "user").Logger(),
	}
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		if *req.FullName == "" {
			return nil, apperr.New(apperr.KindValidation, "full_name cannot be empty")
		}
		u.FullName = *req.FullName
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) ListUsers(ctx context.Context, f ListFilter) ([]*User, int, error) {
	if f.Role != "" && !authn.Role(f.Role).Valid() {
		return nil, 0, apperr.Newf(apperr.KindValidation, "unknown role %q", f.Role)
	}
	return s.repo.ListUsers(ctx, f)
}

func (s *service) AdminUpdateUser(ctx context.Context, id uuid.UUID, req AdminUpdateRequest) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Role != nil {
		role := authn.Role(*req.Role)
		if !role.Valid() {
			return nil, apperr.Newf(apperr.KindValidation, "unknown role %q", *req.Role)
		}
		u.Role = role
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", u.ID.String()).Str("role", string(u.Role)).Bool("is_active", u.IsActive).Msg("user updated by admin")
	return u, nil
}

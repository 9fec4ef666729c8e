package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/matthews-wong/setaside-be/internal/apperr"
	"github.com/matthews-wong/setaside-be/internal/authn"
	"github.com/matthews-wong/setaside-be/internal/modules/user"
)

type service struct {
	userRepo user.Repository
	tokens   *authn.Tokens
	logger   zerolog.Logger
}

// NewService creates a new auth service.
func NewService(userRepo user.Repository, tokens *authn.Tokens, logger zerolog.Logger) Service {
	return &service{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*user.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", apperr.New(apperr.KindValidation, "a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, "", apperr.New(apperr.KindValidation, "password must be at least 8 characters")
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, "", apperr.New(apperr.KindValidation, "full_name is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        req.Phone,
		Role:         authn.RoleCustomer,
		IsActive:     true,
	}
	if err := s.userRepo.CreateUser(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info().Str("user_id", u.ID.String()).Msg("customer registered")
	return u, token, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	u, err := s.userRepo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		// Unknown email and bad password produce the same failure.
		return nil, "", apperr.New(apperr.KindUnauthenticated, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.New(apperr.KindUnauthenticated, "invalid credentials")
	}
	if !u.IsActive {
		return nil, "", apperr.New(apperr.KindUnauthenticated, "account is deactivated")
	}

	token, err := s.tokens.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

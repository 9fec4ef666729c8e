package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/matthews-wong/setaside-be/internal/apperr"
	"github.com/matthews-wong/setaside-be/internal/authn"
	"github.com/matthews-wong/setaside-be/internal/modules/user"
)

// MockUserRepository is a mock implementation of user.Repository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, f user.ListFilter) ([]*user.User, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*user.User), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) IsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func testTokens() *authn.Tokens { return authn.NewTokens("test-secret", time.Hour) }

func TestRegister(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("CreateUser", ctx, mock.AnythingOfType("*user.User")).Return(nil)

	svc := NewService(repo, testTokens(), zerolog.Nop())
	u, token, err := svc.Register(ctx, RegisterRequest{
		Email:    "Alice@Example.com",
		Password: "hunter2hunter2",
		FullName: "Alice Liddell",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice@example.com", u.Email, "emails are lowercased")
	assert.Equal(t, authn.RoleCustomer, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "hunter2hunter2", u.PasswordHash)

	identity, err := testTokens().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, identity.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("CreateUser", ctx, mock.AnythingOfType("*user.User")).
		Return(apperr.New(apperr.KindConflict, "email is already registered"))

	svc := NewService(repo, testTokens(), zerolog.Nop())
	_, _, err := svc.Register(ctx, RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
		FullName: "Alice Liddell",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Contains(t, apperr.Message(err), "already registered")
}

func TestRegister_Validation(t *testing.T) {
	svc := NewService(new(MockUserRepository), testTokens(), zerolog.Nop())

	_, _, err := svc.Register(context.Background(), RegisterRequest{Email: "not-an-email", Password: "hunter2hunter2", FullName: "X"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, _, err = svc.Register(context.Background(), RegisterRequest{Email: "a@b.com", Password: "short", FullName: "X"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, _, err = svc.Register(context.Background(), RegisterRequest{Email: "a@b.com", Password: "hunter2hunter2", FullName: "  "})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)
	require.NoError(t, err)

	stored := &user.User{
		ID:           uuid.New(),
		Email:        "bob@example.com",
		PasswordHash: string(hash),
		Role:         authn.RoleCashier,
		IsActive:     true,
	}
	repo := new(MockUserRepository)
	repo.On("GetUserByEmail", ctx, "bob@example.com").Return(stored, nil)

	svc := NewService(repo, testTokens(), zerolog.Nop())
	u, token, err := svc.Login(ctx, "bob@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, u.ID)

	identity, err := testTokens().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, authn.RoleCashier, identity.Role)
}

func TestLogin_WrongPasswordAndUnknownEmailIndistinguishable(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)

	repo := new(MockUserRepository)
	repo.On("GetUserByEmail", ctx, "bob@example.com").
		Return(&user.User{ID: uuid.New(), PasswordHash: string(hash), IsActive: true}, nil)
	repo.On("GetUserByEmail", ctx, "nobody@example.com").
		Return(nil, apperr.New(apperr.KindNotFound, "user not found"))

	svc := NewService(repo, testTokens(), zerolog.Nop())

	_, _, errWrongPassword := svc.Login(ctx, "bob@example.com", "battery staple")
	_, _, errUnknownEmail := svc.Login(ctx, "nobody@example.com", "battery staple")

	require.Error(t, errWrongPassword)
	require.Error(t, errUnknownEmail)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(errWrongPassword))
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(errUnknownEmail))
	assert.Equal(t, apperr.Message(errWrongPassword), apperr.Message(errUnknownEmail))
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)

	repo := new(MockUserRepository)
	repo.On("GetUserByEmail", ctx, "gone@example.com").
		Return(&user.User{ID: uuid.New(), PasswordHash: string(hash), IsActive: false}, nil)

	svc := NewService(repo, testTokens(), zerolog.Nop())
	_, _, err := svc.Login(ctx, "gone@example.com", "correct horse")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

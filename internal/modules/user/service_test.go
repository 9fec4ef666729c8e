package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/matthews-wong/setaside-be/internal/apperr"
	"github.com/matthews-wong/setaside-be/internal/authn"
)

// MockRepository is a mock implementation of Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUser(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) UpdateUser(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) ListUsers(ctx context.Context, f ListFilter) ([]*User, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*User), args.Int(1), args.Error(2)
}

func (m *MockRepository) IsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := new(MockRepository)
	repo.On("GetUserByID", ctx, id).Return(&User{ID: id, FullName: "Old Name", Phone: "111"}, nil)
	repo.On("UpdateUser", ctx, mock.AnythingOfType("*user.User")).Return(nil)

	svc := NewService(repo, zerolog.Nop())
	u, err := svc.UpdateProfile(ctx, id, UpdateProfileRequest{FullName: strPtr("New Name")})
	require.NoError(t, err)
	assert.Equal(t, "New Name", u.FullName)
	assert.Equal(t, "111", u.Phone, "untouched fields are retained")
}

func TestUpdateProfile_EmptyName(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := new(MockRepository)
	repo.On("GetUserByID", ctx, id).Return(&User{ID: id, FullName: "Old Name"}, nil)

	svc := NewService(repo, zerolog.Nop())
	_, err := svc.UpdateProfile(ctx, id, UpdateProfileRequest{FullName: strPtr("")})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	repo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}

func TestAdminUpdateUser_RoleAndActive(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := new(MockRepository)
	repo.On("GetUserByID", ctx, id).Return(&User{ID: id, Role: authn.RoleCustomer, IsActive: true}, nil)
	repo.On("UpdateUser", ctx, mock.AnythingOfType("*user.User")).Return(nil)

	svc := NewService(repo, zerolog.Nop())
	u, err := svc.AdminUpdateUser(ctx, id, AdminUpdateRequest{Role: strPtr("cashier"), IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, authn.RoleCashier, u.Role)
	assert.False(t, u.IsActive)
}

func TestAdminUpdateUser_UnknownRole(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := new(MockRepository)
	repo.On("GetUserByID", ctx, id).Return(&User{ID: id, Role: authn.RoleCustomer}, nil)

	svc := NewService(repo, zerolog.Nop())
	_, err := svc.AdminUpdateUser(ctx, id, AdminUpdateRequest{Role: strPtr("superuser")})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestListUsers_UnknownRoleFilter(t *testing.T) {
	svc := NewService(new(MockRepository), zerolog.Nop())
	_, _, err := svc.ListUsers(context.Background(), ListFilter{Role: "wizard"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

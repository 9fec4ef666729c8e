package order

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
	"github.com/matthews-wong/setaside-be/internal/modules/product"
)

// MockRepository is a mock implementation of Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateOrder(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) ListOrders(ctx context.Context, f ListFilter) ([]*Order, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Order), args.Int(1), args.Error(2)
}

func (m *MockRepository) UpdateOrder(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, preparedBy uuid.UUID) error {
	args := m.Called(ctx, id, status, preparedBy)
	return args.Error(0)
}

func (m *MockRepository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) GetItem(ctx context.Context, itemID uuid.UUID) (*Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockRepository) FindItemByProduct(ctx context.Context, orderID, productID uuid.UUID) (*Item, error) {
	args := m.Called(ctx, orderID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockRepository) InsertItem(ctx context.Context, it *Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MockRepository) UpdateItem(ctx context.Context, it *Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MockRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockRepository) ListItems(ctx context.Context, orderID uuid.UUID) ([]*Item, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Item), args.Error(1)
}

// MockProductRepository is a mock implementation of product.Repository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, f product.ListFilter) ([]*product.Product, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*product.Product), args.Int(1), args.Error(2)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func intPtr(n int) *int        { return &n }
func strPtr(s string) *string  { return &s }

func availableProduct(id uuid.UUID, price float64, stock *int) *product.Product {
	return &product.Product{ID: id, Name: "Latte", Price: price, IsAvailable: true, StockQuantity: stock}
}

func TestCreate_SkipsFailedItems(t *testing.T) {
	ctx := context.Background()
	customer := authn.Identity{ID: uuid.New(), Role: authn.RoleCustomer}
	goodProduct := uuid.New()
	missingProduct := uuid.New()

	repo := new(MockRepository)
	products := new(MockProductRepository)

	repo.On("CreateOrder", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
	products.On("GetByID", ctx, goodProduct).Return(availableProduct(goodProduct, 5.00, nil), nil)
	products.On("GetByID", ctx, missingProduct).Return(nil, apperr.New(apperr.KindNotFound, "product not found"))
	repo.On("FindItemByProduct", ctx, mock.Anything, goodProduct).Return(nil, nil)
	repo.On("InsertItem", ctx, mock.AnythingOfType("*order.Item")).Return(nil)
	repo.On("GetOrderByID", ctx, mock.Anything).Return(&Order{
		CustomerID: customer.ID,
		Status:     StatusPending,
		Items:      []*Item{{ProductID: goodProduct, Quantity: 2}},
	}, nil)

	svc := NewService(repo, products, zerolog.Nop())
	o, err := svc.Create(ctx, customer, CreateRequest{Items: []ItemRequest{
		{ProductID: goodProduct, Quantity: 2},
		{ProductID: missingProduct, Quantity: 1},
	}})
	require.NoError(t, err, "a failed line must not fail the order")
	require.Len(t, o.Items, 1)
	assert.Equal(t, goodProduct, o.Items[0].ProductID)
	repo.AssertNumberOfCalls(t, "InsertItem", 1)
}

func TestCreate_StartsPendingWithZeroTotal(t *testing.T) {
	ctx := context.Background()
	customer := authn.Identity{ID: uuid.New(), Role: authn.RoleCustomer}

	repo := new(MockRepository)
	repo.On("CreateOrder", ctx, mock.MatchedBy(func(o *Order) bool {
		return o.Status == StatusPending && o.TotalAmount == 0 && o.CustomerID == customer.ID
	})).Return(nil)
	repo.On("GetOrderByID", ctx, mock.Anything).Return(&Order{CustomerID: customer.ID, Status: StatusPending}, nil)

	svc := NewService(repo, new(MockProductRepository), zerolog.Nop())
	_, err := svc.Create(ctx, customer, CreateRequest{})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestList_CustomerAlwaysScopedToSelf(t *testing.T) {
	ctx := context.Background()
	customer := authn.Identity{ID: uuid.New(), Role: authn.RoleCustomer}
	someoneElse := uuid.New()

	repo := new(MockRepository)
	repo.On("ListOrders", ctx, mock.MatchedBy(func(f ListFilter) bool {
		return f.CustomerID == customer.ID
	})).Return([]*Order{}, 0, nil)

	svc := NewService(repo, new(MockProductRepository), zerolog.Nop())
	_, _, err := svc.List(ctx, customer, ListQuery{CustomerID: someoneElse, Limit: 20})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestList_StaffMayFilterByCustomer(t *testing.T) {
	ctx := context.Background()
	cashier := authn.Identity{ID: uuid.New(), Role: authn.RoleCashier}
	target := uuid.New()

	repo := new(MockRepository)
	repo.On("ListOrders", ctx, mock.MatchedBy(func(f ListFilter) bool {
		return f.CustomerID == target && f.Status == StatusPending
	})).Return([]*Order{}, 0, nil)

	svc := NewService(repo, new(MockProductRepository), zerolog.Nop())
	_, _, err := svc.List(ctx, cashier, ListQuery{CustomerID: target, Status: "pending", Limit: 20})
	require.NoError(t, err)
}

func TestList_BadStatusFilter(t *testing.T) {
	svc := NewService(new(MockRepository), new(MockProductRepository), zerolog.Nop())
	_, _, err := svc.List(context.Background(), authn.Identity{Role: authn.RoleAdmin}, ListQuery{Status: "finished"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestGet_CrossOwnerForbidden(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	repo := new(MockRepository)
	repo.On("GetOrderByID", ctx, orderID).Return(&Order{ID: orderID, CustomerID: uuid.New(), Status: StatusPending}, nil)

	svc := NewService(repo, new(MockProductRepository), zerolog.Nop())
	_, err := svc.Get(ctx, orderID, authn.Identity{ID: uuid.New(), Role: authn.RoleCustomer})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = svc.Get(ctx, orderID, authn.Identity{ID: uuid.New(), Role: authn.RoleCashier})
	assert.NoError(t, err, "staff can view any order")
}

func TestUpdate_PendingWindow(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	orderID := uuid.New()

	repo := new(MockRepository)
	repo.On("GetOrderByID", ctx, orderID).Return(&Order{ID: orderID, CustomerID: owner, Status: StatusPreparing}, nil)
	repo.On("UpdateOrder", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

	svc := NewService(repo, new(MockProductRepository), zerolog.Nop())

	_, err := svc.Update(ctx, orderID, authn.Identity{ID: owner, Role: authn.RoleCustomer}, UpdateRequest{Notes: strPtr("no sugar")})
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err), "owner cannot edit outside the pending window")

	o, err := svc.Update(ctx, orderID, authn.Identity{ID: uuid.New(), Role: authn.RoleCashier}, UpdateRequest{Notes: strPtr("no sugar")})
	require.NoError(t, err, "staff can edit at any status")
	assert.Equal(t, "no sugar", o.Notes)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	cashier := authn.Identity{ID: uuid.New(), Role: authn.RoleCashier}

	repo := new(MockRepository)
	repo.On("GetOrderByID", ctx, orderID).Return(&Order{ID: orderID, CustomerID: uuid.New(), Status: StatusPending}, nil)
	repo.On("UpdateStatus", ctx, orderID, StatusPreparing, cashier.ID).Return(nil)

	svc := NewService(repo, new(MockProductRepository), zerolog.Nop())
	o, err := svc.UpdateStatus(ctx, orderID, cashier, "preparing")
	require.NoError(t, err)
	assert.Equal(t, StatusPreparing, o.Status)
	require.NotNil(t, o.PreparedBy)
	assert.Equal(t, cashier.ID, *o.PreparedBy, "the acting staff member is recorded")
}

func TestUpdateStatus_CustomerForbidden(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	orderID := uuid.New()

	repo := new(MockRepository)
	repo.On("GetOrderByID", ctx, orderID).Return(&Order{ID: orderID, CustomerID: owner, Status: StatusPending}, nil)

	svc := NewService(repo, new(MockProductRepository), zerolog.Nop())
	// Even the owning customer cannot drive the workflow.
	_, err := svc.UpdateStatus(ctx, orderID, authn.Identity{ID: owner, Role: authn.RoleCustomer}, "preparing")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestUpdateStatus_IllegalTransition(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	cashier := authn.Identity{ID: uuid.New(), Role: authn.RoleCashier}

	repo := new(MockRepository)
	repo.On("GetOrderByID", ctx, orderID).Return(&Order{ID: orderID, CustomerID: uuid.New(), Status: StatusPending}, nil)

	svc := NewService(repo, new(MockProductRepository), zerolog.Nop())
	_, err := svc.UpdateStatus(ctx, orderID, cashier, "ready")
	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_PendingOnlyForEveryone(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	orderID := uuid.New()

	repo := new(MockRepository)
	repo.On("GetOrderByID", ctx, orderID).Return(&Order{ID: orderID, CustomerID: owner, Status: StatusReady}, nil)

	svc := NewService(repo, new(MockProductRepository), zerolog.Nop())

	err := svc.Delete(ctx, orderID, authn.Identity{ID: owner, Role: authn.RoleCustomer})
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))

	// The pending rule binds staff too.
	err = svc.Delete(ctx, orderID, authn.Identity{ID: uuid.New(), Role: authn.RoleAdmin})
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))
	repo.AssertNotCalled(t, "DeleteOrder", mock.Anything, mock.Anything)
}

func TestDelete_PendingOrder(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	orderID := uuid.New()

	repo := new(MockRepository)
	repo.On("GetOrderByID", ctx, orderID).Return(&Order{ID: orderID, CustomerID: owner, Status: StatusPending}, nil)
	repo.On("DeleteOrder", ctx, orderID).Return(nil)

	svc := NewService(repo, new(MockProductRepository), zerolog.Nop())
	require.NoError(t, svc.Delete(ctx, orderID, authn.Identity{ID: owner, Role: authn.RoleCustomer}))
	repo.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	repo := new(MockRepository)
	repo.On("GetOrderByID", ctx, orderID).Return(nil, apperr.New(apperr.KindNotFound, "order not found"))

	svc := NewService(repo, new(MockProductRepository), zerolog.Nop())
	err := svc.Delete(ctx, orderID, authn.Identity{ID: uuid.New(), Role: authn.RoleAdmin})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

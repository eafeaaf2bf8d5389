package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"distributor-be/internal/order"
	"distributor-be/internal/product"
	"distributor-be/internal/user"
	"distributor-be/internal/wishlist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Service mocks ---

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, in user.RegisterInput) (*user.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) VerifyOTP(ctx context.Context, email, otp string) (string, *user.User, error) {
	args := m.Called(ctx, email, otp)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*user.User), args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*user.User), args.Error(2)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, role user.Role) ([]product.PricedProduct, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.PricedProduct), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id uint, role user.Role) (*product.PricedProduct, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.PricedProduct), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, in product.NewProduct) (*product.Product, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id uint, in product.UpdateProduct) (*product.Product, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Place(ctx context.Context, userID uint, in order.PlaceOrderInput) (*order.Order, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, id, requesterID uint, role user.Role) (*order.Order, error) {
	args := m.Called(ctx, id, requesterID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ListAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) ListMine(ctx context.Context, userID uint) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uint, status string) (*order.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockWishlistService struct {
	mock.Mock
}

func (m *MockWishlistService) Add(ctx context.Context, userID, productID uint, desiredQty int) (*wishlist.Item, error) {
	args := m.Called(ctx, userID, productID, desiredQty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wishlist.Item), args.Error(1)
}

func (m *MockWishlistService) Remove(ctx context.Context, userID, productID uint) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockWishlistService) List(ctx context.Context, userID uint) ([]wishlist.Item, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]wishlist.Item), args.Error(1)
}

type fixture struct {
	users     *MockUserService
	products  *MockProductService
	orders    *MockOrderService
	wishlists *MockWishlistService
	router    http.Handler
}

func newFixture() *fixture {
	f := &fixture{
		users:     new(MockUserService),
		products:  new(MockProductService),
		orders:    new(MockOrderService),
		wishlists: new(MockWishlistService),
	}
	f.router = NewRouter(
		NewUserHandler(f.users),
		NewProductHandler(f.products),
		NewOrderHandler(f.orders),
		NewWishlistHandler(f.wishlists),
	)
	return f
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "192.0.2.1:1234"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func token(t *testing.T, id uint, role user.Role) string {
	t.Helper()
	tok, err := user.GenerateJWT(id, "Asha", "asha@example.com", role)
	require.NoError(t, err)
	return tok
}

func TestRouter_Register(t *testing.T) {
	f := newFixture()

	f.users.On("Register", mock.Anything, mock.MatchedBy(func(in user.RegisterInput) bool {
		return in.Email == "asha@example.com"
	})).Return(&user.User{ID: 7, Email: "asha@example.com"}, nil)

	rr := f.do(t, http.MethodPost, "/users", "", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": "pw",
	})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "asha@example.com")
}

func TestRouter_Register_DuplicateEmail(t *testing.T) {
	f := newFixture()

	f.users.On("Register", mock.Anything, mock.Anything).Return(nil, user.ErrEmailExists)

	rr := f.do(t, http.MethodPost, "/users", "", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": "pw",
	})

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestRouter_Login(t *testing.T) {
	f := newFixture()

	f.users.On("Login", mock.Anything, "asha@example.com", "pw").
		Return("tok-123", &user.User{ID: 7, Name: "Asha", Email: "asha@example.com", Role: user.RoleIndividualBuyer}, nil)

	rr := f.do(t, http.MethodPost, "/users/login", "", map[string]string{
		"email": "asha@example.com", "password": "pw",
	})

	require.Equal(t, http.StatusOK, rr.Code)

	var resp authResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "tok-123", resp.Token)
	assert.Equal(t, "individual_buyer", resp.Role)
}

func TestRouter_ProductList_AnonymousIsBuyerTier(t *testing.T) {
	f := newFixture()

	f.products.On("List", mock.Anything, user.RoleIndividualBuyer).
		Return([]product.PricedProduct{{ID: 1, Price: 99.99}}, nil)

	rr := f.do(t, http.MethodGet, "/products", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	f.products.AssertExpectations(t)
}

func TestRouter_ProductList_RetailerTier(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	f := newFixture()

	f.products.On("List", mock.Anything, user.RoleRetailer).
		Return([]product.PricedProduct{{ID: 1, Price: 84.99}}, nil)

	rr := f.do(t, http.MethodGet, "/products", token(t, 7, user.RoleRetailer), nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	f.products.AssertExpectations(t)
}

func TestRouter_ProductCreate_Guarded(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	f := newFixture()

	// Anonymous.
	rr := f.do(t, http.MethodPost, "/products", "", map[string]string{"sku": "X"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Wrong role.
	rr = f.do(t, http.MethodPost, "/products", token(t, 7, user.RoleRetailer), map[string]string{"sku": "X"})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	f.products.AssertNotCalled(t, "Create")

	// Admin.
	f.products.On("Create", mock.Anything, mock.Anything).
		Return(&product.Product{ID: 1, SKU: "KB-001"}, nil)

	rr = f.do(t, http.MethodPost, "/products", token(t, 1, user.RoleAdmin),
		map[string]any{"sku": "KB-001", "name": "Keyboard", "base_price": 99.99})
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestRouter_PlaceOrder(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	f := newFixture()

	f.orders.On("Place", mock.Anything, uint(7), mock.Anything).
		Return(&order.Order{ID: 3, UserID: 7, Status: order.StatusPending}, nil)

	rr := f.do(t, http.MethodPost, "/orders", token(t, 7, user.RoleIndividualBuyer),
		map[string]any{"items": []map[string]any{{"product_id": 1, "quantity": 2}}})

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestRouter_PlaceOrder_InsufficientStock(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	f := newFixture()

	f.orders.On("Place", mock.Anything, uint(7), mock.Anything).
		Return(nil, order.ErrInsufficientStock)

	rr := f.do(t, http.MethodPost, "/orders", token(t, 7, user.RoleIndividualBuyer),
		map[string]any{"items": []map[string]any{{"product_id": 1, "quantity": 2}}})

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestRouter_OrderGet_ForbiddenForStranger(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	f := newFixture()

	f.orders.On("Get", mock.Anything, uint(3), uint(8), user.RoleRetailer).
		Return(nil, order.ErrForbidden)

	rr := f.do(t, http.MethodGet, "/orders/3", token(t, 8, user.RoleRetailer), nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRouter_OrderListAll_AdminOnly(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	f := newFixture()

	rr := f.do(t, http.MethodGet, "/orders", token(t, 7, user.RoleIndividualBuyer), nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	f.orders.On("ListAll", mock.Anything).Return([]*order.Order{}, nil)

	rr = f.do(t, http.MethodGet, "/orders", token(t, 1, user.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestRouter_OrderStatus_AdminOnly(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	f := newFixture()

	f.orders.On("UpdateStatus", mock.Anything, uint(3), "Shipped").
		Return(&order.Order{ID: 3, Status: order.StatusShipped}, nil)

	rr := f.do(t, http.MethodPut, "/orders/3/status", token(t, 1, user.RoleAdmin),
		map[string]string{"status": "Shipped"})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(t, http.MethodPut, "/orders/3/status", token(t, 7, user.RoleRetailer),
		map[string]string{"status": "Shipped"})
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRouter_Wishlist(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	f := newFixture()

	tok := token(t, 7, user.RoleIndividualBuyer)

	f.wishlists.On("Add", mock.Anything, uint(7), uint(1), 0).
		Return(&wishlist.Item{ID: 5, UserID: 7, ProductID: 1, DesiredQuantity: 1}, nil).Once()
	f.wishlists.On("Add", mock.Anything, uint(7), uint(1), 0).
		Return(nil, wishlist.ErrAlreadyInWishlist).Once()

	rr := f.do(t, http.MethodPost, "/wishlist", tok, map[string]any{"product_id": 1})
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = f.do(t, http.MethodPost, "/wishlist", tok, map[string]any{"product_id": 1})
	assert.Equal(t, http.StatusConflict, rr.Code)

	f.wishlists.On("Remove", mock.Anything, uint(7), uint(99)).Return(wishlist.ErrItemNotFound)
	rr = f.do(t, http.MethodDelete, "/wishlist/99", tok, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Wishlist routes reject anonymous callers.
	rr = f.do(t, http.MethodGet, "/wishlist", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRouter_Health(t *testing.T) {
	f := newFixture()

	rr := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestRouter_BadID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	f := newFixture()

	rr := f.do(t, http.MethodGet, "/orders/banana", token(t, 7, user.RoleIndividualBuyer), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

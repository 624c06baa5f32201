package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"coffee-kart/internal/middleware"
	"coffee-kart/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCatalogService is a mock implementation of CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GetCatalog(ctx context.Context) (*model.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Catalog), args.Error(1)
}

func (m *MockCatalogService) ListProducts(ctx context.Context, categoryID *string, search string) ([]model.Product, error) {
	args := m.Called(ctx, categoryID, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockCatalogService) Seed(ctx context.Context, catalog *model.Catalog) error {
	args := m.Called(ctx, catalog)
	return args.Error(0)
}

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) cart(args mock.Arguments) (*model.CartResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartResponse), args.Error(1)
}

func (m *MockCartService) GetCart(ctx context.Context, userID string) (*model.CartResponse, error) {
	return m.cart(m.Called(ctx, userID))
}

func (m *MockCartService) AddToCart(ctx context.Context, userID string, req *model.AddToCartRequest) (*model.CartResponse, error) {
	return m.cart(m.Called(ctx, userID, req))
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, userID string, itemID uuid.UUID, quantity int) (*model.CartResponse, error) {
	return m.cart(m.Called(ctx, userID, itemID, quantity))
}

func (m *MockCartService) RemoveItem(ctx context.Context, userID string, itemID uuid.UUID) (*model.CartResponse, error) {
	return m.cart(m.Called(ctx, userID, itemID))
}

func (m *MockCartService) ClearCart(ctx context.Context, userID string) (*model.CartResponse, error) {
	return m.cart(m.Called(ctx, userID))
}

func (m *MockCartService) Subscribe(ctx context.Context, userID string) (<-chan model.CartResponse, func(), error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(<-chan model.CartResponse), args.Get(1).(func()), args.Error(2)
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) order(args mock.Arguments) (*model.OrderResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) Checkout(ctx context.Context, userID string, req *model.CheckoutRequest) (*model.OrderResponse, error) {
	return m.order(m.Called(ctx, userID, req))
}

func (m *MockOrderService) ConfirmTransfer(ctx context.Context, userID string, orderID uuid.UUID) (*model.OrderResponse, error) {
	return m.order(m.Called(ctx, userID, orderID))
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) (*model.OrderResponse, error) {
	return m.order(m.Called(ctx, orderID, status))
}

func (m *MockOrderService) GetOrder(ctx context.Context, userID string, orderID uuid.UUID) (*model.OrderResponse, error) {
	return m.order(m.Called(ctx, userID, orderID))
}

func (m *MockOrderService) ListOrders(ctx context.Context, userID string) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

// MockNotificationService is a mock implementation of NotificationService.
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, userID string) (*model.NotificationListResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NotificationListResponse), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, userID string, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationService) Notify(ctx context.Context, userID string, kind model.NotificationType, title, message string) (*model.Notification, error) {
	args := m.Called(ctx, userID, kind, title, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

// MockProfileService is a mock implementation of ProfileService.
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.UserProfile, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

// testRequest describes one call routed through a chi router so URL parameters resolve.
type testRequest struct {
	method  string
	pattern string
	target  string
	body    interface{}
	rawBody string
	userID  string
}

func serve(t *testing.T, tr testRequest, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch {
	case tr.rawBody != "":
		buf.WriteString(tr.rawBody)
	case tr.body != nil:
		require.NoError(t, json.NewEncoder(&buf).Encode(tr.body))
	}

	r := chi.NewRouter()
	r.MethodFunc(tr.method, tr.pattern, h)

	req := httptest.NewRequest(tr.method, tr.target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tr.userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), tr.userID))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

package service

import (
	"context"
	"time"

	"coffee-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockCatalogRepository is a mock implementation of CatalogRepository.
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockCatalogRepository) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockCatalogRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCatalogRepository) ListSizes(ctx context.Context) ([]model.SizeOption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SizeOption), args.Error(1)
}

func (m *MockCatalogRepository) ListToppings(ctx context.Context) ([]model.ToppingOption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ToppingOption), args.Error(1)
}

func (m *MockCatalogRepository) Upsert(ctx context.Context, catalog *model.Catalog) error {
	return m.Called(ctx, catalog).Error(0)
}

// MockCartRepository is a mock implementation of CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) ListItems(ctx context.Context, userID string) ([]model.CartLineItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartLineItem), args.Error(1)
}

func (m *MockCartRepository) InsertItem(ctx context.Context, item model.CartLineItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockCartRepository) UpdateItem(ctx context.Context, item model.CartLineItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockCartRepository) DeleteItem(ctx context.Context, userID string, itemID uuid.UUID) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func (m *MockCartRepository) Clear(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockCartRepository) ListItemsTx(ctx context.Context, tx pgx.Tx, userID string) ([]model.CartLineItem, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartLineItem), args.Error(1)
}

func (m *MockCartRepository) RemoveItemsTx(ctx context.Context, tx pgx.Tx, userID string, itemIDs []uuid.UUID) error {
	return m.Called(ctx, tx, userID, itemIDs).Error(0)
}

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	// Return a MockTx interface value, not a pointer
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	return m.Called(ctx, tx, order).Error(0)
}

func (m *MockOrderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	return m.Called(ctx, tx, items).Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Order), args.Get(1).([]model.OrderItem), args.Error(2)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.OrderStatus, at time.Time) error {
	return m.Called(ctx, id, from, to, at).Error(0)
}

// MockNotificationRepository is a mock implementation of NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) CreateTx(ctx context.Context, tx pgx.Tx, n *model.Notification) error {
	return m.Called(ctx, tx, n).Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, userID string, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, profile *model.UserProfile) error {
	return m.Called(ctx, profile).Error(0)
}

// MockBroker is a mock implementation of realtime.CartBroker.
type MockBroker struct {
	mock.Mock
}

func (m *MockBroker) Publish(ctx context.Context, snapshot model.CartResponse) error {
	return m.Called(ctx, snapshot).Error(0)
}

func (m *MockBroker) Subscribe(ctx context.Context, userID string) (<-chan model.CartResponse, func(), error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(<-chan model.CartResponse), args.Get(1).(func()), args.Error(2)
}

func (m *MockBroker) Close() error {
	return m.Called().Error(0)
}

// MockNotifier is a mock implementation of NotificationService.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) List(ctx context.Context, userID string) (*model.NotificationListResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NotificationListResponse), args.Error(1)
}

func (m *MockNotifier) MarkRead(ctx context.Context, userID string, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockNotifier) UnreadCount(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotifier) Notify(ctx context.Context, userID string, kind model.NotificationType, title, message string) (*model.Notification, error) {
	args := m.Called(ctx, userID, kind, title, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

// Menu fixtures shared by the service tests.
var (
	testSizes = []model.SizeOption{
		{ID: "S", Label: "S", Surcharge: 0},
		{ID: "M", Label: "M", Surcharge: 5000},
		{ID: "L", Label: "L", Surcharge: 10000},
	}
	testToppings = []model.ToppingOption{
		{ID: "1", Label: "Trân châu", Surcharge: 5000},
		{ID: "2", Label: "Thạch", Surcharge: 5000},
		{ID: "3", Label: "Kem cheese", Surcharge: 10000},
		{ID: "4", Label: "Pudding", Surcharge: 8000},
	}
)

package repository

import (
	"context"
	"errors"
	"time"

	"coffee-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrDuplicateOrderCode is returned by CreateOrder when the order code is already taken.
var ErrDuplicateOrderCode = errors.New("order code already in use")

// CatalogRepository defines the data access operations for menu reference data.
type CatalogRepository interface {
	// ListProducts retrieves every product ordered by category position and name.
	ListProducts(ctx context.Context) ([]model.Product, error)

	// GetProduct retrieves a single product. It returns nil, nil when the product does not exist.
	GetProduct(ctx context.Context, id string) (*model.Product, error)

	ListCategories(ctx context.Context) ([]model.Category, error)
	ListSizes(ctx context.Context) ([]model.SizeOption, error)
	ListToppings(ctx context.Context) ([]model.ToppingOption, error)

	// Upsert writes a whole catalogue document in one transaction.
	Upsert(ctx context.Context, catalog *model.Catalog) error
}

// CartRepository defines the data access operations for cart line items.
type CartRepository interface {
	// ListItems retrieves a user's cart lines in the order they were added.
	ListItems(ctx context.Context, userID string) ([]model.CartLineItem, error)

	// InsertItem stores a newly priced line.
	InsertItem(ctx context.Context, item model.CartLineItem) error

	// UpdateItem persists a line's quantity and line total.
	// It returns model.ErrCartItemNotFound when the line does not belong to the user.
	UpdateItem(ctx context.Context, item model.CartLineItem) error

	// DeleteItem removes a line. Deleting an absent line is not an error.
	DeleteItem(ctx context.Context, userID string, itemID uuid.UUID) error

	// Clear removes every line owned by the user.
	Clear(ctx context.Context, userID string) error

	// ListItemsTx reads the user's cart lines within the provided transaction and locks them
	// until it ends.
	ListItemsTx(ctx context.Context, tx pgx.Tx, userID string) ([]model.CartLineItem, error)

	// RemoveItemsTx deletes the listed lines within the provided transaction. Lines added
	// after they were read are left in place.
	RemoveItemsTx(ctx context.Context, tx pgx.Tx, userID string, itemIDs []uuid.UUID) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction. A taken order code
	// yields ErrDuplicateOrderCode and leaves the transaction usable.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	// It returns nil, nil, nil when the order does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)

	// UpdateStatus moves an order from one status to another.
	// The update only applies while the stored status still equals from; otherwise
	// model.ErrInvalidStatusTransition is returned.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.OrderStatus, at time.Time) error
}

// NotificationRepository defines the data access operations for user notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	CreateTx(ctx context.Context, tx pgx.Tx, n *model.Notification) error

	// ListByUser retrieves a user's notifications, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Notification, error)

	// MarkRead flags a notification as read. It returns model.ErrNotificationNotFound
	// when the notification does not belong to the user.
	MarkRead(ctx context.Context, userID string, id uuid.UUID) error

	CountUnread(ctx context.Context, userID string) (int, error)
}

// UserRepository defines the data access operations for user profiles.
type UserRepository interface {
	// Get retrieves a profile. It returns nil, nil when none has been saved yet.
	Get(ctx context.Context, userID string) (*model.UserProfile, error)

	// Upsert creates or replaces a profile.
	Upsert(ctx context.Context, profile *model.UserProfile) error
}

package service

import (
	"context"

	"coffee-kart/internal/model"

	"github.com/google/uuid"
)

// CatalogService defines read access to the menu and catalogue seeding.
type CatalogService interface {
	// GetCatalog returns products, categories, sizes, toppings and the accepted sugar and ice levels.
	GetCatalog(ctx context.Context) (*model.Catalog, error)

	// ListProducts returns the products matching an optional category and free-text search.
	ListProducts(ctx context.Context, categoryID *string, search string) ([]model.Product, error)

	// GetProduct returns model.ErrProductNotFound when the product does not exist.
	GetProduct(ctx context.Context, id string) (*model.Product, error)

	// Seed validates a catalogue document and writes it to storage.
	Seed(ctx context.Context, catalog *model.Catalog) error
}

// CartService defines operations on the current user's cart.
// Every mutation publishes the resulting cart to realtime subscribers.
type CartService interface {
	GetCart(ctx context.Context, userID string) (*model.CartResponse, error)
	AddToCart(ctx context.Context, userID string, req *model.AddToCartRequest) (*model.CartResponse, error)
	UpdateQuantity(ctx context.Context, userID string, itemID uuid.UUID, quantity int) (*model.CartResponse, error)
	RemoveItem(ctx context.Context, userID string, itemID uuid.UUID) (*model.CartResponse, error)
	ClearCart(ctx context.Context, userID string) (*model.CartResponse, error)

	// Subscribe follows the user's cart. Call the returned func to stop.
	Subscribe(ctx context.Context, userID string) (<-chan model.CartResponse, func(), error)
}

// OrderService defines checkout and the order lifecycle.
type OrderService interface {
	// Checkout turns the user's cart into an order and empties the cart.
	Checkout(ctx context.Context, userID string, req *model.CheckoutRequest) (*model.OrderResponse, error)

	// ConfirmTransfer records that the customer has sent the bank transfer for an order.
	ConfirmTransfer(ctx context.Context, userID string, orderID uuid.UUID) (*model.OrderResponse, error)

	// UpdateStatus applies a fulfilment transition.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) (*model.OrderResponse, error)

	// GetOrder returns model.ErrOrderNotFound when the order does not exist or belongs to someone else.
	GetOrder(ctx context.Context, userID string, orderID uuid.UUID) (*model.OrderResponse, error)

	// ListOrders returns the user's orders, newest first.
	ListOrders(ctx context.Context, userID string) ([]model.Order, error)
}

// NotificationService defines the user's notification inbox.
type NotificationService interface {
	List(ctx context.Context, userID string) (*model.NotificationListResponse, error)
	MarkRead(ctx context.Context, userID string, id uuid.UUID) error
	UnreadCount(ctx context.Context, userID string) (int, error)
	Notify(ctx context.Context, userID string, kind model.NotificationType, title, message string) (*model.Notification, error)
}

// ProfileService defines access to the current user's profile.
type ProfileService interface {
	// GetProfile returns an empty profile when the user has not saved one yet.
	GetProfile(ctx context.Context, userID string) (*model.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.UserProfile, error)
}

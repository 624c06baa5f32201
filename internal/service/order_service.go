package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"coffee-kart/internal/cart"
	"coffee-kart/internal/metrics"
	"coffee-kart/internal/model"
	"coffee-kart/internal/order"
	"coffee-kart/internal/realtime"
	"coffee-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// ShopSettings are the storefront values applied at checkout.
type ShopSettings struct {
	ShippingFee int64
	Bank        order.BankAccount
}

// orderService implements OrderService.
type orderService struct {
	orderRepo        repository.OrderRepository
	cartRepo         repository.CartRepository
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	notifier         NotificationService
	broker           realtime.CartBroker
	shop             ShopSettings
	logger           zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	notifier NotificationService,
	broker realtime.CartBroker,
	shop ShopSettings,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:        orderRepo,
		cartRepo:         cartRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		notifier:         notifier,
		broker:           broker,
		shop:             shop,
		logger:           logger.With().Str("service", "order").Logger(),
	}
}

// maxOrderCodeAttempts bounds how many order codes Checkout tries before giving up.
const maxOrderCodeAttempts = 5

// Checkout places an order for everything in the user's cart.
// The cart is read with its rows locked inside the order transaction and only those lines are
// removed, so a line added concurrently stays in the cart instead of being lost.
func (s *orderService) Checkout(ctx context.Context, userID string, req *model.CheckoutRequest) (resp *model.OrderResponse, err error) {
	if req == nil {
		return nil, fmt.Errorf("checkout request is nil")
	}

	status, err := order.InitialStatus(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	items, err := s.cartRepo.ListItemsTx(ctx, tx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to load cart for checkout")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(items) == 0 {
		return nil, model.ErrCartEmpty
	}

	profile, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil || strings.TrimSpace(profile.Address) == "" {
		s.logger.Warn().Str("user_id", userID).Msg("checkout without shipping address")
		return nil, model.ErrMissingAddress
	}

	subtotal := cart.Total(model.Cart{UserID: userID, Items: items})
	total, err := cart.CheckoutTotal(subtotal, s.shop.ShippingFee)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o := &model.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Subtotal:        subtotal,
		ShippingFee:     s.shop.ShippingFee,
		TotalAmount:     total,
		PaymentMethod:   req.PaymentMethod,
		Status:          status,
		CustomerName:    profile.DisplayName,
		CustomerPhone:   profile.PhoneNumber,
		ShippingAddress: profile.Address,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err = s.createOrder(ctx, tx, o); err != nil {
		return nil, err
	}

	orderItems := make([]model.OrderItem, len(items))
	itemIDs := make([]uuid.UUID, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID
		orderItems[i] = model.OrderItem{
			ID:                   uuid.New(),
			OrderID:              o.ID,
			ProductID:            it.ProductID,
			ProductName:          it.ProductName,
			ImageURL:             it.ImageURL,
			UnitPrice:            it.UnitPrice,
			Quantity:             it.Quantity,
			LineTotal:            it.LineTotal,
			SelectionDescription: it.SelectionDescription,
		}
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", o.ID.String()).
			Int("item_count", len(orderItems)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = s.cartRepo.RemoveItemsTx(ctx, tx, userID, itemIDs); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	notification := &model.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     "Xác nhận đơn hàng",
		Message:   fmt.Sprintf("Đơn hàng #%s đã được tiếp nhận. Chúng tôi đang chuẩn bị món cho bạn.", o.OrderCode),
		Type:      model.NotificationTypeOrder,
		CreatedAt: now,
	}

	if err = s.notificationRepo.CreateTx(ctx, tx, notification); err != nil {
		return nil, fmt.Errorf("failed to record notification: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", o.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	metrics.RecordOrderPlaced(string(o.PaymentMethod), o.TotalAmount)
	s.publishRemaining(ctx, userID)

	s.logger.Info().
		Str("order_id", o.ID.String()).
		Str("order_code", o.OrderCode).
		Str("payment_method", string(o.PaymentMethod)).
		Int64("total", o.TotalAmount).
		Int("item_count", len(orderItems)).
		Msg("order placed successfully")

	return s.respond(o, orderItems), nil
}

// createOrder inserts o under a fresh order code, drawing a new one while the code is taken.
func (s *orderService) createOrder(ctx context.Context, tx pgx.Tx, o *model.Order) error {
	for attempt := 1; attempt <= maxOrderCodeAttempts; attempt++ {
		o.OrderCode = order.NewOrderCode()

		err := s.orderRepo.CreateOrder(ctx, tx, o)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateOrderCode) {
			return fmt.Errorf("failed to create order: %w", err)
		}

		s.logger.Warn().
			Str("order_code", o.OrderCode).
			Int("attempt", attempt).
			Msg("order code collision")
	}

	return fmt.Errorf("failed to create order: no free order code after %d attempts", maxOrderCodeAttempts)
}

// publishRemaining pushes the cart left after checkout. It is usually empty; lines added while
// the order was being placed are still there.
func (s *orderService) publishRemaining(ctx context.Context, userID string) {
	items, err := s.cartRepo.ListItems(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to reload cart after checkout")
		return
	}

	c := model.Cart{UserID: userID, Items: items}
	pubErr := s.broker.Publish(ctx, model.CartResponse{UserID: userID, Items: items, Total: cart.Total(c)})
	metrics.RecordSnapshotPublished(pubErr)
	if pubErr != nil {
		s.logger.Warn().Err(pubErr).Str("user_id", userID).Msg("failed to publish cart after checkout")
	}
}

func (s *orderService) respond(o *model.Order, items []model.OrderItem) *model.OrderResponse {
	if items == nil {
		items = []model.OrderItem{}
	}
	resp := &model.OrderResponse{Order: *o, Items: items}
	if o.PaymentMethod == model.PaymentMethodBankTransfer {
		resp.PaymentURL = order.TransferQRURL(s.shop.Bank, o.TotalAmount, o.OrderCode)
	}
	return resp
}

func (s *orderService) ConfirmTransfer(ctx context.Context, userID string, orderID uuid.UUID) (*model.OrderResponse, error) {
	o, items, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, model.ErrOrderNotFound
	}
	if o.PaymentMethod != model.PaymentMethodBankTransfer {
		return nil, model.ErrInvalidStatusTransition
	}

	return s.transition(ctx, o, items, model.OrderStatusPending)
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) (*model.OrderResponse, error) {
	o, items, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}

	resp, err := s.transition(ctx, o, items, status)
	if err != nil {
		return nil, err
	}

	if order.IsTerminal(status) {
		s.notifyTerminal(ctx, o)
	}

	return resp, nil
}

func (s *orderService) notifyTerminal(ctx context.Context, o *model.Order) {
	message := fmt.Sprintf("Đơn hàng #%s đã hoàn thành. Cảm ơn bạn!", o.OrderCode)
	if o.Status == model.OrderStatusCancelled {
		message = fmt.Sprintf("Đơn hàng #%s đã bị huỷ.", o.OrderCode)
	}
	if _, err := s.notifier.Notify(ctx, o.UserID, model.NotificationTypeOrder, "Cập nhật đơn hàng", message); err != nil {
		s.logger.Warn().Err(err).Str("order_id", o.ID.String()).Msg("failed to notify status change")
	}
}

// transition validates and persists a status change, updating o in place.
func (s *orderService) transition(ctx context.Context, o *model.Order, items []model.OrderItem, to model.OrderStatus) (*model.OrderResponse, error) {
	from := o.Status
	next, err := order.Transition(from, to)
	if err != nil {
		s.logger.Warn().
			Str("order_id", o.ID.String()).
			Str("from", string(from)).
			Str("to", string(to)).
			Msg("rejected order status transition")
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.orderRepo.UpdateStatus(ctx, o.ID, from, next, now); err != nil {
		return nil, err
	}

	o.Status = next
	o.UpdatedAt = now
	metrics.RecordStatusTransition(string(from), string(next))

	s.logger.Info().
		Str("order_id", o.ID.String()).
		Str("from", string(from)).
		Str("to", string(next)).
		Msg("order status updated")

	return s.respond(o, items), nil
}

func (s *orderService) load(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	o, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, nil, fmt.Errorf("failed to get order: %w", err)
	}
	if o == nil {
		return nil, nil, model.ErrOrderNotFound
	}
	return o, items, nil
}

func (s *orderService) GetOrder(ctx context.Context, userID string, orderID uuid.UUID) (*model.OrderResponse, error) {
	o, items, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, model.ErrOrderNotFound
	}
	return s.respond(o, items), nil
}

func (s *orderService) ListOrders(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

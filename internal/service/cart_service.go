package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"coffee-kart/internal/cart"
	"coffee-kart/internal/metrics"
	"coffee-kart/internal/model"
	"coffee-kart/internal/pricing"
	"coffee-kart/internal/realtime"
	"coffee-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type cartService struct {
	cartRepo    repository.CartRepository
	catalogRepo repository.CatalogRepository
	broker      realtime.CartBroker
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	catalogRepo repository.CatalogRepository,
	broker realtime.CartBroker,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		broker:      broker,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) load(ctx context.Context, userID string) (model.Cart, error) {
	items, err := s.cartRepo.ListItems(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to load cart")
		return model.Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}
	return model.Cart{UserID: userID, Items: items}, nil
}

func toResponse(c model.Cart) *model.CartResponse {
	items := c.Items
	if items == nil {
		items = []model.CartLineItem{}
	}
	return &model.CartResponse{UserID: c.UserID, Items: items, Total: cart.Total(c)}
}

// publish pushes the snapshot to subscribers. Failures are logged, never returned:
// the write has already been committed.
func (s *cartService) publish(ctx context.Context, resp *model.CartResponse) {
	err := s.broker.Publish(ctx, *resp)
	metrics.RecordSnapshotPublished(err)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", resp.UserID).Msg("failed to publish cart snapshot")
	}
}

func (s *cartService) GetCart(ctx context.Context, userID string) (*model.CartResponse, error) {
	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

func (s *cartService) options(ctx context.Context) (pricing.Options, error) {
	sizes, err := s.catalogRepo.ListSizes(ctx)
	if err != nil {
		return pricing.Options{}, fmt.Errorf("failed to load sizes: %w", err)
	}
	toppings, err := s.catalogRepo.ListToppings(ctx)
	if err != nil {
		return pricing.Options{}, fmt.Errorf("failed to load toppings: %w", err)
	}
	return pricing.NewOptions(sizes, toppings)
}

func (s *cartService) AddToCart(ctx context.Context, userID string, req *model.AddToCartRequest) (*model.CartResponse, error) {
	if req.Quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}
	if req.Sugar != "" && !slices.Contains(model.SugarLevels, req.Sugar) {
		return nil, model.ErrInvalidSelection
	}
	if req.Ice != "" && !slices.Contains(model.IceLevels, req.Ice) {
		return nil, model.ErrInvalidSelection
	}

	product, err := s.catalogRepo.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		s.logger.Warn().Str("product_id", req.ProductID).Msg("add to cart for unknown product")
		return nil, model.ErrProductNotFound
	}

	opts, err := s.options(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load pricing options")
		return nil, err
	}

	size, ok := opts.Size(req.SizeID)
	if !ok {
		return nil, model.ErrInvalidSelection
	}

	current, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	sel := model.LineItemSelection{
		Product:    *product,
		Size:       size,
		ToppingIDs: req.ToppingIDs,
		Sugar:      req.Sugar,
		Ice:        req.Ice,
		Quantity:   req.Quantity,
	}

	updated, item, err := cart.AddItem(current, sel, opts, time.Now().UTC())
	if err != nil {
		s.logger.Warn().Err(err).Str("product_id", req.ProductID).Msg("selection rejected")
		return nil, err
	}

	if err := s.cartRepo.InsertItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	metrics.RecordCartItemAdded()

	s.logger.Info().
		Str("user_id", userID).
		Str("product_id", item.ProductID).
		Int64("unit_price", item.UnitPrice).
		Int("quantity", item.Quantity).
		Msg("item added to cart")

	resp := toResponse(updated)
	s.publish(ctx, resp)
	return resp, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID string, itemID uuid.UUID, quantity int) (*model.CartResponse, error) {
	current, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated, err := cart.UpdateQuantity(current, itemID, quantity)
	if err != nil {
		return nil, err
	}

	i := slices.IndexFunc(updated.Items, func(it model.CartLineItem) bool { return it.ID == itemID })
	if err := s.cartRepo.UpdateItem(ctx, updated.Items[i]); err != nil {
		return nil, err
	}

	resp := toResponse(updated)
	s.publish(ctx, resp)
	return resp, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID string, itemID uuid.UUID) (*model.CartResponse, error) {
	if err := s.cartRepo.DeleteItem(ctx, userID, itemID); err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}

	current, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := toResponse(cart.RemoveItem(current, itemID))
	s.publish(ctx, resp)
	return resp, nil
}

func (s *cartService) ClearCart(ctx context.Context, userID string) (*model.CartResponse, error) {
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	resp := toResponse(model.Cart{UserID: userID})
	s.publish(ctx, resp)
	return resp, nil
}

func (s *cartService) Subscribe(ctx context.Context, userID string) (<-chan model.CartResponse, func(), error) {
	return s.broker.Subscribe(ctx, userID)
}

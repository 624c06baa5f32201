package service

import (
	"context"
	"fmt"

	"coffee-kart/internal/catalog"
	"coffee-kart/internal/model"
	"coffee-kart/internal/repository"

	"github.com/rs/zerolog"
)

type catalogService struct {
	repo   repository.CatalogRepository
	logger zerolog.Logger
}

// NewCatalogService creates a new catalogue service.
func NewCatalogService(repo repository.CatalogRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		repo:   repo,
		logger: logger.With().Str("service", "catalog").Logger(),
	}
}

func (s *catalogService) GetCatalog(ctx context.Context) (*model.Catalog, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	sizes, err := s.repo.ListSizes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sizes: %w", err)
	}
	toppings, err := s.repo.ListToppings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load toppings: %w", err)
	}

	return &model.Catalog{
		Products:    products,
		Categories:  categories,
		Sizes:       sizes,
		Toppings:    toppings,
		SugarLevels: model.SugarLevels,
		IceLevels:   model.IceLevels,
	}, nil
}

func (s *catalogService) ListProducts(ctx context.Context, categoryID *string, search string) ([]model.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	filtered := catalog.Filter(products, categoryID, search)

	s.logger.Debug().
		Int("total", len(products)).
		Int("matched", len(filtered)).
		Str("search", search).
		Msg("products filtered")

	return filtered, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if p == nil {
		return nil, model.ErrProductNotFound
	}
	return p, nil
}

func (s *catalogService) Seed(ctx context.Context, c *model.Catalog) error {
	if err := catalog.Validate(c); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	if err := s.repo.Upsert(ctx, c); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	s.logger.Info().Int("products", len(c.Products)).Msg("catalog seeded")
	return nil
}

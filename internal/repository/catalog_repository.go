package repository

import (
	"context"
	"errors"
	"fmt"

	"coffee-kart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// catalogRepository implements the CatalogRepository interface using PostgreSQL.
type catalogRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCatalogRepository creates a new PostgreSQL-backed catalogue repository.
func NewCatalogRepository(pool *pgxpool.Pool, logger zerolog.Logger) CatalogRepository {
	return &catalogRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "catalog").Logger(),
	}
}

const productColumns = `p.id, p.name, p.description, p.base_price, p.category_id, p.image_url, p.created_at`

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.BasePrice, &p.CategoryID, &p.ImageURL, &p.CreatedAt)
}

// ListProducts retrieves every product ordered by category position and name.
func (r *catalogRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		ORDER BY c.position, p.name, p.id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetProduct retrieves a single product by its ID.
func (r *catalogRepository) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`

	var p model.Product
	if err := scanProduct(r.pool.QueryRow(ctx, query, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, position FROM categories ORDER BY position, id`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Category, error) {
		var c model.Category
		err := row.Scan(&c.ID, &c.Name, &c.Position)
		return c, err
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan categories")
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}

	return categories, nil
}

func (r *catalogRepository) ListSizes(ctx context.Context) ([]model.SizeOption, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, label, surcharge FROM sizes ORDER BY surcharge, id`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query sizes")
		return nil, fmt.Errorf("failed to query sizes: %w", err)
	}

	sizes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.SizeOption, error) {
		var s model.SizeOption
		err := row.Scan(&s.ID, &s.Label, &s.Surcharge)
		return s, err
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan sizes")
		return nil, fmt.Errorf("failed to scan sizes: %w", err)
	}

	return sizes, nil
}

func (r *catalogRepository) ListToppings(ctx context.Context) ([]model.ToppingOption, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, label, surcharge FROM toppings ORDER BY id`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query toppings")
		return nil, fmt.Errorf("failed to query toppings: %w", err)
	}

	toppings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ToppingOption, error) {
		var t model.ToppingOption
		err := row.Scan(&t.ID, &t.Label, &t.Surcharge)
		return t, err
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan toppings")
		return nil, fmt.Errorf("failed to scan toppings: %w", err)
	}

	return toppings, nil
}

// Upsert writes categories, sizes, toppings and products in a single transaction.
// Rows absent from the document are left in place so existing carts and orders keep resolving.
func (r *catalogRepository) Upsert(ctx context.Context, catalog *model.Catalog) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, c := range catalog.Categories {
		batch.Queue(`
			INSERT INTO categories (id, name, position) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, position = EXCLUDED.position
		`, c.ID, c.Name, c.Position)
	}
	for _, s := range catalog.Sizes {
		batch.Queue(`
			INSERT INTO sizes (id, label, surcharge) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET label = EXCLUDED.label, surcharge = EXCLUDED.surcharge
		`, s.ID, s.Label, s.Surcharge)
	}
	for _, t := range catalog.Toppings {
		batch.Queue(`
			INSERT INTO toppings (id, label, surcharge) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET label = EXCLUDED.label, surcharge = EXCLUDED.surcharge
		`, t.ID, t.Label, t.Surcharge)
	}
	for _, p := range catalog.Products {
		batch.Queue(`
			INSERT INTO products (id, name, description, base_price, category_id, image_url)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				description = EXCLUDED.description,
				base_price = EXCLUDED.base_price,
				category_id = EXCLUDED.category_id,
				image_url = EXCLUDED.image_url
		`, p.ID, p.Name, p.Description, p.BasePrice, p.CategoryID, p.ImageURL)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		r.logger.Error().Err(err).Msg("failed to upsert catalog")
		return fmt.Errorf("failed to upsert catalog: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}

	r.logger.Info().
		Int("categories", len(catalog.Categories)).
		Int("products", len(catalog.Products)).
		Int("sizes", len(catalog.Sizes)).
		Int("toppings", len(catalog.Toppings)).
		Msg("catalog upserted")

	return nil
}

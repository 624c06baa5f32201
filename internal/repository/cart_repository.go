package repository

import (
	"context"
	"fmt"

	"coffee-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

const cartItemsQuery = `
	SELECT id, user_id, product_id, product_name, image_url, unit_price,
	       quantity, line_total, selection_description, created_at
	FROM cart_items
	WHERE user_id = $1
	ORDER BY created_at, id
`

func (r *cartRepository) ListItems(ctx context.Context, userID string) ([]model.CartLineItem, error) {
	rows, err := r.pool.Query(ctx, cartItemsQuery, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	return r.collectItems(rows)
}

func (r *cartRepository) ListItemsTx(ctx context.Context, tx pgx.Tx, userID string) ([]model.CartLineItem, error) {
	rows, err := tx.Query(ctx, cartItemsQuery+" FOR UPDATE", userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to lock cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	return r.collectItems(rows)
}

func (r *cartRepository) collectItems(rows pgx.Rows) ([]model.CartLineItem, error) {
	defer rows.Close()

	items := []model.CartLineItem{}
	for rows.Next() {
		var it model.CartLineItem
		err := rows.Scan(&it.ID, &it.UserID, &it.ProductID, &it.ProductName, &it.ImageURL,
			&it.UnitPrice, &it.Quantity, &it.LineTotal, &it.SelectionDescription, &it.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

func (r *cartRepository) InsertItem(ctx context.Context, it model.CartLineItem) error {
	query := `
		INSERT INTO cart_items (id, user_id, product_id, product_name, image_url, unit_price,
		                        quantity, line_total, selection_description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query, it.ID, it.UserID, it.ProductID, it.ProductName, it.ImageURL,
		it.UnitPrice, it.Quantity, it.LineTotal, it.SelectionDescription, it.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", it.UserID).
			Str("product_id", it.ProductID).
			Msg("failed to insert cart item")
		return fmt.Errorf("failed to insert cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) UpdateItem(ctx context.Context, it model.CartLineItem) error {
	query := `
		UPDATE cart_items
		SET quantity = $3, line_total = $4
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, it.ID, it.UserID, it.Quantity, it.LineTotal)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", it.ID.String()).Msg("failed to update cart item")
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}

	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, userID string, itemID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("failed to delete cart item")
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (r *cartRepository) RemoveItemsTx(ctx context.Context, tx pgx.Tx, userID string, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}

	ids := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		ids[i] = id.String()
	}

	tag, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND id = ANY($2::uuid[])`, userID, ids)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to remove cart items in transaction")
		return fmt.Errorf("failed to remove cart items: %w", err)
	}

	r.logger.Debug().
		Str("user_id", userID).
		Int64("removed", tag.RowsAffected()).
		Msg("cart items removed")

	return nil
}

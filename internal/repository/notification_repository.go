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

type notificationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewNotificationRepository creates a new PostgreSQL-backed notification repository.
func NewNotificationRepository(pool *pgxpool.Pool, logger zerolog.Logger) NotificationRepository {
	return &notificationRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "notification").Logger(),
	}
}

const insertNotification = `
	INSERT INTO notifications (id, user_id, title, message, type, is_read, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	_, err := r.pool.Exec(ctx, insertNotification, n.ID, n.UserID, n.Title, n.Message, n.Type, n.IsRead, n.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", n.UserID).Msg("failed to create notification")
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) CreateTx(ctx context.Context, tx pgx.Tx, n *model.Notification) error {
	_, err := tx.Exec(ctx, insertNotification, n.ID, n.UserID, n.Title, n.Message, n.Type, n.IsRead, n.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", n.UserID).Msg("failed to create notification in transaction")
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	query := `
		SELECT id, user_id, title, message, type, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query notifications")
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}

	notifications, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Notification, error) {
		var n model.Notification
		err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt)
		return n, err
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan notifications")
		return nil, fmt.Errorf("failed to scan notifications: %w", err)
	}

	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID string, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("notification_id", id.String()).Msg("failed to mark notification read")
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to count unread notifications")
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

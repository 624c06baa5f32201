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

type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed profile repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

func (r *userRepository) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	query := `
		SELECT user_id, email, display_name, phone_number, address, role, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`

	var p model.UserProfile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Email, &p.DisplayName, &p.PhoneNumber, &p.Address, &p.Role, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query profile")
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	return &p, nil
}

// Upsert never changes an existing role; roles are managed out of band.
func (r *userRepository) Upsert(ctx context.Context, p *model.UserProfile) error {
	query := `
		INSERT INTO user_profiles (user_id, email, display_name, phone_number, address, role, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			email = EXCLUDED.email,
			display_name = EXCLUDED.display_name,
			phone_number = EXCLUDED.phone_number,
			address = EXCLUDED.address,
			updated_at = EXCLUDED.updated_at
		RETURNING role
	`

	role := p.Role
	if role == "" {
		role = model.UserRoleUser
	}

	err := r.pool.QueryRow(ctx, query, p.UserID, p.Email, p.DisplayName, p.PhoneNumber, p.Address, role, p.UpdatedAt).
		Scan(&p.Role)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", p.UserID).Msg("failed to upsert profile")
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"coffee-kart/internal/model"
	"coffee-kart/internal/repository"

	"github.com/rs/zerolog"
)

type profileService struct {
	repo   repository.UserRepository
	logger zerolog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(repo repository.UserRepository, logger zerolog.Logger) ProfileService {
	return &profileService{
		repo:   repo,
		logger: logger.With().Str("service", "profile").Logger(),
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if p == nil {
		return &model.UserProfile{UserID: userID, Role: model.UserRoleUser}, nil
	}
	return p, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.UserProfile, error) {
	p := &model.UserProfile{
		UserID:      userID,
		Email:       strings.TrimSpace(req.Email),
		DisplayName: strings.TrimSpace(req.DisplayName),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Address:     strings.TrimSpace(req.Address),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Bool("has_address", p.Address != "").Msg("profile updated")
	return p, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"coffee-kart/internal/model"
	"coffee-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type notificationService struct {
	repo   repository.NotificationRepository
	logger zerolog.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(repo repository.NotificationRepository, logger zerolog.Logger) NotificationService {
	return &notificationService{
		repo:   repo,
		logger: logger.With().Str("service", "notification").Logger(),
	}
}

func (s *notificationService) List(ctx context.Context, userID string) (*model.NotificationListResponse, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread := 0
	for _, n := range list {
		if !n.IsRead {
			unread++
		}
	}

	return &model.NotificationListResponse{Notifications: list, Unread: unread}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID string, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, userID, id)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

func (s *notificationService) Notify(ctx context.Context, userID string, kind model.NotificationType, title, message string) (*model.Notification, error) {
	n := &model.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      kind,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.logger.Debug().Str("user_id", userID).Str("type", string(kind)).Msg("notification created")
	return n, nil
}

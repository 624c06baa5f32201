// Package realtime fans cart snapshots out to every connected client of a user.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"coffee-kart/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CartBroker publishes cart snapshots and lets clients follow a user's cart.
type CartBroker interface {
	// Publish sends the snapshot to every subscriber of snapshot.UserID.
	Publish(ctx context.Context, snapshot model.CartResponse) error

	// Subscribe returns a channel of snapshots for userID. The returned func stops the
	// subscription; the channel is closed afterwards.
	Subscribe(ctx context.Context, userID string) (<-chan model.CartResponse, func(), error)

	// Close stops every open subscription.
	Close() error
}

type redisBroker struct {
	client    *redis.Client
	keyPrefix string
	logger    zerolog.Logger

	mu   sync.Mutex
	subs map[int]context.CancelFunc
	next int
}

// NewRedisBroker creates a broker on top of Redis pub/sub.
// Channels are named "<prefix>:cart:<userID>".
func NewRedisBroker(client *redis.Client, keyPrefix string, logger zerolog.Logger) CartBroker {
	if keyPrefix == "" {
		keyPrefix = "coffee-kart"
	}
	return &redisBroker{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    logger.With().Str("component", "cart_broker").Logger(),
		subs:      make(map[int]context.CancelFunc),
	}
}

func (b *redisBroker) channel(userID string) string {
	return fmt.Sprintf("%s:cart:%s", b.keyPrefix, userID)
}

func (b *redisBroker) Publish(ctx context.Context, snapshot model.CartResponse) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}

	channel := b.channel(snapshot.UserID)
	if err := b.client.Publish(ctx, channel, data).Err(); err != nil {
		b.logger.Error().Err(err).Str("channel", channel).Msg("failed to publish cart snapshot")
		return fmt.Errorf("failed to publish cart snapshot: %w", err)
	}

	b.logger.Debug().
		Str("user_id", snapshot.UserID).
		Int("items", len(snapshot.Items)).
		Msg("cart snapshot published")

	return nil
}

func (b *redisBroker) Subscribe(ctx context.Context, userID string) (<-chan model.CartResponse, func(), error) {
	channel := b.channel(userID)
	subCtx, cancel := context.WithCancel(ctx)

	pubsub := b.client.Subscribe(subCtx, channel)

	// Wait for the subscription to be confirmed so no publish is missed afterwards.
	if _, err := pubsub.Receive(subCtx); err != nil {
		cancel()
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = cancel
	b.mu.Unlock()

	out := make(chan model.CartResponse, 4)

	go func() {
		defer func() {
			_ = pubsub.Close()
			close(out)

			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		}()

		msgs := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var snapshot model.CartResponse
				if err := json.Unmarshal([]byte(msg.Payload), &snapshot); err != nil {
					b.logger.Warn().Err(err).Str("channel", channel).Msg("dropping malformed cart snapshot")
					continue
				}

				select {
				case out <- snapshot:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	b.logger.Debug().Str("channel", channel).Msg("subscribed to cart channel")

	return out, cancel, nil
}

func (b *redisBroker) Close() error {
	b.mu.Lock()
	for id, cancel := range b.subs {
		cancel()
		delete(b.subs, id)
	}
	b.mu.Unlock()
	return nil
}

package tenant

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// InvalidationChannel is the redis pub/sub channel carrying eviction
// signals. A message holds a node identifier, or EvictAll to flush the
// whole cache.
const InvalidationChannel = "dirbridge:invalidate"

// EvictAll is the message payload flushing every cached bundle.
const EvictAll = "*"

// Subscriber listens on the external invalidation channel and evicts
// the matching cache entries. Other dirbridge instances (or the
// operator) publish on the channel after changing node parameters.
type Subscriber struct {
	cache  *Cache
	client *redis.Client
}

// NewSubscriber connects to redis and verifies the connection.
func NewSubscriber(cache *Cache, addr, password string, db int) (*Subscriber, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Subscriber{cache: cache, client: client}, nil
}

// Run consumes invalidation messages until the context is cancelled.
func (s *Subscriber) Run(ctx context.Context) error {
	pubsub := s.client.Subscribe(ctx, InvalidationChannel)
	defer func() {
		if err := pubsub.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close invalidation subscription")
		}
	}()

	// Wait for the subscription to be established before consuming.
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", InvalidationChannel, err)
	}

	messages := pubsub.Channel()

	log.Info().Str("channel", InvalidationChannel).Msg("listening for configuration invalidations")

	for {
		select {
		case <-ctx.Done():
			return nil
		case message, ok := <-messages:
			if !ok {
				return nil
			}

			if message.Payload == EvictAll {
				s.cache.InvalidateAll()
				continue
			}

			s.cache.Invalidate(message.Payload)
		}
	}
}

// Publish sends an eviction signal for one node, or EvictAll.
func (s *Subscriber) Publish(ctx context.Context, nodeID string) error {
	if err := s.client.Publish(ctx, InvalidationChannel, nodeID).Err(); err != nil {
		return fmt.Errorf("failed to publish invalidation: %w", err)
	}

	return nil
}

// Close releases the redis connection.
func (s *Subscriber) Close() error {
	return s.client.Close()
}

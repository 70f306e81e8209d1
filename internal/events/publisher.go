// Package events publishes domain events to a Redis Stream for external
// consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Publisher publishes domain events to the blog events stream
type Publisher struct {
	rdb *redis.Client
}

// NewPublisher creates a new Publisher instance
func NewPublisher(redisURL string) (*Publisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	return &Publisher{rdb: redis.NewClient(opts)}, nil
}

// PublishNotificationCreated publishes a notification.created event and
// returns the stream message id
func (p *Publisher) PublishNotificationCreated(ctx context.Context, ev NotificationCreated) (string, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return "", fmt.Errorf("failed to marshal event: %w", err)
	}

	result := p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamBlogEvents,
		MaxLen: 10000,
		Approx: true,
		Values: map[string]any{
			"type":    "notification.created",
			"payload": string(payload),
		},
	})
	if err := result.Err(); err != nil {
		return "", fmt.Errorf("failed to publish event: %w", err)
	}

	return result.Val(), nil
}

// Close closes the Redis client connection
func (p *Publisher) Close() error {
	return p.rdb.Close()
}

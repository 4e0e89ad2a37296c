// Package notifier delivers in-app notifications to users. The production
// implementation publishes over Redis pub/sub so connected frontends pick
// notifications up in real time.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/dealclarity/clarity/pkg/protocol"
)

const channelPrefix = "clarity.notifications."

type RedisNotifier struct {
	client redis.UniversalClient
	logger *slog.Logger
}

var _ protocol.Notifier = (*RedisNotifier)(nil)

func NewRedisNotifier(redisURL string, logger *slog.Logger) (*RedisNotifier, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisNotifier{
		client: client,
		logger: logger.With("module", "notifier"),
	}, nil
}

type notificationMessage struct {
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

func (n *RedisNotifier) NotifyUser(ctx context.Context, userID string, notification protocol.Notification) error {
	payload, err := json.Marshal(notificationMessage{
		Title:     notification.Title,
		Message:   notification.Message,
		Data:      notification.Data,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	if err := n.client.Publish(ctx, channelPrefix+userID, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification for user %s: %w", userID, err)
	}

	n.logger.DebugContext(ctx, "Published notification", "user_id", userID, "title", notification.Title)

	return nil
}

func (n *RedisNotifier) Close() error {
	return n.client.Close()
}

package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Roster event types
const (
	TypeSignedUp     = "signed_up"
	TypeUnregistered = "unregistered"
)

// RosterEvent describes a committed roster change
type RosterEvent struct {
	ID           uuid.UUID `json:"id"`
	Type         string    `json:"type"`
	ActivityName string    `json:"activity"`
	Email        string    `json:"email"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// NewRosterEvent creates a roster event stamped with the current time
func NewRosterEvent(eventType, activityName, email string) RosterEvent {
	return RosterEvent{
		ID:           uuid.New(),
		Type:         eventType,
		ActivityName: activityName,
		Email:        email,
		OccurredAt:   time.Now().UTC(),
	}
}

// Publisher announces roster changes to interested consumers.
// Publishing happens after the change is committed and never undoes it.
type Publisher interface {
	Publish(ctx context.Context, event RosterEvent) error
}

// redisClient is the subset of *redis.Client used for publishing
type redisClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher publishes roster events as JSON on a Redis channel
type RedisPublisher struct {
	client  redisClient
	channel string
	logger  *zap.Logger
}

// NewRedisPublisher creates a publisher on the given channel
func NewRedisPublisher(client *redis.Client, channel string, logger *zap.Logger) *RedisPublisher {
	return newRedisPublisher(client, channel, logger)
}

func newRedisPublisher(client redisClient, channel string, logger *zap.Logger) *RedisPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisPublisher{client: client, channel: channel, logger: logger}
}

// Publish marshals event and sends it to the configured channel
func (p *RedisPublisher) Publish(ctx context.Context, event RosterEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal roster event: %w", err)
	}

	receivers, err := p.client.Publish(ctx, p.channel, data).Result()
	if err != nil {
		return fmt.Errorf("failed to publish roster event: %w", err)
	}

	p.logger.Debug("Roster event published",
		zap.String("channel", p.channel),
		zap.String("type", event.Type),
		zap.String("activity", event.ActivityName),
		zap.Int64("receivers", receivers))
	return nil
}

// NopPublisher discards every event. It is used when Redis is not configured.
type NopPublisher struct{}

// Publish implements Publisher
func (NopPublisher) Publish(context.Context, RosterEvent) error {
	return nil
}

// NewRedisClient parses url, connects and verifies the server answers a ping
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

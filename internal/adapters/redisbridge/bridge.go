package redisbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"AppEvents/internal/core/domain"
	"AppEvents/internal/core/ports"
)

const channelPrefix = "appevents."

type bridge struct {
	client *redis.Client
	log    zerolog.Logger
}

var _ ports.EventBridge = (*bridge)(nil) // Ensure compliance

// New connects to Redis. Published records go out as JSON on pub/sub channel
// "appevents.<event name>"; subscribers that aren't listening at publish time
// simply miss the event, which is fine for a lifecycle monitor.
func New(redisURL string, baseLogger *zerolog.Logger) (ports.EventBridge, error) {
	log := baseLogger.With().Str("component", "redis_bridge").Logger()

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing Redis URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	log.Info().Str("addr", opts.Addr).Msg("Connected to Redis")
	return &bridge{client: client, log: log}, nil
}

// Publish forwards one raised event.
func (b *bridge) Publish(ctx context.Context, rec *domain.EventRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling event record: %w", err)
	}

	channel := channelPrefix + rec.Event
	if err := b.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publishing to %s: %w", channel, err)
	}

	b.log.Debug().Str("channel", channel).Msg("Event bridged to Redis")
	return nil
}

// Close releases the Redis connection.
func (b *bridge) Close() error {
	return b.client.Close()
}

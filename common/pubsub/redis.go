package pubsub

import (
	"context"

	rediscommon "github.com/linkhive/socialgraph/common/redis"
)

// RedisPublisher publishes events on Redis pub/sub channels, one
// channel per topic. Redis guarantees ordered delivery per channel,
// which satisfies the reliable ordered per-topic primitive the fan-out
// relies on.
type RedisPublisher struct {
	client *rediscommon.Client
}

// NewRedisPublisher creates a Redis-backed publisher
func NewRedisPublisher(client *rediscommon.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Publish sends the payload on the topic's channel
func (p *RedisPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	return p.client.PublishEvent(ctx, topic, payload)
}

// Close closes the underlying Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

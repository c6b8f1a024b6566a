package main

import (
	"context"

	"github.com/linkhive/socialgraph/common/logger"
	"github.com/redis/go-redis/v9"
)

// topicPatterns covers every topic family the event layer publishes
var topicPatterns = []string{
	"feed/*",
	"posts/*",
	"users/*",
	"conversations/*",
}

// RedisSubscriber bridges Redis pub/sub into the hub: every message on
// a matching channel becomes an event on the channel's topic.
type RedisSubscriber struct {
	redis *redis.Client
	hub   *Hub
	log   *logger.Logger
}

// NewRedisSubscriber creates a new RedisSubscriber instance
func NewRedisSubscriber(redisClient *redis.Client, hub *Hub, log *logger.Logger) *RedisSubscriber {
	return &RedisSubscriber{
		redis: redisClient,
		hub:   hub,
		log:   log,
	}
}

// Start begins listening to the topic patterns. Blocks until the
// context is cancelled.
func (s *RedisSubscriber) Start(ctx context.Context) error {
	pubsub := s.redis.PSubscribe(ctx, topicPatterns...)
	defer pubsub.Close()

	// Wait for confirmation that the subscription was successful
	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}

	s.log.Info("redis subscriber started", "patterns", topicPatterns)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("redis subscriber stopping")
			return nil

		case msg := <-ch:
			if msg == nil {
				continue
			}

			s.hub.broadcast <- &Event{
				Topic: msg.Channel,
				Data:  []byte(msg.Payload),
			}
		}
	}
}

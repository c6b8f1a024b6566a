package pubsub

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
)

// KafkaPublisher publishes events to Kafka, one topic per pub/sub
// topic. Kafka preserves ordering within a partition; events carry the
// topic string as the message key so a topic always lands on the same
// partition.
type KafkaPublisher struct {
	producer sarama.SyncProducer
}

// NewKafkaPublisher creates a Kafka-backed publisher
func NewKafkaPublisher(brokers []string) (*KafkaPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Flush.Frequency = 50 * time.Millisecond

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return &KafkaPublisher{producer: producer}, nil
}

// Publish sends the payload to the Kafka topic
func (p *KafkaPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	_, _, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: sanitizeKafkaTopic(topic),
		Key:   sarama.StringEncoder(topic),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("publish to kafka topic %s: %w", topic, err)
	}
	return nil
}

// Close closes the producer
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// sanitizeKafkaTopic maps the slash-separated topic scheme onto legal
// Kafka topic names.
func sanitizeKafkaTopic(topic string) string {
	out := []byte(topic)
	for i, c := range out {
		if c == '/' {
			out[i] = '.'
		}
	}
	return string(out)
}

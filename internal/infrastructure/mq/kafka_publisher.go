package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/SidS12345/Family-Connections/internal/config"
)

// KafkaPublisher writes events asynchronously to a single topic.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher builds the writer from cfg. The connection is lazy; the
// first write dials the broker.
func NewKafkaPublisher(cfg *config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.HostPort),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           cfg.Timeout * time.Second,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			Async:                  true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					zap.L().Error("publish events failed", zap.Int("count", len(messages)), zap.Error(err))
				}
			},
		},
	}
}

// Publish queues event for delivery.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   event.key(),
		Value: value,
	})
}

// Close flushes pending writes.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// CreateTopic creates the event topic if the broker does not auto-create it.
func CreateTopic(cfg *config.KafkaConfig) error {
	conn, err := kafka.Dial("tcp", cfg.HostPort)
	if err != nil {
		return err
	}
	defer conn.Close()

	partitions := cfg.Partition
	if partitions <= 0 {
		partitions = 1
	}
	return conn.CreateTopics(kafka.TopicConfig{
		Topic:             cfg.Topic,
		NumPartitions:     partitions,
		ReplicationFactor: 1,
	})
}

// New returns the publisher selected by cfg.EventMode.
func New(cfg *config.KafkaConfig) Publisher {
	if cfg.EventMode == "kafka" {
		zap.L().Info("event publishing enabled", zap.String("broker", cfg.HostPort), zap.String("topic", cfg.Topic))
		return NewKafkaPublisher(cfg)
	}
	return NopPublisher{}
}

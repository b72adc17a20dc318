package mq

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/SidS12345/Family-Connections/internal/config"
)

// Consumer reads events back from the topic, e.g. for an audit trail.
type Consumer struct {
	reader *kafka.Reader
}

// NewConsumer joins groupID on the configured topic.
func NewConsumer(cfg *config.KafkaConfig, groupID string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{cfg.HostPort},
			Topic:          cfg.Topic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
	}
}

// Run calls handle for every event until ctx is cancelled.
// Undecodable messages are logged and skipped.
func (c *Consumer) Run(ctx context.Context, handle func(Event)) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return err
		}
		var event Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			zap.L().Warn("skip undecodable event",
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err))
			continue
		}
		handle(event)
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

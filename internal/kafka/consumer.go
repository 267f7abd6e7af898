package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/ncsdigital/contact-details-service/pkg/logger"
)

// EventHandler processes decoded contact change events. Handlers must be
// idempotent: delivery is at-least-once.
type EventHandler interface {
	HandleContactEvent(ctx context.Context, event ContactEvent) error
}

// Consumer reads contact change events in a consumer group and hands them to
// an EventHandler. Used by the search-sync process.
type Consumer struct {
	group   sarama.ConsumerGroup
	handler EventHandler
	log     *logger.Logger
}

// NewConsumer joins the configured consumer group on both contact topics.
func NewConsumer(cfg *Config, handler EventHandler, log *logger.Logger) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are not configured")
	}

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, NewSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer group: %w", err)
	}

	log.Infow("Kafka consumer group initialized", "brokers", cfg.Brokers, "group", cfg.GroupID)

	return &Consumer{
		group:   group,
		handler: handler,
		log:     log,
	}, nil
}

// Run consumes until the context is cancelled. Consume returns on every
// rebalance, so it is called in a loop.
func (c *Consumer) Run(ctx context.Context) error {
	topics := []string{TopicContactCreated, TopicContactUpdated}

	for {
		err := c.group.Consume(ctx, topics, &groupHandler{handler: c.handler, log: c.log})
		if err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			c.log.Errorw("Consumer group session ended with error", "error", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Close leaves the consumer group.
func (c *Consumer) Close() error {
	return c.group.Close()
}

type groupHandler struct {
	handler EventHandler
	log     *logger.Logger
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		var event ContactEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			// A malformed message cannot be retried into shape; log and skip.
			h.log.Errorw("Failed to decode contact event, skipping",
				"error", err, "topic", message.Topic, "offset", message.Offset)
			session.MarkMessage(message, "")
			continue
		}

		if err := h.handler.HandleContactEvent(session.Context(), event); err != nil {
			h.log.Errorw("Failed to handle contact event",
				"error", err, "topic", message.Topic, "contactID", event.ContactID)
			// Not marked: the message is redelivered on the next session.
			continue
		}

		session.MarkMessage(message, "")
	}
	return nil
}

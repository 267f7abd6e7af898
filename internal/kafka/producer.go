package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"github.com/ncsdigital/contact-details-service/pkg/logger"
)

// ContactEvent is the change notification published after a contact details
// write has committed.
type ContactEvent struct {
	ContactID    uuid.UUID `json:"contactId"`
	CustomerID   uuid.UUID `json:"customerId"`
	TouchpointID string    `json:"touchpointId"`
	ResourceURL  string    `json:"resourceUrl"`
	Timestamp    time.Time `json:"timestamp"`
}

// Producer publishes contact details change notifications. Delivery is
// best-effort and post-commit: a failed publish is logged by the caller, the
// committed write stands.
type Producer interface {
	PublishContactCreated(ctx context.Context, event ContactEvent) error
	PublishContactUpdated(ctx context.Context, event ContactEvent) error
	Close() error
}

type contactProducer struct {
	producer sarama.SyncProducer
	log      *logger.Logger
}

// NewProducer creates a sarama sync producer for contact change events.
func NewProducer(cfg *Config, log *logger.Logger) (Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are not configured")
	}

	producer, err := sarama.NewSyncProducer(cfg.Brokers, NewSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	log.Infow("Kafka producer initialized", "brokers", cfg.Brokers)

	return &contactProducer{
		producer: producer,
		log:      log,
	}, nil
}

// NewProducerFromSarama wraps an existing sarama producer. Used by tests.
func NewProducerFromSarama(producer sarama.SyncProducer, log *logger.Logger) Producer {
	return &contactProducer{
		producer: producer,
		log:      log,
	}
}

// PublishContactCreated publishes a creation notification.
func (p *contactProducer) PublishContactCreated(ctx context.Context, event ContactEvent) error {
	return p.publish(ctx, TopicContactCreated, event)
}

// PublishContactUpdated publishes a patch notification.
func (p *contactProducer) PublishContactUpdated(ctx context.Context, event ContactEvent) error {
	return p.publish(ctx, TopicContactUpdated, event)
}

// publish sends an event keyed by customer id, so all events for one
// customer land on the same partition and keep their order.
func (p *contactProducer) publish(ctx context.Context, topic string, event ContactEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("kafka: context cancelled before publish: %w", err)
	}

	messageValue, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: failed to marshal contact event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(event.CustomerID.String()),
		Value: sarama.ByteEncoder(messageValue),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("event_type"),
				Value: []byte(topic),
			},
		},
		Timestamp: time.Now(),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("kafka: failed to publish contact event: %w", err)
	}

	p.log.Infow("Published contact event",
		"topic", topic,
		"contactID", event.ContactID,
		"customerID", event.CustomerID,
		"partition", partition,
		"offset", offset,
	)

	return nil
}

// Close shuts down the underlying sarama producer.
func (p *contactProducer) Close() error {
	return p.producer.Close()
}

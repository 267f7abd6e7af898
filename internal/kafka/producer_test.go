package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncsdigital/contact-details-service/pkg/logger"
)

func testEvent() ContactEvent {
	return ContactEvent{
		ContactID:    uuid.New(),
		CustomerID:   uuid.New(),
		TouchpointID: "0000000042",
		ResourceURL:  "https://api.example.com/customers/x/ContactDetails/y",
		Timestamp:    time.Now().UTC(),
	}
}

func TestPublishContactCreated(t *testing.T) {
	config := NewSaramaConfig(&Config{Brokers: []string{"localhost:9092"}})
	mockProducer := mocks.NewSyncProducer(t, config)
	producer := NewProducerFromSarama(mockProducer, logger.New(logger.ERROR))

	event := testEvent()
	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, TopicContactCreated, msg.Topic)

		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, event.CustomerID.String(), string(key))

		value, err := msg.Value.Encode()
		require.NoError(t, err)
		var decoded ContactEvent
		require.NoError(t, json.Unmarshal(value, &decoded))
		assert.Equal(t, event.ContactID, decoded.ContactID)
		assert.Equal(t, event.ResourceURL, decoded.ResourceURL)
		return nil
	})

	err := producer.PublishContactCreated(context.Background(), event)
	require.NoError(t, err)
	require.NoError(t, producer.Close())
}

func TestPublishContactUpdatedFailure(t *testing.T) {
	config := NewSaramaConfig(&Config{Brokers: []string{"localhost:9092"}})
	mockProducer := mocks.NewSyncProducer(t, config)
	producer := NewProducerFromSarama(mockProducer, logger.New(logger.ERROR))

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := producer.PublishContactUpdated(context.Background(), testEvent())
	assert.Error(t, err)
	require.NoError(t, producer.Close())
}

func TestPublishCancelledContext(t *testing.T) {
	config := NewSaramaConfig(&Config{Brokers: []string{"localhost:9092"}})
	mockProducer := mocks.NewSyncProducer(t, config)
	producer := NewProducerFromSarama(mockProducer, logger.New(logger.ERROR))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := producer.PublishContactCreated(ctx, testEvent())
	assert.Error(t, err)
	require.NoError(t, producer.Close())
}

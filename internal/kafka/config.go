package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

// Kafka topics carrying contact details change notifications.
const (
	TopicContactCreated = "contact-details.created"
	TopicContactUpdated = "contact-details.updated"
)

// Config holds the Kafka settings shared by the producer and the search-sync
// consumer.
type Config struct {
	Brokers      []string
	GroupID      string
	WriteTimeout time.Duration
}

// NewSaramaConfig builds the sarama configuration used by both sides.
func NewSaramaConfig(cfg *Config) *sarama.Config {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Version = sarama.V3_3_0_0

	// Producer settings
	saramaConfig.Producer.MaxMessageBytes = 1000000
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	if cfg.WriteTimeout > 0 {
		saramaConfig.Producer.Timeout = cfg.WriteTimeout
		saramaConfig.Net.WriteTimeout = cfg.WriteTimeout
	}

	// Consumer settings
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRange()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Return.Errors = true

	return saramaConfig
}

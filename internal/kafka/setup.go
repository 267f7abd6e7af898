package kafka

import (
	"errors"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/ncsdigital/contact-details-service/pkg/logger"
)

// EnsureTopics creates the contact event topics if they do not exist yet.
func EnsureTopics(cfg *Config, log *logger.Logger) error {
	if len(cfg.Brokers) == 0 || cfg.Brokers[0] == "" {
		return errors.New("kafka broker address is empty")
	}

	admin, err := sarama.NewClusterAdmin(cfg.Brokers, NewSaramaConfig(cfg))
	if err != nil {
		return fmt.Errorf("kafka admin connection failed: %w", err)
	}
	defer admin.Close()

	existing, err := admin.ListTopics()
	if err != nil {
		return fmt.Errorf("kafka list topics failed: %w", err)
	}

	required := map[string]*sarama.TopicDetail{
		TopicContactCreated: {NumPartitions: 3, ReplicationFactor: 1},
		TopicContactUpdated: {NumPartitions: 3, ReplicationFactor: 1},
	}

	for topic, detail := range required {
		if _, ok := existing[topic]; ok {
			log.Debugw("Topic already exists", "topic", topic)
			continue
		}

		err := admin.CreateTopic(topic, detail, false)
		if err != nil {
			var topicErr *sarama.TopicError
			if errors.As(err, &topicErr) && topicErr.Err == sarama.ErrTopicAlreadyExists {
				log.Warnw("Topic already existed during creation attempt", "topic", topic)
				continue
			}
			return fmt.Errorf("kafka create topic %s failed: %w", topic, err)
		}
		log.Infow("Created topic", "topic", topic)
	}

	return nil
}

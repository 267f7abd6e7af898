package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ncsdigital/contact-details-service/internal/domain"
	"github.com/ncsdigital/contact-details-service/pkg/logger"
)

// Key prefixes for the search index entries.
const (
	documentKeyPrefix = "contact-search:"
	emailKeyPrefix    = "contact-search:email:"
)

// Document is the denormalized record kept in the search index.
type Document struct {
	CustomerID             uuid.UUID  `json:"customerId"`
	ContactID              uuid.UUID  `json:"contactId"`
	PreferredContactMethod string     `json:"preferredContactMethod,omitempty"`
	MobileNumber           string     `json:"mobileNumber,omitempty"`
	HomeNumber             string     `json:"homeNumber,omitempty"`
	AlternativeNumber      string     `json:"alternativeNumber,omitempty"`
	EmailAddress           string     `json:"emailAddress,omitempty"`
	LastModifiedDate       *time.Time `json:"lastModifiedDate,omitempty"`
}

// DocumentFromContact maps a contact details record into its search shape.
func DocumentFromContact(details *domain.ContactDetails) Document {
	doc := Document{
		CustomerID:       details.CustomerID,
		ContactID:        details.ContactID,
		LastModifiedDate: details.LastModifiedDate,
	}
	if details.PreferredContactMethod != nil {
		doc.PreferredContactMethod = details.PreferredContactMethod.String()
	}
	if details.MobileNumber != nil {
		doc.MobileNumber = *details.MobileNumber
	}
	if details.HomeNumber != nil {
		doc.HomeNumber = *details.HomeNumber
	}
	if details.AlternativeNumber != nil {
		doc.AlternativeNumber = *details.AlternativeNumber
	}
	if details.EmailAddress != nil {
		doc.EmailAddress = *details.EmailAddress
	}
	return doc
}

// RedisIndex writes search documents to Redis.
type RedisIndex struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRedisIndex connects to Redis and verifies the connection.
func NewRedisIndex(redisAddr, redisPassword string, redisDB int, log *logger.Logger) (*RedisIndex, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Errorw("Failed to connect to Redis", "error", err)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Infow("Connected to Redis successfully", "addr", redisAddr)
	return &RedisIndex{
		client: client,
		log:    log,
	}, nil
}

// Close closes the Redis connection.
func (r *RedisIndex) Close() error {
	return r.client.Close()
}

// Upsert writes the document under its customer key and maintains an
// email-to-customer reverse entry for lookups by address.
func (r *RedisIndex) Upsert(ctx context.Context, doc Document) error {
	key := documentKeyPrefix + doc.CustomerID.String()

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal search document: %w", err)
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		r.log.Errorw("Failed to write search document", "error", err, "customerID", doc.CustomerID)
		return fmt.Errorf("failed to write search document: %w", err)
	}

	if doc.EmailAddress != "" {
		emailKey := emailKeyPrefix + strings.ToLower(doc.EmailAddress)
		if err := r.client.Set(ctx, emailKey, doc.CustomerID.String(), 0).Err(); err != nil {
			r.log.Errorw("Failed to write email index entry", "error", err, "customerID", doc.CustomerID)
			return fmt.Errorf("failed to write email index entry: %w", err)
		}
	}

	r.log.Debugw("Search document upserted", "customerID", doc.CustomerID, "contactID", doc.ContactID)
	return nil
}

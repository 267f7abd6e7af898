package search

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ncsdigital/contact-details-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestDocumentFromContact(t *testing.T) {
	method := domain.MethodWhatsApp
	modified := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	details := &domain.ContactDetails{
		ContactID:              uuid.New(),
		CustomerID:             uuid.New(),
		PreferredContactMethod: &method,
		MobileNumber:           strPtr("07700900123"),
		EmailAddress:           strPtr("x@y.com"),
		LastModifiedDate:       &modified,
	}

	doc := DocumentFromContact(details)

	assert.Equal(t, details.ContactID, doc.ContactID)
	assert.Equal(t, details.CustomerID, doc.CustomerID)
	assert.Equal(t, "WhatsApp", doc.PreferredContactMethod)
	assert.Equal(t, "07700900123", doc.MobileNumber)
	assert.Equal(t, "x@y.com", doc.EmailAddress)
	assert.Equal(t, &modified, doc.LastModifiedDate)
	assert.Empty(t, doc.HomeNumber)
	assert.Empty(t, doc.AlternativeNumber)
}

func TestDocumentFromContactSparseRecord(t *testing.T) {
	details := &domain.ContactDetails{
		ContactID:  uuid.New(),
		CustomerID: uuid.New(),
	}

	doc := DocumentFromContact(details)

	assert.Empty(t, doc.PreferredContactMethod)
	assert.Empty(t, doc.EmailAddress)
	assert.Nil(t, doc.LastModifiedDate)
}

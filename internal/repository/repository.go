package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ncsdigital/contact-details-service/internal/domain"
)

// ContactRepository is the storage surface for contact details records.
// "Not found" is reported through ErrNotFound, never as a raw driver error.
type ContactRepository interface {
	// GetByCustomer returns the single record owned by a customer.
	GetByCustomer(ctx context.Context, customerID uuid.UUID) (*domain.ContactDetails, error)

	// Get returns the record matching both identifiers.
	Get(ctx context.Context, customerID, contactID uuid.UUID) (*domain.ContactDetails, error)

	// GetByEmail returns every record holding the email address, across all
	// customers. Used by the active-uniqueness check.
	GetByEmail(ctx context.Context, email string) ([]domain.ContactDetails, error)

	// Create inserts a new record. ErrDuplicate when the contact id or the
	// customer's one-record slot is already taken.
	Create(ctx context.Context, details *domain.ContactDetails) error

	// Replace overwrites the record identified by details.ContactID.
	// ErrNotFound when the record vanished between read and write.
	Replace(ctx context.Context, details *domain.ContactDetails) error
}

// CustomerReader answers existence and read-only questions about customers
// and their linked digital identities. Both live in stores owned by other
// services; this one only reads.
type CustomerReader interface {
	// GetCustomer returns the customer or ErrNotFound.
	GetCustomer(ctx context.Context, customerID uuid.UUID) (*domain.Customer, error)

	// HasDigitalIdentity reports whether the customer has a linked login.
	HasDigitalIdentity(ctx context.Context, customerID uuid.UUID) (bool, error)
}

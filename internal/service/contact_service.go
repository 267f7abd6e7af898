// Package service orchestrates the contact details workflows: touchpoint
// and validation gates, customer existence and read-only checks, conflict
// and email-uniqueness checks, persistence and the post-commit notification.
//
// The email-uniqueness check is read-then-write with no transactional guard;
// two concurrent writes can both pass it. That race is accepted, matching
// the platform contract. Notification publishing is equally best-effort:
// fire after commit, no retry, no compensation.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ncsdigital/contact-details-service/internal/domain"
	"github.com/ncsdigital/contact-details-service/internal/kafka"
	"github.com/ncsdigital/contact-details-service/internal/metrics"
	"github.com/ncsdigital/contact-details-service/internal/repository"
	"github.com/ncsdigital/contact-details-service/internal/validation"
	"github.com/ncsdigital/contact-details-service/pkg/logger"
)

// ContactService is the workflow surface for contact details.
type ContactService interface {
	GetByCustomer(ctx context.Context, customerID uuid.UUID) (*domain.ContactDetails, error)
	Get(ctx context.Context, customerID, contactID uuid.UUID) (*domain.ContactDetails, error)
	Create(ctx context.Context, customerID uuid.UUID, touchpointID, apimURL string, details *domain.ContactDetails) (*domain.ContactDetails, error)
	Patch(ctx context.Context, customerID, contactID uuid.UUID, touchpointID string, patch *domain.ContactDetailsPatch) (*domain.ContactDetails, error)
}

type contactService struct {
	contacts     repository.ContactRepository
	customers    repository.CustomerReader
	validator    *validation.Validator
	producer     kafka.Producer
	metrics      metrics.ContactMetrics
	log          *logger.Logger
	baseURL      string
	queryTimeout time.Duration
}

// NewContactService wires the contact details workflows. producer may be nil
// when Kafka is unavailable; writes then proceed without notifications.
func NewContactService(
	contacts repository.ContactRepository,
	customers repository.CustomerReader,
	validator *validation.Validator,
	producer kafka.Producer,
	contactMetrics metrics.ContactMetrics,
	log *logger.Logger,
	baseURL string,
	queryTimeout time.Duration,
) ContactService {
	return &contactService{
		contacts:     contacts,
		customers:    customers,
		validator:    validator,
		producer:     producer,
		metrics:      contactMetrics,
		log:          log,
		baseURL:      baseURL,
		queryTimeout: queryTimeout,
	}
}

// GetByCustomer returns the customer's contact details. Absent customer or
// record both surface as not-found; the handler renders them as 204.
func (s *contactService) GetByCustomer(ctx context.Context, customerID uuid.UUID) (*domain.ContactDetails, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.getCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	details, err := s.contacts.GetByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrContactNotFound
		}
		s.log.Errorw("Failed to read contact details", "error", err, "customerID", customerID)
		return nil, domain.ErrInternal
	}

	return details, nil
}

// Get returns the contact details matching both identifiers.
func (s *contactService) Get(ctx context.Context, customerID, contactID uuid.UUID) (*domain.ContactDetails, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.getCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	details, err := s.contacts.Get(ctx, customerID, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrContactNotFound
		}
		s.log.Errorw("Failed to read contact details", "error", err, "customerID", customerID, "contactID", contactID)
		return nil, domain.ErrInternal
	}

	return details, nil
}

// Create runs the creation workflow and returns the persisted record.
func (s *contactService) Create(ctx context.Context, customerID uuid.UUID, touchpointID, apimURL string, details *domain.ContactDetails) (*domain.ContactDetails, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if touchpointID == "" {
		return nil, domain.ErrTouchpointMissing
	}

	// Path and header values always win over whatever the body carried.
	details.CustomerID = customerID
	details.LastModifiedTouchpointID = touchpointID

	if findings := s.validator.ValidateCreate(details); findings.HasErrors() {
		s.metrics.IncOperation("create", "validation_failed")
		return nil, findings
	}

	customer, err := s.getCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if customer.ReadOnly() {
		s.metrics.IncOperation("create", "read_only")
		return nil, domain.ErrCustomerReadOnly
	}

	_, err = s.contacts.GetByCustomer(ctx, customerID)
	if err == nil {
		s.metrics.IncOperation("create", "conflict")
		return nil, domain.ErrContactExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.log.Errorw("Failed to check for existing contact details", "error", err, "customerID", customerID)
		return nil, domain.ErrInternal
	}

	if details.EmailAddress != nil && *details.EmailAddress != "" {
		inUse, err := s.emailInUse(ctx, *details.EmailAddress, customerID)
		if err != nil {
			return nil, err
		}
		if inUse {
			s.metrics.IncOperation("create", "email_conflict")
			return nil, domain.ErrEmailInUse
		}
	}

	details.SetDefaults()

	if err := s.contacts.Create(ctx, details); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.metrics.IncOperation("create", "conflict")
			return nil, domain.ErrContactExists
		}
		s.log.Errorw("Failed to persist contact details", "error", err, "customerID", customerID)
		s.metrics.IncOperation("create", "persistence_failed")
		return nil, domain.ErrPersistence
	}

	s.metrics.IncOperation("create", "created")
	s.publish(ctx, true, details, apimURL)

	return details, nil
}

// Patch runs the partial-update workflow and returns the updated record.
func (s *contactService) Patch(ctx context.Context, customerID, contactID uuid.UUID, touchpointID string, patch *domain.ContactDetailsPatch) (*domain.ContactDetails, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if touchpointID == "" {
		return nil, domain.ErrTouchpointMissing
	}

	// Format, temporal and enum rules run before any storage access; the
	// digital-identity guard needs the stored record and runs below.
	if findings := s.validator.ValidatePatch(patch, nil, false); findings.HasErrors() {
		s.metrics.IncOperation("patch", "validation_failed")
		return nil, findings
	}

	if _, err := s.getCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	stored, err := s.contacts.Get(ctx, customerID, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrContactNotFound
		}
		s.log.Errorw("Failed to read contact details", "error", err, "customerID", customerID, "contactID", contactID)
		return nil, domain.ErrInternal
	}

	hasIdentity, err := s.customers.HasDigitalIdentity(ctx, customerID)
	if err != nil {
		s.log.Errorw("Failed to check digital identity", "error", err, "customerID", customerID)
		return nil, domain.ErrInternal
	}

	if findings := s.validator.ValidatePatch(patch, stored, hasIdentity); findings.HasErrors() {
		s.metrics.IncOperation("patch", "validation_failed")
		return nil, findings
	}

	if patch.EmailAddress != nil && *patch.EmailAddress != "" && !sameEmail(stored.EmailAddress, *patch.EmailAddress) {
		inUse, err := s.emailInUse(ctx, *patch.EmailAddress, customerID)
		if err != nil {
			return nil, err
		}
		if inUse {
			s.metrics.IncOperation("patch", "email_conflict")
			return nil, domain.ErrEmailInUse
		}
	}

	patch.Apply(stored, touchpointID)

	if err := s.contacts.Replace(ctx, stored); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Deleted between read and write; soft-404 like any other absence.
			return nil, domain.ErrContactNotFound
		}
		s.log.Errorw("Failed to persist patched contact details", "error", err, "customerID", customerID, "contactID", contactID)
		s.metrics.IncOperation("patch", "persistence_failed")
		return nil, domain.ErrPersistence
	}

	s.metrics.IncOperation("patch", "updated")
	s.publish(ctx, false, stored, "")

	return stored, nil
}

// getCustomer maps the repository's not-found onto the soft-404 taxonomy.
func (s *contactService) getCustomer(ctx context.Context, customerID uuid.UUID) (*domain.Customer, error) {
	customer, err := s.customers.GetCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		s.log.Errorw("Failed to read customer", "error", err, "customerID", customerID)
		return nil, domain.ErrInternal
	}
	return customer, nil
}

// emailInUse reports whether another active (non-terminated) customer
// currently holds the email address. Best-effort: no lock is taken between
// this check and the following write.
func (s *contactService) emailInUse(ctx context.Context, email string, customerID uuid.UUID) (bool, error) {
	holders, err := s.contacts.GetByEmail(ctx, email)
	if err != nil {
		s.log.Errorw("Failed to query contact details by email", "error", err)
		return false, domain.ErrInternal
	}

	for _, holder := range holders {
		if holder.CustomerID == customerID {
			continue
		}

		owner, err := s.customers.GetCustomer(ctx, holder.CustomerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Orphaned record; its owner cannot block the address.
				continue
			}
			s.log.Errorw("Failed to read email holder's customer", "error", err, "customerID", holder.CustomerID)
			return false, domain.ErrInternal
		}

		if !owner.ReadOnly() {
			return true, nil
		}
	}

	return false, nil
}

// publish sends the change notification. Failures are logged and swallowed:
// the write has already committed and is never rolled back for a lost event.
func (s *contactService) publish(ctx context.Context, created bool, details *domain.ContactDetails, apimURL string) {
	if s.producer == nil {
		return
	}

	event := kafka.ContactEvent{
		ContactID:    details.ContactID,
		CustomerID:   details.CustomerID,
		TouchpointID: details.LastModifiedTouchpointID,
		ResourceURL:  s.resourceURL(apimURL, details),
		Timestamp:    time.Now().UTC(),
	}

	var err error
	if created {
		err = s.producer.PublishContactCreated(ctx, event)
	} else {
		err = s.producer.PublishContactUpdated(ctx, event)
	}
	if err != nil {
		s.log.Errorw("Best-effort notification publish failed",
			"error", err, "contactID", details.ContactID, "customerID", details.CustomerID)
	}
}

// resourceURL builds the notification's resource link. The caller-supplied
// base URL (from the POST header) wins over the configured one.
func (s *contactService) resourceURL(apimURL string, details *domain.ContactDetails) string {
	base := s.baseURL
	if apimURL != "" {
		base = apimURL
	}
	return fmt.Sprintf("%s/customers/%s/ContactDetails/%s",
		strings.TrimRight(base, "/"), details.CustomerID, details.ContactID)
}

func sameEmail(stored *string, incoming string) bool {
	return stored != nil && strings.EqualFold(*stored, incoming)
}

func (s *contactService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

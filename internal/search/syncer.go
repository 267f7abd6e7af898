package search

import (
	"context"
	"errors"

	"github.com/ncsdigital/contact-details-service/internal/kafka"
	"github.com/ncsdigital/contact-details-service/internal/repository"
	"github.com/ncsdigital/contact-details-service/pkg/logger"
)

// Index is the write surface the syncer needs from the search store.
type Index interface {
	Upsert(ctx context.Context, doc Document) error
}

// Syncer consumes contact change events and mirrors the current stored
// record into the search index. Reading back from the store rather than
// trusting the event payload makes redelivery harmless.
type Syncer struct {
	contacts repository.ContactRepository
	index    Index
	log      *logger.Logger
}

// NewSyncer creates a search syncer.
func NewSyncer(contacts repository.ContactRepository, index Index, log *logger.Logger) *Syncer {
	return &Syncer{
		contacts: contacts,
		index:    index,
		log:      log,
	}
}

// HandleContactEvent implements kafka.EventHandler.
func (s *Syncer) HandleContactEvent(ctx context.Context, event kafka.ContactEvent) error {
	details, err := s.contacts.Get(ctx, event.CustomerID, event.ContactID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Record gone between publish and sync; nothing to index.
			s.log.Warnw("Contact details no longer exist, skipping sync",
				"contactID", event.ContactID, "customerID", event.CustomerID)
			return nil
		}
		return err
	}

	return s.index.Upsert(ctx, DocumentFromContact(details))
}

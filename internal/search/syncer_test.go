package search

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncsdigital/contact-details-service/internal/domain"
	"github.com/ncsdigital/contact-details-service/internal/kafka"
	"github.com/ncsdigital/contact-details-service/internal/repository"
	"github.com/ncsdigital/contact-details-service/pkg/logger"
)

type stubContactRepo struct {
	details *domain.ContactDetails
	err     error
}

func (r *stubContactRepo) GetByCustomer(context.Context, uuid.UUID) (*domain.ContactDetails, error) {
	return r.details, r.err
}

func (r *stubContactRepo) Get(context.Context, uuid.UUID, uuid.UUID) (*domain.ContactDetails, error) {
	return r.details, r.err
}

func (r *stubContactRepo) GetByEmail(context.Context, string) ([]domain.ContactDetails, error) {
	return nil, nil
}

func (r *stubContactRepo) Create(context.Context, *domain.ContactDetails) error  { return nil }
func (r *stubContactRepo) Replace(context.Context, *domain.ContactDetails) error { return nil }

type recordingIndex struct {
	docs []Document
	fail error
}

func (i *recordingIndex) Upsert(_ context.Context, doc Document) error {
	if i.fail != nil {
		return i.fail
	}
	i.docs = append(i.docs, doc)
	return nil
}

func TestSyncerUpsertsStoredRecord(t *testing.T) {
	details := &domain.ContactDetails{
		ContactID:    uuid.New(),
		CustomerID:   uuid.New(),
		EmailAddress: strPtr("x@y.com"),
	}
	index := &recordingIndex{}
	syncer := NewSyncer(&stubContactRepo{details: details}, index, logger.New(logger.ERROR))

	event := kafka.ContactEvent{ContactID: details.ContactID, CustomerID: details.CustomerID}
	require.NoError(t, syncer.HandleContactEvent(context.Background(), event))

	require.Len(t, index.docs, 1)
	assert.Equal(t, details.CustomerID, index.docs[0].CustomerID)
	assert.Equal(t, "x@y.com", index.docs[0].EmailAddress)
}

func TestSyncerSkipsVanishedRecord(t *testing.T) {
	index := &recordingIndex{}
	syncer := NewSyncer(&stubContactRepo{err: repository.ErrNotFound}, index, logger.New(logger.ERROR))

	err := syncer.HandleContactEvent(context.Background(), kafka.ContactEvent{ContactID: uuid.New(), CustomerID: uuid.New()})
	require.NoError(t, err, "a vanished record is not an error")
	assert.Empty(t, index.docs)
}

func TestSyncerPropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("connection reset")
	syncer := NewSyncer(&stubContactRepo{err: storeErr}, &recordingIndex{}, logger.New(logger.ERROR))

	err := syncer.HandleContactEvent(context.Background(), kafka.ContactEvent{})
	assert.ErrorIs(t, err, storeErr)
}

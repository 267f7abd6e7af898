package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func methodPtr(m PreferredContactMethod) *PreferredContactMethod { return &m }

func TestSetDefaults(t *testing.T) {
	details := &ContactDetails{CustomerID: uuid.New()}
	details.SetDefaults()

	assert.NotEqual(t, uuid.Nil, details.ContactID)
	require.NotNil(t, details.LastModifiedDate)
	assert.WithinDuration(t, time.Now().UTC(), *details.LastModifiedDate, time.Minute)
	require.NotNil(t, details.PreferredContactMethod)
	assert.Equal(t, MethodNotKnown, *details.PreferredContactMethod)
}

func TestSetDefaultsKeepsSuppliedValues(t *testing.T) {
	pinned := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	details := &ContactDetails{
		PreferredContactMethod: methodPtr(MethodEmail),
		LastModifiedDate:       &pinned,
	}
	details.SetDefaults()

	assert.Equal(t, pinned, *details.LastModifiedDate)
	assert.Equal(t, MethodEmail, *details.PreferredContactMethod)
}

func TestSetDefaultsReplacesSuppliedContactID(t *testing.T) {
	supplied := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	details := &ContactDetails{ContactID: supplied}
	details.SetDefaults()

	assert.NotEqual(t, uuid.Nil, details.ContactID)
	assert.NotEqual(t, supplied, details.ContactID, "contact id is server-assigned")
}

func TestPatchApplyOverwritesOnlyProvidedFields(t *testing.T) {
	stored := &ContactDetails{
		ContactID:              uuid.New(),
		CustomerID:             uuid.New(),
		PreferredContactMethod: methodPtr(MethodTelephone),
		HomeNumber:             strPtr("02079460123"),
		EmailAddress:           strPtr("old@example.com"),
	}

	patch := &ContactDetailsPatch{
		MobileNumber: strPtr("07700900123"),
		EmailAddress: strPtr("new@example.com"),
	}

	patch.Apply(stored, "0000000999")

	assert.Equal(t, "07700900123", *stored.MobileNumber)
	assert.Equal(t, "new@example.com", *stored.EmailAddress)
	assert.Equal(t, "02079460123", *stored.HomeNumber, "untouched field must survive")
	assert.Equal(t, MethodTelephone, *stored.PreferredContactMethod)
	assert.Equal(t, "0000000999", stored.LastModifiedTouchpointID)
	require.NotNil(t, stored.LastModifiedDate)
}

func TestPatchApplyEmptyStringLeavesStoredValue(t *testing.T) {
	stored := &ContactDetails{EmailAddress: strPtr("keep@example.com"), MobileNumber: strPtr("07700900123")}
	patch := &ContactDetailsPatch{EmailAddress: strPtr(""), MobileNumber: strPtr("")}

	patch.Apply(stored, "tp")

	assert.Equal(t, "keep@example.com", *stored.EmailAddress)
	assert.Equal(t, "07700900123", *stored.MobileNumber)
}

func TestPatchApplyIdempotent(t *testing.T) {
	pinned := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	patch := &ContactDetailsPatch{
		PreferredContactMethod: methodPtr(MethodMobile),
		MobileNumber:           strPtr("07700900456"),
		LastModifiedDate:       &pinned,
	}

	once := &ContactDetails{ContactID: uuid.New(), CustomerID: uuid.New()}
	patch.Apply(once, "tp")

	twice := &ContactDetails{ContactID: once.ContactID, CustomerID: once.CustomerID}
	patch.Apply(twice, "tp")
	patch.Apply(twice, "tp")

	assert.Equal(t, once, twice, "applying the same patch twice must match applying it once")
}

func TestPatchClearsEmail(t *testing.T) {
	assert.False(t, (&ContactDetailsPatch{}).ClearsEmail())
	assert.False(t, (&ContactDetailsPatch{EmailAddress: strPtr("a@b.com")}).ClearsEmail())
	assert.True(t, (&ContactDetailsPatch{EmailAddress: strPtr("")}).ClearsEmail())
}

func TestCustomerReadOnly(t *testing.T) {
	active := &Customer{ID: uuid.New()}
	assert.False(t, active.ReadOnly())

	terminated := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	gone := &Customer{ID: uuid.New(), DateOfTermination: &terminated}
	assert.True(t, gone.ReadOnly())
}

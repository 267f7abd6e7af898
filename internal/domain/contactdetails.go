package domain

import (
	"time"

	"github.com/google/uuid"
)

// Field limits enforced by validation.
const (
	MaxPhoneNumberLength  = 20
	MaxEmailAddressLength = 255
)

// ContactDetails is the per-customer contact record. Each customer holds at
// most one record; ContactID is assigned by the server on create and is
// immutable afterwards.
type ContactDetails struct {
	ContactID                uuid.UUID               `json:"contactId"`
	CustomerID               uuid.UUID               `json:"customerId"`
	PreferredContactMethod   *PreferredContactMethod `json:"preferredContactMethod,omitempty"`
	MobileNumber             *string                 `json:"mobileNumber,omitempty" validate:"omitempty,max=20,ukmobile"`
	HomeNumber               *string                 `json:"homeNumber,omitempty" validate:"omitempty,max=20"`
	AlternativeNumber        *string                 `json:"alternativeNumber,omitempty" validate:"omitempty,max=20"`
	EmailAddress             *string                 `json:"emailAddress,omitempty" validate:"omitempty,max=255,email"`
	LastModifiedDate         *time.Time              `json:"lastModifiedDate,omitempty"`
	LastModifiedTouchpointID string                  `json:"lastModifiedTouchpointId,omitempty"`
}

// SetDefaults fills the server-assigned fields on create: a fresh ContactID
// regardless of what the request carried, the current UTC time when no
// LastModifiedDate was supplied, and NotKnown when no preferred contact
// method was supplied.
func (c *ContactDetails) SetDefaults() {
	c.ContactID = uuid.New()
	if c.LastModifiedDate == nil {
		now := time.Now().UTC()
		c.LastModifiedDate = &now
	}
	if c.PreferredContactMethod == nil {
		notKnown := MethodNotKnown
		c.PreferredContactMethod = &notKnown
	}
}

// ContactDetailsPatch is a partial-update overlay. Nil fields leave the
// stored value untouched; an explicitly-present empty string counts as an
// attempted clear for validation purposes but never overwrites on merge.
type ContactDetailsPatch struct {
	PreferredContactMethod *PreferredContactMethod `json:"preferredContactMethod,omitempty"`
	MobileNumber           *string                 `json:"mobileNumber,omitempty" validate:"omitempty,max=20,ukmobile"`
	HomeNumber             *string                 `json:"homeNumber,omitempty" validate:"omitempty,max=20"`
	AlternativeNumber      *string                 `json:"alternativeNumber,omitempty" validate:"omitempty,max=20"`
	EmailAddress           *string                 `json:"emailAddress,omitempty" validate:"omitempty,max=255,email"`
	LastModifiedDate       *time.Time              `json:"lastModifiedDate,omitempty"`
}

// ClearsEmail reports whether the patch explicitly sets EmailAddress to the
// empty string, i.e. asks for the stored address to be removed.
func (p *ContactDetailsPatch) ClearsEmail() bool {
	return p.EmailAddress != nil && *p.EmailAddress == ""
}

// Apply merges the patch onto the stored record. Identifiers are never
// touched. LastModifiedDate is refreshed to now unless the patch pins it.
func (p *ContactDetailsPatch) Apply(stored *ContactDetails, touchpointID string) {
	if p.PreferredContactMethod != nil {
		stored.PreferredContactMethod = p.PreferredContactMethod
	}
	if p.MobileNumber != nil && *p.MobileNumber != "" {
		stored.MobileNumber = p.MobileNumber
	}
	if p.HomeNumber != nil && *p.HomeNumber != "" {
		stored.HomeNumber = p.HomeNumber
	}
	if p.AlternativeNumber != nil && *p.AlternativeNumber != "" {
		stored.AlternativeNumber = p.AlternativeNumber
	}
	if p.EmailAddress != nil && *p.EmailAddress != "" {
		stored.EmailAddress = p.EmailAddress
	}
	if p.LastModifiedDate != nil {
		stored.LastModifiedDate = p.LastModifiedDate
	} else {
		now := time.Now().UTC()
		stored.LastModifiedDate = &now
	}
	stored.LastModifiedTouchpointID = touchpointID
}

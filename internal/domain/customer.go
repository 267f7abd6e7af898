package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the owning record for contact details. It is managed by
// another service; this one only reads it.
type Customer struct {
	ID                uuid.UUID  `json:"customerId"`
	GivenName         string     `json:"givenName,omitempty"`
	FamilyName        string     `json:"familyName,omitempty"`
	DateOfTermination *time.Time `json:"dateOfTermination,omitempty"`
}

// ReadOnly reports whether the customer has been terminated. Terminated
// customers cannot have new contact details created against them and do not
// block email-uniqueness checks.
func (c *Customer) ReadOnly() bool {
	return c.DateOfTermination != nil
}

// DigitalIdentity links a customer to an online login. It is managed
// elsewhere; its presence forbids clearing a stored email address.
type DigitalIdentity struct {
	IdentityID uuid.UUID `json:"identityId"`
	CustomerID uuid.UUID `json:"customerId"`
}

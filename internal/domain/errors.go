package domain

import (
	"errors"
	"fmt"
)

// Application errors
var (
	// ErrTouchpointMissing the touchpoint header was not supplied
	ErrTouchpointMissing = errors.New("touchpoint id is required")

	// ErrCustomerNotFound the referenced customer does not exist
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrContactNotFound no contact details exist for the identifiers
	ErrContactNotFound = errors.New("contact details not found")

	// ErrCustomerReadOnly the customer has been terminated
	ErrCustomerReadOnly = errors.New("customer is read only")

	// ErrContactExists the customer already has a contact details record
	ErrContactExists = errors.New("contact details already exist for customer")

	// ErrEmailInUse the email address belongs to another active customer
	ErrEmailInUse = errors.New("email address in use by another customer")

	// ErrPersistence the store rejected a write
	ErrPersistence = errors.New("persistence failure")

	// ErrInternal unexpected downstream failure
	ErrInternal = errors.New("internal error")
)

// ValidationError represents a single field finding
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors represents the accumulated findings for a request
type ValidationErrors []ValidationError

// Error implements the error interface
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	if len(e) == 1 {
		return fmt.Sprintf("validation failed: %s - %s", e[0].Field, e[0].Message)
	}

	return fmt.Sprintf("validation failed: %d errors", len(e))
}

// Add appends a finding
func (e *ValidationErrors) Add(field, message string) {
	*e = append(*e, ValidationError{Field: field, Message: message})
}

// HasErrors reports whether any findings were collected
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Fields returns the list of fields with findings
func (e ValidationErrors) Fields() []string {
	fields := make([]string, len(e))
	for i, err := range e {
		fields[i] = err.Field
	}
	return fields
}

// GetByField returns the message recorded for a field, if any
func (e ValidationErrors) GetByField(field string) string {
	for _, err := range e {
		if err.Field == field {
			return err.Message
		}
	}
	return ""
}

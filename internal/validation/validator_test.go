package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncsdigital/contact-details-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func methodPtr(m domain.PreferredContactMethod) *domain.PreferredContactMethod { return &m }

func TestValidateCreateConditionalRequired(t *testing.T) {
	tests := []struct {
		name      string
		details   domain.ContactDetails
		wantField string
	}{
		{
			name:      "email method without email address",
			details:   domain.ContactDetails{PreferredContactMethod: methodPtr(domain.MethodEmail)},
			wantField: "emailAddress",
		},
		{
			name:      "mobile method without mobile number",
			details:   domain.ContactDetails{PreferredContactMethod: methodPtr(domain.MethodMobile)},
			wantField: "mobileNumber",
		},
		{
			name:      "whatsapp method without mobile number",
			details:   domain.ContactDetails{PreferredContactMethod: methodPtr(domain.MethodWhatsApp)},
			wantField: "mobileNumber",
		},
		{
			name:      "telephone method without home number",
			details:   domain.ContactDetails{PreferredContactMethod: methodPtr(domain.MethodTelephone)},
			wantField: "homeNumber",
		},
		{
			name:      "sms method without mobile number",
			details:   domain.ContactDetails{PreferredContactMethod: methodPtr(domain.MethodSMS)},
			wantField: "mobileNumber",
		},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := v.ValidateCreate(&tt.details)
			require.True(t, findings.HasErrors())
			assert.Contains(t, findings.Fields(), tt.wantField)
		})
	}
}

func TestValidateCreateConditionalRequiredSatisfied(t *testing.T) {
	tests := []struct {
		name    string
		details domain.ContactDetails
	}{
		{
			name: "email method with email address",
			details: domain.ContactDetails{
				PreferredContactMethod: methodPtr(domain.MethodEmail),
				EmailAddress:           strPtr("x@y.com"),
			},
		},
		{
			name: "mobile method with alternative number only",
			details: domain.ContactDetails{
				PreferredContactMethod: methodPtr(domain.MethodMobile),
				AlternativeNumber:      strPtr("02079460123"),
			},
		},
		{
			name: "telephone method with alternative number only",
			details: domain.ContactDetails{
				PreferredContactMethod: methodPtr(domain.MethodTelephone),
				AlternativeNumber:      strPtr("02079460123"),
			},
		},
		{
			name: "sms method with mobile number",
			details: domain.ContactDetails{
				PreferredContactMethod: methodPtr(domain.MethodSMS),
				MobileNumber:           strPtr("07700900123"),
			},
		},
		{
			name:    "post method needs nothing",
			details: domain.ContactDetails{PreferredContactMethod: methodPtr(domain.MethodPost)},
		},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := v.ValidateCreate(&tt.details)
			assert.False(t, findings.HasErrors(), "unexpected findings: %v", findings)
		})
	}
}

func TestConditionalRequiredSkippedOnPatch(t *testing.T) {
	// SMS without a mobile number fails on create but not on patch.
	v := New()

	patch := &domain.ContactDetailsPatch{PreferredContactMethod: methodPtr(domain.MethodSMS)}
	findings := v.ValidatePatch(patch, &domain.ContactDetails{}, false)
	assert.False(t, findings.HasErrors())
}

func TestValidateStructuralFormats(t *testing.T) {
	longEmail := strings.Repeat("a", 250) + "@example.com"

	tests := []struct {
		name      string
		details   domain.ContactDetails
		wantField string
	}{
		{
			name:      "invalid mobile number format",
			details:   domain.ContactDetails{MobileNumber: strPtr("12345")},
			wantField: "mobileNumber",
		},
		{
			name:      "mobile number not UK",
			details:   domain.ContactDetails{MobileNumber: strPtr("+15551234567")},
			wantField: "mobileNumber",
		},
		{
			name:      "invalid email format",
			details:   domain.ContactDetails{EmailAddress: strPtr("not-an-email")},
			wantField: "emailAddress",
		},
		{
			name:      "email too long",
			details:   domain.ContactDetails{EmailAddress: strPtr(longEmail)},
			wantField: "emailAddress",
		},
		{
			name:      "home number too long",
			details:   domain.ContactDetails{HomeNumber: strPtr("012345678901234567890")},
			wantField: "homeNumber",
		},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := v.ValidateCreate(&tt.details)
			require.True(t, findings.HasErrors())
			assert.Contains(t, findings.Fields(), tt.wantField)
		})
	}
}

func TestValidateStructuralAcceptsUKFormats(t *testing.T) {
	v := New()
	details := domain.ContactDetails{
		MobileNumber: strPtr("+447700900123"),
		EmailAddress: strPtr("someone@example.com"),
	}
	findings := v.ValidateCreate(&details)
	assert.False(t, findings.HasErrors(), "unexpected findings: %v", findings)
}

func TestValidateTemporal(t *testing.T) {
	v := New()

	future := time.Now().UTC().Add(time.Hour)
	findings := v.ValidateCreate(&domain.ContactDetails{LastModifiedDate: &future})
	require.True(t, findings.HasErrors())
	assert.Contains(t, findings.Fields(), "lastModifiedDate")

	past := time.Now().UTC().Add(-time.Hour)
	findings = v.ValidateCreate(&domain.ContactDetails{LastModifiedDate: &past})
	assert.False(t, findings.HasErrors())

	findings = v.ValidateCreate(&domain.ContactDetails{})
	assert.False(t, findings.HasErrors())
}

func TestValidateEnumValidity(t *testing.T) {
	v := New()

	findings := v.ValidateCreate(&domain.ContactDetails{PreferredContactMethod: methodPtr(domain.PreferredContactMethod(42))})
	require.True(t, findings.HasErrors())
	assert.Contains(t, findings.Fields(), "preferredContactMethod")
}

func TestDigitalIdentityEmailRemovalGuard(t *testing.T) {
	v := New()
	stored := &domain.ContactDetails{EmailAddress: strPtr("linked@example.com")}
	clearing := &domain.ContactDetailsPatch{EmailAddress: strPtr("")}

	// Linked identity blocks the clear.
	findings := v.ValidatePatch(clearing, stored, true)
	require.True(t, findings.HasErrors())
	assert.Contains(t, findings.Fields(), "emailAddress")

	// No identity: merge semantics simply ignore the empty value.
	findings = v.ValidatePatch(clearing, stored, false)
	assert.False(t, findings.HasErrors())

	// Identity present but no stored email: nothing to guard.
	findings = v.ValidatePatch(clearing, &domain.ContactDetails{}, true)
	assert.False(t, findings.HasErrors())

	// Replacing with a new address is fine even with an identity.
	replacing := &domain.ContactDetailsPatch{EmailAddress: strPtr("new@example.com")}
	findings = v.ValidatePatch(replacing, stored, true)
	assert.False(t, findings.HasErrors())
}

func TestFindingsAccumulate(t *testing.T) {
	v := New()
	future := time.Now().UTC().Add(time.Hour)
	details := domain.ContactDetails{
		PreferredContactMethod: methodPtr(domain.MethodEmail),
		MobileNumber:           strPtr("12345"),
		LastModifiedDate:       &future,
	}

	findings := v.ValidateCreate(&details)
	require.True(t, findings.HasErrors())
	assert.Contains(t, findings.Fields(), "mobileNumber")
	assert.Contains(t, findings.Fields(), "emailAddress")
	assert.Contains(t, findings.Fields(), "lastModifiedDate")
}

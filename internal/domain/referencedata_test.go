package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreferredContactMethodValid(t *testing.T) {
	validMethods := []PreferredContactMethod{
		MethodEmail,
		MethodMobile,
		MethodTelephone,
		MethodSMS,
		MethodPost,
		MethodWhatsApp,
		MethodNotKnown,
	}

	for _, method := range validMethods {
		assert.True(t, method.Valid(), "defined method should be valid: %d", method)
	}

	assert.False(t, PreferredContactMethod(0).Valid())
	assert.False(t, PreferredContactMethod(7).Valid())
	assert.False(t, PreferredContactMethod(-1).Valid())
}

func TestPreferredContactMethodString(t *testing.T) {
	assert.Equal(t, "Email", MethodEmail.String())
	assert.Equal(t, "WhatsApp", MethodWhatsApp.String())
	assert.Equal(t, "NotKnown", MethodNotKnown.String())
	assert.Equal(t, "Unknown", PreferredContactMethod(42).String())
}

// Package validation holds the structural and business-rule checks applied
// to contact details on create and patch. Rules run in a fixed order and all
// findings are accumulated rather than short-circuited, so a single response
// can report every problem at once. Cross-customer email uniqueness is not
// checked here: it needs storage access and maps to a different HTTP status,
// so the service layer owns it.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ncsdigital/contact-details-service/internal/domain"
)

// ukMobileRegex accepts UK mobile numbers in national (07...) or
// international (+447...) form.
var ukMobileRegex = regexp.MustCompile(`^(\+44|0)7\d{9}$`)

// Validator applies the ordered contact-details rule set.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the custom ukmobile tag registered and field
// names resolved from json tags so findings match the wire format.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for a blank tag name.
	_ = v.RegisterValidation("ukmobile", func(fl validator.FieldLevel) bool {
		return ukMobileRegex.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// ValidateCreate runs the full rule set for a new contact details record:
// structural formats, conditional-required fields keyed by the preferred
// contact method, the temporal check and enum validity.
func (v *Validator) ValidateCreate(details *domain.ContactDetails) domain.ValidationErrors {
	var findings domain.ValidationErrors

	v.structural(details, &findings)
	v.conditionalRequired(details, &findings)
	v.temporal(details.LastModifiedDate, &findings)
	v.enumValidity(details.PreferredContactMethod, &findings)

	return findings
}

// ValidatePatch runs the patch-mode rule set. Conditional-required rules are
// skipped on patch; format, temporal and enum rules still apply, plus the
// digital-identity guard: a linked digital identity makes a stored email
// address effectively required, so it cannot be blanked.
func (v *Validator) ValidatePatch(patch *domain.ContactDetailsPatch, stored *domain.ContactDetails, hasDigitalIdentity bool) domain.ValidationErrors {
	var findings domain.ValidationErrors

	v.structural(patch, &findings)
	v.temporal(patch.LastModifiedDate, &findings)
	v.enumValidity(patch.PreferredContactMethod, &findings)

	if hasDigitalIdentity && patch.ClearsEmail() &&
		stored != nil && stored.EmailAddress != nil && *stored.EmailAddress != "" {
		findings.Add("emailAddress", "email address cannot be removed while a digital identity is linked")
	}

	return findings
}

// structural runs the struct-tag pass (max lengths, email format, UK mobile
// format) and maps each failure to a field finding.
func (v *Validator) structural(resource interface{}, findings *domain.ValidationErrors) {
	err := v.validate.Struct(resource)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Struct-level failures cannot happen for these shapes; record a
		// generic finding rather than dropping the error.
		findings.Add("", "request body is not valid")
		return
	}

	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "max":
			findings.Add(fe.Field(), "exceeds maximum length of "+fe.Param())
		case "email":
			findings.Add(fe.Field(), "email address is not in a valid format")
		case "ukmobile":
			findings.Add(fe.Field(), "mobile number is not a valid UK mobile number")
		default:
			findings.Add(fe.Field(), "is not valid")
		}
	}
}

// conditionalRequired enforces that the chosen preferred contact method has a
// usable contact field. Applies on create only.
func (v *Validator) conditionalRequired(details *domain.ContactDetails, findings *domain.ValidationErrors) {
	if details.PreferredContactMethod == nil {
		return
	}

	switch *details.PreferredContactMethod {
	case domain.MethodEmail:
		if !nonEmpty(details.EmailAddress) {
			findings.Add("emailAddress", "email address is required when the preferred contact method is Email")
		}
	case domain.MethodMobile, domain.MethodWhatsApp:
		if !nonEmpty(details.MobileNumber) && !nonEmpty(details.AlternativeNumber) {
			findings.Add("mobileNumber", "mobile number is required for the chosen preferred contact method")
		}
	case domain.MethodTelephone:
		if !nonEmpty(details.HomeNumber) && !nonEmpty(details.AlternativeNumber) {
			findings.Add("homeNumber", "home number is required when the preferred contact method is Telephone")
		}
	case domain.MethodSMS:
		if !nonEmpty(details.MobileNumber) {
			findings.Add("mobileNumber", "mobile number is required when the preferred contact method is SMS")
		}
	}
}

// temporal rejects a last-modified date strictly in the future.
func (v *Validator) temporal(lastModified *time.Time, findings *domain.ValidationErrors) {
	if lastModified != nil && lastModified.After(time.Now().UTC()) {
		findings.Add("lastModifiedDate", "last modified date must not be in the future")
	}
}

// enumValidity rejects undefined preferred contact method codes.
func (v *Validator) enumValidity(method *domain.PreferredContactMethod, findings *domain.ValidationErrors) {
	if method != nil && !method.Valid() {
		findings.Add("preferredContactMethod", "preferred contact method is not a known value")
	}
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}

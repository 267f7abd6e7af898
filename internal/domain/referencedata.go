package domain

// PreferredContactMethod is the channel a customer has asked to be contacted on.
// Values are wire-level integer codes and must stay stable.
type PreferredContactMethod int

const (
	MethodEmail     PreferredContactMethod = 1
	MethodMobile    PreferredContactMethod = 2
	MethodTelephone PreferredContactMethod = 3
	MethodSMS       PreferredContactMethod = 4
	MethodPost      PreferredContactMethod = 5
	MethodWhatsApp  PreferredContactMethod = 6
	MethodNotKnown  PreferredContactMethod = 99
)

var methodNames = map[PreferredContactMethod]string{
	MethodEmail:     "Email",
	MethodMobile:    "Mobile",
	MethodTelephone: "Telephone",
	MethodSMS:       "SMS",
	MethodPost:      "Post",
	MethodWhatsApp:  "WhatsApp",
	MethodNotKnown:  "NotKnown",
}

// Valid reports whether the value is one of the defined contact methods.
func (m PreferredContactMethod) Valid() bool {
	_, ok := methodNames[m]
	return ok
}

func (m PreferredContactMethod) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return "Unknown"
}

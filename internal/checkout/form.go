package checkout

import (
	"regexp"
	"strings"

	"github.com/5anyam/vyadhiharfoods-sub000/internal/domain"
)

var (
	phonePattern   = regexp.MustCompile(`^[0-9]{10}$`)
	pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)
	emailPattern   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateForm checks every required field predicate and returns a map of
// field name to error message. An empty map means the form is valid.
// Validation is synchronous and field-local; no external system is contacted.
func ValidateForm(form domain.CheckoutForm) map[string]string {
	fields := make(map[string]string)

	if strings.TrimSpace(form.Name) == "" {
		fields["name"] = "Name is required"
	}
	if strings.TrimSpace(form.Email) == "" {
		fields["email"] = "Email is required"
	} else if !emailPattern.MatchString(form.Email) {
		fields["email"] = "Enter a valid email address"
	}
	if !phonePattern.MatchString(form.Phone) {
		fields["phone"] = "Enter a valid 10-digit phone number"
	}
	if !phonePattern.MatchString(form.WhatsApp) {
		fields["whatsapp"] = "Enter a valid 10-digit WhatsApp number"
	}
	if strings.TrimSpace(form.Address) == "" {
		fields["address"] = "Address is required"
	}
	if !pincodePattern.MatchString(form.Pincode) {
		fields["pincode"] = "Enter a valid 6-digit pincode"
	}
	if strings.TrimSpace(form.City) == "" {
		fields["city"] = "City is required"
	}
	if strings.TrimSpace(form.State) == "" {
		fields["state"] = "State is required"
	}

	return fields
}

// Package checkout sequences the address, shipping, and payment steps.
//
// The flow is forward-only: each step submits to the backend and, on success,
// unlocks the next one. A failed step renders its own error and waits for the
// user to act again; nothing is retried and no step rolls another back.
package checkout

import (
	"regexp"
	"strings"

	"github.com/tidegoods/storefront/internal/commerce"
)

// Step identifies one stage of the checkout sequence.
type Step string

const (
	StepAddress  Step = "address"
	StepShipping Step = "shipping"
	StepPayment  Step = "payment"
)

// StepFor derives the active step from the cart snapshot.
func StepFor(cart *commerce.Cart) Step {
	if cart == nil || cart.ShippingAddress == nil || strings.TrimSpace(cart.Email) == "" {
		return StepAddress
	}
	if len(cart.ShippingMethods) == 0 {
		return StepShipping
	}
	return StepPayment
}

// Reached reports whether the flow has progressed at least to the given step.
func (s Step) Reached(target Step) bool {
	order := map[Step]int{StepAddress: 0, StepShipping: 1, StepPayment: 2}
	return order[s] >= order[target]
}

// AddressInput carries the raw address form fields.
type AddressInput struct {
	Email       string
	FirstName   string
	LastName    string
	Address1    string
	Address2    string
	City        string
	Province    string
	PostalCode  string
	CountryCode string
	Phone       string
}

// emailPattern is deliberately loose: the backend is the authority on
// deliverability, the form only rejects obviously malformed input.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateAddress checks the address form locally before any backend call.
// The returned map is keyed by field name; an empty map means valid. Errors
// are field-scoped and block submission.
func ValidateAddress(input AddressInput) map[string]string {
	fieldErrors := make(map[string]string)

	email := strings.TrimSpace(input.Email)
	switch {
	case email == "":
		fieldErrors["email"] = "Email is required"
	case !emailPattern.MatchString(email):
		fieldErrors["email"] = "Enter a valid email address"
	}

	requireField(fieldErrors, "first_name", input.FirstName, "First name is required")
	requireField(fieldErrors, "last_name", input.LastName, "Last name is required")
	requireField(fieldErrors, "address_1", input.Address1, "Address is required")
	requireField(fieldErrors, "city", input.City, "City is required")
	requireField(fieldErrors, "postal_code", input.PostalCode, "Postal code is required")
	requireField(fieldErrors, "country_code", input.CountryCode, "Country is required")

	return fieldErrors
}

func requireField(fieldErrors map[string]string, field, value, message string) {
	if strings.TrimSpace(value) == "" {
		fieldErrors[field] = message
	}
}

// Address converts validated input into the commerce address payload.
func (input AddressInput) Address() *commerce.Address {
	return &commerce.Address{
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Address1:    strings.TrimSpace(input.Address1),
		Address2:    strings.TrimSpace(input.Address2),
		City:        strings.TrimSpace(input.City),
		Province:    strings.TrimSpace(input.Province),
		PostalCode:  strings.TrimSpace(input.PostalCode),
		CountryCode: strings.ToLower(strings.TrimSpace(input.CountryCode)),
		Phone:       strings.TrimSpace(input.Phone),
	}
}

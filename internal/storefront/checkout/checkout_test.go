package checkout

import (
	"testing"

	"github.com/tidegoods/storefront/internal/commerce"
)

func validInput() AddressInput {
	return AddressInput{
		Email:       "shopper@example.com",
		FirstName:   "Ada",
		LastName:    "Marsh",
		Address1:    "12 Quay Street",
		City:        "Portside",
		PostalCode:  "90210",
		CountryCode: "US",
	}
}

func TestValidateAddressAcceptsValidInput(t *testing.T) {
	fieldErrors := ValidateAddress(validInput())

	if len(fieldErrors) != 0 {
		t.Fatalf("field errors = %v, want none", fieldErrors)
	}
}

func TestValidateAddressEmptyEmail(t *testing.T) {
	input := validInput()
	input.Email = ""

	fieldErrors := ValidateAddress(input)

	if fieldErrors["email"] != "Email is required" {
		t.Fatalf("email error = %q, want %q", fieldErrors["email"], "Email is required")
	}
}

func TestValidateAddressMalformedEmail(t *testing.T) {
	input := validInput()
	input.Email = "foo"

	fieldErrors := ValidateAddress(input)

	if fieldErrors["email"] != "Enter a valid email address" {
		t.Fatalf("email error = %q, want format message", fieldErrors["email"])
	}
}

func TestValidateAddressMissingRequiredFields(t *testing.T) {
	fieldErrors := ValidateAddress(AddressInput{Email: "shopper@example.com"})

	want := map[string]string{
		"first_name":   "First name is required",
		"last_name":    "Last name is required",
		"address_1":    "Address is required",
		"city":         "City is required",
		"postal_code":  "Postal code is required",
		"country_code": "Country is required",
	}
	for field, message := range want {
		if fieldErrors[field] != message {
			t.Fatalf("%s error = %q, want %q", field, fieldErrors[field], message)
		}
	}
	if _, ok := fieldErrors["email"]; ok {
		t.Fatal("valid email must not produce an error")
	}
}

func TestAddressNormalizesCountryCode(t *testing.T) {
	input := validInput()
	input.CountryCode = " US "

	address := input.Address()

	if address.CountryCode != "us" {
		t.Fatalf("country code = %q, want %q", address.CountryCode, "us")
	}
}

func TestStepForFollowsSequence(t *testing.T) {
	if got := StepFor(nil); got != StepAddress {
		t.Fatalf("step for nil cart = %q, want address", got)
	}

	cart := &commerce.Cart{}
	if got := StepFor(cart); got != StepAddress {
		t.Fatalf("step for bare cart = %q, want address", got)
	}

	cart.Email = "shopper@example.com"
	cart.ShippingAddress = &commerce.Address{FirstName: "Ada"}
	if got := StepFor(cart); got != StepShipping {
		t.Fatalf("step with address = %q, want shipping", got)
	}

	cart.ShippingMethods = []commerce.ShippingMethod{{ID: "sm_1", ShippingOptionID: "so_1"}}
	if got := StepFor(cart); got != StepPayment {
		t.Fatalf("step with shipping = %q, want payment", got)
	}
}

func TestStepReached(t *testing.T) {
	if !StepPayment.Reached(StepAddress) {
		t.Fatal("payment step must have reached address")
	}
	if StepAddress.Reached(StepShipping) {
		t.Fatal("address step must not have reached shipping")
	}
}

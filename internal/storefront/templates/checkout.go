package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/tidegoods/storefront/internal/storefront/checkout"
	"github.com/tidegoods/storefront/internal/storefront/routepath"
)

// AddressFormView is the render model for the checkout address step.
type AddressFormView struct {
	Input       checkout.AddressInput
	FieldErrors map[string]string
	Countries   []CountryOptionView
}

// CountryOptionView is one selectable shipping country.
type CountryOptionView struct {
	Code string
	Name string
}

// ShippingOptionView is one selectable shipping option.
type ShippingOptionView struct {
	ID             string
	Name           string
	FormattedPrice string
	Selected       bool
}

// PaymentProviderView is one selectable payment provider.
type PaymentProviderView struct {
	ID       string
	Label    string
	Selected bool
}

// CheckoutView is the render model for the checkout page.
type CheckoutView struct {
	Step            checkout.Step
	Address         AddressFormView
	ShippingOptions []ShippingOptionView
	Providers       []PaymentProviderView
	FormattedTotal  string
	Error           string
}

// CheckoutPage renders the checkout flow with the active step expanded.
func CheckoutPage(view CheckoutView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writef(w, "<section class=\"checkout\"><h1>Checkout</h1>"); err != nil {
			return err
		}
		if err := checkoutSteps(view.Step).Render(ctx, w); err != nil {
			return err
		}
		if view.Error != "" {
			if err := writef(w, "<div class=\"checkout-error\" role=\"alert\">"); err != nil {
				return err
			}
			if err := writeEscaped(w, view.Error); err != nil {
				return err
			}
			if err := writef(w, "</div>"); err != nil {
				return err
			}
		}
		switch view.Step {
		case checkout.StepShipping:
			if err := ShippingForm(view.ShippingOptions).Render(ctx, w); err != nil {
				return err
			}
		case checkout.StepPayment:
			if err := PaymentForm(view.Providers, view.FormattedTotal).Render(ctx, w); err != nil {
				return err
			}
		default:
			if err := AddressForm(view.Address).Render(ctx, w); err != nil {
				return err
			}
		}
		return writef(w, "</section>")
	})
}

// checkoutSteps renders the progress indicator. Completed steps link back;
// future steps are inert text so the flow stays forward-only.
func checkoutSteps(active checkout.Step) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		steps := []struct {
			step  checkout.Step
			label string
			href  string
		}{
			{checkout.StepAddress, "Address", routepath.CheckoutAddress},
			{checkout.StepShipping, "Shipping", routepath.CheckoutShipping},
			{checkout.StepPayment, "Payment", routepath.CheckoutPayment},
		}
		if err := writef(w, "<ol class=\"checkout-steps\">"); err != nil {
			return err
		}
		for _, entry := range steps {
			current := ""
			if entry.step == active {
				current = " aria-current=\"step\""
			}
			if active.Reached(entry.step) && entry.step != active {
				if err := writef(w, "<li%s><a href=\"%s\">%s</a></li>", current, entry.href, templ.EscapeString(entry.label)); err != nil {
					return err
				}
				continue
			}
			if err := writef(w, "<li%s>%s</li>", current, templ.EscapeString(entry.label)); err != nil {
				return err
			}
		}
		return writef(w, "</ol>")
	})
}

// AddressForm renders the address step with field-scoped validation errors.
func AddressForm(view AddressFormView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writef(w, "<form class=\"checkout-address\" method=\"post\" action=\"%s\">", routepath.CheckoutAddress); err != nil {
			return err
		}
		fields := []struct {
			name     string
			label    string
			kind     string
			value    string
			required bool
		}{
			{"email", "Email", "email", view.Input.Email, true},
			{"first_name", "First name", "text", view.Input.FirstName, true},
			{"last_name", "Last name", "text", view.Input.LastName, true},
			{"address_1", "Address", "text", view.Input.Address1, true},
			{"address_2", "Apartment, suite, etc.", "text", view.Input.Address2, false},
			{"city", "City", "text", view.Input.City, true},
			{"province", "State / Province", "text", view.Input.Province, false},
			{"postal_code", "Postal code", "text", view.Input.PostalCode, true},
			{"phone", "Phone", "tel", view.Input.Phone, false},
		}
		for _, field := range fields {
			if err := addressField(w, field.name, field.label, field.kind, field.value, field.required, view.FieldErrors[field.name]); err != nil {
				return err
			}
		}
		if err := countrySelect(w, view.Countries, view.Input.CountryCode, view.FieldErrors["country_code"]); err != nil {
			return err
		}
		return writef(w, "<button type=\"submit\" class=\"button\">Continue to shipping</button></form>")
	})
}

func addressField(w io.Writer, name, label, kind, value string, required bool, fieldError string) error {
	requiredAttr := ""
	if required {
		requiredAttr = " required"
	}
	invalidAttr := ""
	if fieldError != "" {
		invalidAttr = " aria-invalid=\"true\" aria-describedby=\"" + name + "-error\""
	}
	if err := writef(w, "<div class=\"field\"><label for=\"%s\">%s</label><input id=\"%s\" type=\"%s\" name=\"%s\" value=\"", name, templ.EscapeString(label), name, kind, name); err != nil {
		return err
	}
	if err := writeEscaped(w, value); err != nil {
		return err
	}
	if err := writef(w, "\"%s%s>", requiredAttr, invalidAttr); err != nil {
		return err
	}
	if fieldError != "" {
		if err := writef(w, "<p id=\"%s-error\" class=\"field-error\">", name); err != nil {
			return err
		}
		if err := writeEscaped(w, fieldError); err != nil {
			return err
		}
		if err := writef(w, "</p>"); err != nil {
			return err
		}
	}
	return writef(w, "</div>")
}

func countrySelect(w io.Writer, countries []CountryOptionView, selected string, fieldError string) error {
	invalidAttr := ""
	if fieldError != "" {
		invalidAttr = " aria-invalid=\"true\" aria-describedby=\"country_code-error\""
	}
	if err := writef(w, "<div class=\"field\"><label for=\"country_code\">Country</label><select id=\"country_code\" name=\"country_code\"%s><option value=\"\">Select a country</option>", invalidAttr); err != nil {
		return err
	}
	for _, country := range countries {
		selectedAttr := ""
		if country.Code != "" && country.Code == selected {
			selectedAttr = " selected"
		}
		if err := writef(w, "<option value=\"%s\"%s>", templ.EscapeString(country.Code), selectedAttr); err != nil {
			return err
		}
		if err := writeEscaped(w, country.Name); err != nil {
			return err
		}
		if err := writef(w, "</option>"); err != nil {
			return err
		}
	}
	if err := writef(w, "</select>"); err != nil {
		return err
	}
	if fieldError != "" {
		if err := writef(w, "<p id=\"country_code-error\" class=\"field-error\">"); err != nil {
			return err
		}
		if err := writeEscaped(w, fieldError); err != nil {
			return err
		}
		if err := writef(w, "</p>"); err != nil {
			return err
		}
	}
	return writef(w, "</div>")
}

// ShippingForm renders the shipping step options.
func ShippingForm(options []ShippingOptionView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(options) == 0 {
			return writef(w, "<p class=\"checkout-shipping-empty\">No shipping options are available for this address.</p>")
		}
		if err := writef(w, "<form class=\"checkout-shipping\" method=\"post\" action=\"%s\"><fieldset><legend>Delivery method</legend>", routepath.CheckoutShipping); err != nil {
			return err
		}
		for _, option := range options {
			checkedAttr := ""
			if option.Selected {
				checkedAttr = " checked"
			}
			if err := writef(w, "<label class=\"shipping-option\"><input type=\"radio\" name=\"option_id\" value=\"%s\"%s><span>", templ.EscapeString(option.ID), checkedAttr); err != nil {
				return err
			}
			if err := writeEscaped(w, option.Name); err != nil {
				return err
			}
			if err := writef(w, "</span><span class=\"shipping-option-price\">"); err != nil {
				return err
			}
			if err := writeEscaped(w, option.FormattedPrice); err != nil {
				return err
			}
			if err := writef(w, "</span></label>"); err != nil {
				return err
			}
		}
		return writef(w, "</fieldset><button type=\"submit\" class=\"button\">Continue to payment</button></form>")
	})
}

// PaymentForm renders the payment step with provider selection and the
// place-order action.
func PaymentForm(providers []PaymentProviderView, formattedTotal string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(providers) == 0 {
			return writef(w, "<p class=\"checkout-payment-empty\">No payment methods are available.</p>")
		}
		if err := writef(w, "<form class=\"checkout-payment\" method=\"post\" action=\"%s\"><fieldset><legend>Payment method</legend>", routepath.CheckoutComplete); err != nil {
			return err
		}
		for _, provider := range providers {
			checkedAttr := ""
			if provider.Selected {
				checkedAttr = " checked"
			}
			if err := writef(w, "<label class=\"payment-provider\"><input type=\"radio\" name=\"provider_id\" value=\"%s\"%s><span>", templ.EscapeString(provider.ID), checkedAttr); err != nil {
				return err
			}
			if err := writeEscaped(w, provider.Label); err != nil {
				return err
			}
			if err := writef(w, "</span></label>"); err != nil {
				return err
			}
		}
		if err := writef(w, "</fieldset><p class=\"checkout-total\">Total due: <strong>"); err != nil {
			return err
		}
		if err := writeEscaped(w, formattedTotal); err != nil {
			return err
		}
		return writef(w, "</strong></p><button type=\"submit\" class=\"button\">Place order</button></form>")
	})
}

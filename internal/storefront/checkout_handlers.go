package storefront

import (
	"net/http"
	"strings"

	"github.com/tidegoods/storefront/internal/commerce"
	"github.com/tidegoods/storefront/internal/storefront/checkout"
	"github.com/tidegoods/storefront/internal/storefront/platform/flash"
	"github.com/tidegoods/storefront/internal/storefront/routepath"
	"github.com/tidegoods/storefront/internal/storefront/templates"
)

const checkoutStepError = "We couldn't save that step. Please try again."

// handleCheckout routes to the furthest step the cart has earned.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)
	cart := sess.store.Cart()
	if cart == nil || len(cart.Items) == 0 {
		http.Redirect(w, r, routepath.Cart, http.StatusSeeOther)
		return
	}
	switch checkout.StepFor(cart) {
	case checkout.StepShipping:
		http.Redirect(w, r, routepath.CheckoutShipping, http.StatusSeeOther)
	case checkout.StepPayment:
		http.Redirect(w, r, routepath.CheckoutPayment, http.StatusSeeOther)
	default:
		http.Redirect(w, r, routepath.CheckoutAddress, http.StatusSeeOther)
	}
}

// guardStep redirects to the checkout entry point when the cart has not
// progressed far enough for the requested step. The flow is forward-only; a
// deep link cannot skip ahead.
func (s *Server) guardStep(w http.ResponseWriter, r *http.Request, sess *session, step checkout.Step) (*commerce.Cart, bool) {
	cart := sess.store.Cart()
	if cart == nil || len(cart.Items) == 0 {
		http.Redirect(w, r, routepath.Cart, http.StatusSeeOther)
		return nil, false
	}
	if !checkout.StepFor(cart).Reached(step) {
		http.Redirect(w, r, routepath.Checkout, http.StatusSeeOther)
		return nil, false
	}
	return cart, true
}

func (s *Server) countryOptions(r *http.Request) []templates.CountryOptionView {
	region, err := s.resolveRegion(r.Context())
	if err != nil {
		return nil
	}
	options := make([]templates.CountryOptionView, 0, len(region.Countries))
	for _, country := range region.Countries {
		options = append(options, templates.CountryOptionView{Code: country.Code, Name: country.Name})
	}
	return options
}

func addressInputFromCart(cart *commerce.Cart) checkout.AddressInput {
	input := checkout.AddressInput{Email: cart.Email}
	if cart.ShippingAddress == nil {
		return input
	}
	address := cart.ShippingAddress
	input.FirstName = address.FirstName
	input.LastName = address.LastName
	input.Address1 = address.Address1
	input.Address2 = address.Address2
	input.City = address.City
	input.Province = address.Province
	input.PostalCode = address.PostalCode
	input.CountryCode = address.CountryCode
	input.Phone = address.Phone
	return input
}

func addressInputFromForm(r *http.Request) checkout.AddressInput {
	return checkout.AddressInput{
		Email:       r.PostFormValue("email"),
		FirstName:   r.PostFormValue("first_name"),
		LastName:    r.PostFormValue("last_name"),
		Address1:    r.PostFormValue("address_1"),
		Address2:    r.PostFormValue("address_2"),
		City:        r.PostFormValue("city"),
		Province:    r.PostFormValue("province"),
		PostalCode:  r.PostFormValue("postal_code"),
		CountryCode: r.PostFormValue("country_code"),
		Phone:       r.PostFormValue("phone"),
	}
}

func (s *Server) renderCheckout(w http.ResponseWriter, r *http.Request, sess *session, view templates.CheckoutView) {
	s.renderPage(w, r, sess, "Checkout", templates.CheckoutPage(view))
}

func (s *Server) handleCheckoutAddressPage(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)
	cart, ok := s.guardStep(w, r, sess, checkout.StepAddress)
	if !ok {
		return
	}
	s.renderCheckout(w, r, sess, templates.CheckoutView{
		Step: checkout.StepAddress,
		Address: templates.AddressFormView{
			Input:     addressInputFromCart(cart),
			Countries: s.countryOptions(r),
		},
	})
}

func (s *Server) handleCheckoutAddressSubmit(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)
	cart, ok := s.guardStep(w, r, sess, checkout.StepAddress)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, sess, http.StatusBadRequest, err)
		return
	}

	input := addressInputFromForm(r)
	if fieldErrors := checkout.ValidateAddress(input); len(fieldErrors) > 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.renderCheckout(w, r, sess, templates.CheckoutView{
			Step: checkout.StepAddress,
			Address: templates.AddressFormView{
				Input:       input,
				FieldErrors: fieldErrors,
				Countries:   s.countryOptions(r),
			},
		})
		return
	}

	updated, err := s.commerce.UpdateCart(r.Context(), cart.ID, commerce.UpdateCartInput{
		Email:           strings.TrimSpace(input.Email),
		ShippingAddress: input.Address(),
	})
	if err != nil {
		s.renderCheckout(w, r, sess, templates.CheckoutView{
			Step:  checkout.StepAddress,
			Error: checkoutStepError,
			Address: templates.AddressFormView{
				Input:     input,
				Countries: s.countryOptions(r),
			},
		})
		return
	}
	sess.store.SetCart(r.Context(), updated)
	http.Redirect(w, r, routepath.CheckoutShipping, http.StatusSeeOther)
}

func (s *Server) shippingOptionViews(r *http.Request, cart *commerce.Cart, selectedID string) ([]templates.ShippingOptionView, error) {
	options, err := s.commerce.ListShippingOptions(r.Context(), cart.ID)
	if err != nil {
		return nil, err
	}
	views := make([]templates.ShippingOptionView, 0, len(options))
	for _, option := range options {
		views = append(views, templates.ShippingOptionView{
			ID:             option.ID,
			Name:           option.Name,
			FormattedPrice: s.formatter.Format(option.Amount, cart.CurrencyCode),
			Selected:       option.ID == selectedID,
		})
	}
	return views, nil
}

func selectedShippingOptionID(cart *commerce.Cart) string {
	if len(cart.ShippingMethods) == 0 {
		return ""
	}
	return cart.ShippingMethods[len(cart.ShippingMethods)-1].ShippingOptionID
}

func (s *Server) handleCheckoutShippingPage(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)
	cart, ok := s.guardStep(w, r, sess, checkout.StepShipping)
	if !ok {
		return
	}
	options, err := s.shippingOptionViews(r, cart, selectedShippingOptionID(cart))
	if err != nil {
		s.renderError(w, r, sess, http.StatusInternalServerError, err)
		return
	}
	s.renderCheckout(w, r, sess, templates.CheckoutView{
		Step:            checkout.StepShipping,
		ShippingOptions: options,
	})
}

// handleCheckoutShippingSubmit applies the chosen shipping option. When the
// backend rejects it the step re-renders with nothing selected so the user
// makes an explicit new choice.
func (s *Server) handleCheckoutShippingSubmit(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)
	cart, ok := s.guardStep(w, r, sess, checkout.StepShipping)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, sess, http.StatusBadRequest, err)
		return
	}
	optionID := strings.TrimSpace(r.PostFormValue("option_id"))
	if optionID == "" {
		options, err := s.shippingOptionViews(r, cart, "")
		if err != nil {
			s.renderError(w, r, sess, http.StatusInternalServerError, err)
			return
		}
		s.renderCheckout(w, r, sess, templates.CheckoutView{
			Step:            checkout.StepShipping,
			Error:           "Choose a delivery method to continue.",
			ShippingOptions: options,
		})
		return
	}

	updated, err := s.commerce.AddShippingMethod(r.Context(), cart.ID, optionID)
	if err != nil {
		options, listErr := s.shippingOptionViews(r, cart, "")
		if listErr != nil {
			s.renderError(w, r, sess, http.StatusInternalServerError, listErr)
			return
		}
		s.renderCheckout(w, r, sess, templates.CheckoutView{
			Step:            checkout.StepShipping,
			Error:           checkoutStepError,
			ShippingOptions: options,
		})
		return
	}
	sess.store.SetCart(r.Context(), updated)
	http.Redirect(w, r, routepath.CheckoutPayment, http.StatusSeeOther)
}

func (s *Server) paymentProviderViews(r *http.Request, cart *commerce.Cart, selectedID string) ([]templates.PaymentProviderView, error) {
	providers, err := s.commerce.ListPaymentProviders(r.Context(), cart.RegionID)
	if err != nil {
		return nil, err
	}
	views := make([]templates.PaymentProviderView, 0, len(providers))
	for _, provider := range providers {
		views = append(views, templates.PaymentProviderView{
			ID:       provider.ID,
			Label:    providerLabel(provider.ID),
			Selected: provider.ID == selectedID,
		})
	}
	return views, nil
}

// providerLabel maps provider identifiers to human labels. Unknown providers
// fall back to their raw identifier.
func providerLabel(providerID string) string {
	switch {
	case strings.Contains(providerID, "stripe"):
		return "Credit card"
	case strings.Contains(providerID, "paypal"):
		return "PayPal"
	case strings.Contains(providerID, "manual"), strings.Contains(providerID, "system_default"):
		return "Pay on delivery"
	default:
		return providerID
	}
}

func (s *Server) renderPaymentStep(w http.ResponseWriter, r *http.Request, sess *session, cart *commerce.Cart, selectedID, stepError string) {
	providers, err := s.paymentProviderViews(r, cart, selectedID)
	if err != nil {
		s.renderError(w, r, sess, http.StatusInternalServerError, err)
		return
	}
	s.renderCheckout(w, r, sess, templates.CheckoutView{
		Step:           checkout.StepPayment,
		Providers:      providers,
		FormattedTotal: s.formatter.Format(cart.Total, cart.CurrencyCode),
		Error:          stepError,
	})
}

func (s *Server) handleCheckoutPaymentPage(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)
	cart, ok := s.guardStep(w, r, sess, checkout.StepPayment)
	if !ok {
		return
	}
	s.renderPaymentStep(w, r, sess, cart, cart.PaymentCollection.SelectedProviderID(), "")
}

// handleCheckoutComplete initiates the payment session and attempts to finish
// the cart. Failure keeps the chosen provider selected so the user can retry
// without re-picking it.
func (s *Server) handleCheckoutComplete(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)
	cart, ok := s.guardStep(w, r, sess, checkout.StepPayment)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, sess, http.StatusBadRequest, err)
		return
	}
	providerID := strings.TrimSpace(r.PostFormValue("provider_id"))
	if providerID == "" {
		s.renderPaymentStep(w, r, sess, cart, "", "Choose a payment method to continue.")
		return
	}

	if _, err := s.commerce.InitPaymentSession(r.Context(), cart.ID, providerID); err != nil {
		s.renderPaymentStep(w, r, sess, cart, providerID, "We couldn't start that payment method. Please try again.")
		return
	}

	result, err := s.commerce.CompleteCart(r.Context(), cart.ID)
	if err != nil {
		s.renderPaymentStep(w, r, sess, cart, providerID, "We couldn't place your order. Please try again.")
		return
	}
	if !result.Finalized() {
		if result.Cart != nil {
			sess.store.SetCart(r.Context(), result.Cart)
			cart = result.Cart
		}
		message := strings.TrimSpace(result.Error)
		if message == "" {
			message = "We couldn't place your order. Please try again."
		}
		s.renderPaymentStep(w, r, sess, cart, providerID, message)
		return
	}

	sess.store.ClearCart(r.Context())
	flash.WriteWithPolicy(w, r, flash.NoticeSuccess("Order placed. Thank you!"), s.schemePolicy)
	http.Redirect(w, r, routepath.Order(result.Order.ID), http.StatusSeeOther)
}

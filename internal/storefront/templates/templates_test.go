package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/tidegoods/storefront/internal/storefront/checkout"
	"github.com/tidegoods/storefront/internal/storefront/platform/flash"
)

func render(t *testing.T, component templ.Component) string {
	t.Helper()
	var sb strings.Builder
	if err := component.Render(context.Background(), &sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return sb.String()
}

func TestComposePageTitle(t *testing.T) {
	got := ComposePageTitle("Products", "Tide Goods")
	if got != "Products | Tide Goods" {
		t.Fatalf("ComposePageTitle = %q, want %q", got, "Products | Tide Goods")
	}
}

func TestComposePageTitleSkipsDuplicateSuffix(t *testing.T) {
	got := ComposePageTitle("Products | Tide Goods", "Tide Goods")
	if got != "Products | Tide Goods" {
		t.Fatalf("ComposePageTitle = %q, want %q", got, "Products | Tide Goods")
	}
}

func TestLayoutEscapesTitle(t *testing.T) {
	html := render(t, Layout(PageContext{AppName: "Tide Goods"}, "<script>", nil))
	if strings.Contains(html, "<title><script>") {
		t.Fatal("layout emitted unescaped title")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatal("layout did not escape title")
	}
}

func TestLayoutRendersMainAndCartRoot(t *testing.T) {
	html := render(t, Layout(PageContext{AppName: "Tide Goods"}, "Home", Raw("<p>hello</p>")))
	if !strings.Contains(html, "<main id=\"main\"><p>hello</p></main>") {
		t.Fatal("layout did not wrap body in main")
	}
	if !strings.Contains(html, "id=\"cart-root\"") {
		t.Fatal("layout missing cart mount")
	}
}

func TestLayoutRendersNotice(t *testing.T) {
	notice := flash.NoticeSuccess("Order placed.")
	html := render(t, Layout(PageContext{AppName: "Tide Goods", Notice: &notice}, "Home", nil))
	if !strings.Contains(html, "Order placed.") {
		t.Fatal("layout did not render flash notice")
	}
	if !strings.Contains(html, "notice-success") {
		t.Fatal("layout did not mark notice kind")
	}
}

func TestLayoutSearchBoxDebounces(t *testing.T) {
	html := render(t, Layout(PageContext{AppName: "Tide Goods"}, "Home", nil))
	if !strings.Contains(html, "delay:300ms") {
		t.Fatal("search input missing debounce trigger")
	}
}

func TestCartPanelClosedRendersEmptyMount(t *testing.T) {
	html := render(t, CartPanel(CartView{Open: false}))
	if strings.Contains(html, "role=\"dialog\"") {
		t.Fatal("closed cart rendered a dialog")
	}
}

func TestCartPanelOpenRendersDialog(t *testing.T) {
	html := render(t, CartPanel(CartView{
		Open:           true,
		Items:          []CartItemView{{ID: "item_1", Title: "Mug", Quantity: 2, FormattedTotal: "$24.00"}},
		FormattedTotal: "$24.00",
	}))
	if !strings.Contains(html, "role=\"dialog\"") {
		t.Fatal("open cart missing dialog role")
	}
	if !strings.Contains(html, "aria-modal=\"true\"") {
		t.Fatal("open cart missing aria-modal")
	}
	if !strings.Contains(html, "Mug") {
		t.Fatal("open cart missing item title")
	}
	if !strings.Contains(html, "aria-live=\"polite\"") {
		t.Fatal("open cart missing live region")
	}
}

func TestCartPanelEmpty(t *testing.T) {
	html := render(t, CartPanel(CartView{Open: true}))
	if !strings.Contains(html, "Your cart is empty.") {
		t.Fatal("empty cart missing empty message")
	}
}

func TestCartPanelUpdatingDisablesControls(t *testing.T) {
	html := render(t, CartPanel(CartView{
		Open:  true,
		Items: []CartItemView{{ID: "item_1", Title: "Mug", Quantity: 1, Updating: true}},
	}))
	if !strings.Contains(html, "disabled") {
		t.Fatal("updating item controls not disabled")
	}
}

func TestCartPanelAnnouncement(t *testing.T) {
	html := render(t, CartPanel(CartView{Open: true, Announcement: "Added Mug to cart"}))
	if !strings.Contains(html, "Added Mug to cart") {
		t.Fatal("announcement text missing")
	}
}

func TestCartPanelError(t *testing.T) {
	html := render(t, CartPanel(CartView{Open: true, Error: "Could not update your cart."}))
	if !strings.Contains(html, "role=\"alert\"") {
		t.Fatal("cart error missing alert role")
	}
	if !strings.Contains(html, "Could not update your cart.") {
		t.Fatal("cart error message missing")
	}
}

func TestAddressFormRendersFieldErrors(t *testing.T) {
	html := render(t, AddressForm(AddressFormView{
		FieldErrors: map[string]string{"email": "Email is required"},
	}))
	if !strings.Contains(html, "Email is required") {
		t.Fatal("address form missing field error")
	}
	if !strings.Contains(html, "aria-invalid=\"true\"") {
		t.Fatal("address form missing aria-invalid")
	}
	if !strings.Contains(html, "aria-describedby=\"email-error\"") {
		t.Fatal("address form missing error association")
	}
}

func TestAddressFormPreservesInput(t *testing.T) {
	html := render(t, AddressForm(AddressFormView{
		Input: checkout.AddressInput{FirstName: "Ada"},
	}))
	if !strings.Contains(html, "value=\"Ada\"") {
		t.Fatal("address form dropped submitted value")
	}
}

func TestCheckoutStepsForwardOnly(t *testing.T) {
	html := render(t, CheckoutPage(CheckoutView{Step: checkout.StepAddress}))
	if strings.Contains(html, "href=\"/checkout/shipping\"") {
		t.Fatal("address step linked to a future step")
	}

	html = render(t, CheckoutPage(CheckoutView{Step: checkout.StepPayment}))
	if !strings.Contains(html, "href=\"/checkout/address\"") {
		t.Fatal("payment step did not link back to address")
	}
}

func TestShippingFormPreselects(t *testing.T) {
	html := render(t, ShippingForm([]ShippingOptionView{
		{ID: "so_1", Name: "Standard", FormattedPrice: "$5.00"},
		{ID: "so_2", Name: "Express", FormattedPrice: "$15.00", Selected: true},
	}))
	if !strings.Contains(html, "value=\"so_2\" checked") {
		t.Fatal("selected shipping option not checked")
	}
}

func TestSearchResultsNoResultsRow(t *testing.T) {
	html := render(t, SearchResults("plasma lamp", nil))
	if !strings.Contains(html, "No results for") {
		t.Fatal("missing no-results row")
	}
	if !strings.Contains(html, "plasma lamp") {
		t.Fatal("no-results row missing query")
	}
}

func TestSearchResultsRenderRows(t *testing.T) {
	html := render(t, SearchResults("mug", []SearchResultView{
		{Handle: "mug", Title: "Mug", FormattedPrice: "$12.00"},
	}))
	if !strings.Contains(html, "href=\"/products/mug\"") {
		t.Fatal("result row missing product link")
	}
}

func TestProductDetailSingleVariantHidesSelect(t *testing.T) {
	html := render(t, ProductDetailPage(ProductDetailView{
		Title:    "Mug",
		Variants: []VariantView{{ID: "variant_1", Title: "Default", FormattedPrice: "$12.00"}},
	}))
	if strings.Contains(html, "<select") {
		t.Fatal("single variant product rendered a select")
	}
	if !strings.Contains(html, "value=\"variant_1\"") {
		t.Fatal("single variant product missing hidden variant input")
	}
}

func TestOrderPage(t *testing.T) {
	html := render(t, OrderPage(OrderView{
		DisplayID:      "1042",
		Email:          "ada@example.com",
		Items:          []OrderItemView{{Title: "Mug", Quantity: 2, FormattedTotal: "$24.00"}},
		FormattedTotal: "$29.00",
	}))
	if !strings.Contains(html, "#1042") {
		t.Fatal("order page missing display ID")
	}
	if !strings.Contains(html, "ada@example.com") {
		t.Fatal("order page missing email")
	}
}

package commerce

import "time"

// Cart is the server-owned cart snapshot.
//
// Every total on the cart is computed remotely; the storefront replaces the
// whole snapshot after each mutating call and never patches totals locally.
type Cart struct {
	ID                string             `json:"id"`
	RegionID          string             `json:"region_id"`
	CurrencyCode      string             `json:"currency_code"`
	Email             string             `json:"email"`
	Items             []LineItem         `json:"items"`
	ShippingAddress   *Address           `json:"shipping_address"`
	ShippingMethods   []ShippingMethod   `json:"shipping_methods"`
	PaymentCollection *PaymentCollection `json:"payment_collection"`
	Subtotal          int64              `json:"subtotal"`
	ShippingTotal     int64              `json:"shipping_total"`
	TaxTotal          int64              `json:"tax_total"`
	Total             int64              `json:"total"`
	CompletedAt       *time.Time         `json:"completed_at"`
}

// Completed reports whether the cart was already turned into an order.
func (c *Cart) Completed() bool {
	return c != nil && c.CompletedAt != nil
}

// ItemCount returns the sum of line item quantities. A nil cart counts zero.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// FindItem returns the line item with the given ID, or nil.
func (c *Cart) FindItem(itemID string) *LineItem {
	if c == nil {
		return nil
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

// LineItem is one purchasable row in a cart or order.
type LineItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Total     int64  `json:"total"`
}

// Address is the shipping address attached to a cart or order.
type Address struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address1    string `json:"address_1"`
	Address2    string `json:"address_2"`
	City        string `json:"city"`
	Province    string `json:"province"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone"`
}

// ShippingOption is a fulfillment choice offered for a cart.
type ShippingOption struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// ShippingMethod is a shipping option already applied to a cart.
type ShippingMethod struct {
	ID               string `json:"id"`
	ShippingOptionID string `json:"shipping_option_id"`
	Amount           int64  `json:"amount"`
}

// PaymentProvider identifies a payment integration available in a region.
type PaymentProvider struct {
	ID string `json:"id"`
}

// PaymentSession is an initiated payment attempt on a cart.
type PaymentSession struct {
	ID         string `json:"id"`
	ProviderID string `json:"provider_id"`
	Status     string `json:"status"`
}

// PaymentCollection groups the payment sessions attached to a cart.
type PaymentCollection struct {
	ID       string           `json:"id"`
	Sessions []PaymentSession `json:"payment_sessions"`
}

// SelectedProviderID returns the provider of the most recent payment session.
func (p *PaymentCollection) SelectedProviderID() string {
	if p == nil || len(p.Sessions) == 0 {
		return ""
	}
	return p.Sessions[len(p.Sessions)-1].ProviderID
}

// Product is a storefront catalog entry.
type Product struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Handle       string    `json:"handle"`
	Description  string    `json:"description"`
	Thumbnail    string    `json:"thumbnail"`
	CollectionID string    `json:"collection_id"`
	Variants     []Variant `json:"variants"`
}

// CheapestVariant returns the lowest-priced variant, or nil when none exist.
func (p *Product) CheapestVariant() *Variant {
	if p == nil || len(p.Variants) == 0 {
		return nil
	}
	cheapest := &p.Variants[0]
	for i := range p.Variants {
		if p.Variants[i].Price < cheapest.Price {
			cheapest = &p.Variants[i]
		}
	}
	return cheapest
}

// Variant is one purchasable variation of a product.
type Variant struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price int64  `json:"price"`
}

// Collection groups products for browsing.
type Collection struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
}

// Region scopes currency and payment providers.
type Region struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CurrencyCode string    `json:"currency_code"`
	Countries    []Country `json:"countries"`
}

// Country is a shippable country within a region.
type Country struct {
	Code string `json:"iso_2"`
	Name string `json:"display_name"`
}

// Order is a completed purchase.
type Order struct {
	ID            string     `json:"id"`
	DisplayID     int        `json:"display_id"`
	Email         string     `json:"email"`
	CurrencyCode  string     `json:"currency_code"`
	Items         []LineItem `json:"items"`
	Subtotal      int64      `json:"subtotal"`
	ShippingTotal int64      `json:"shipping_total"`
	TaxTotal      int64      `json:"tax_total"`
	Total         int64      `json:"total"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CompleteResultTypeOrder marks a completion response that produced an order.
const CompleteResultTypeOrder = "order"

// CompleteResult is the union response of cart completion: either a finalized
// order or the still-open cart with an error message describing what blocked
// completion.
type CompleteResult struct {
	Type  string `json:"type"`
	Order *Order `json:"order"`
	Cart  *Cart  `json:"cart"`
	Error string `json:"error"`
}

// Finalized reports whether completion produced an order.
func (r *CompleteResult) Finalized() bool {
	return r != nil && r.Type == CompleteResultTypeOrder && r.Order != nil
}

// Package routepath stores canonical HTTP paths for storefront modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root   = "/"
	Health = "/up"

	Products               = "/products"
	ProductsPrefix         = "/products/"
	ProductPattern         = ProductsPrefix + "{handle}"
	Collections            = "/collections"
	CollectionsPrefix      = "/collections/"
	CollectionPattern      = CollectionsPrefix + "{handle}"
	Search                 = "/search"
	Cart                   = "/cart"
	CartItems              = "/cart/items"
	CartItemsPrefix        = "/cart/items/"
	CartItemPattern        = CartItemsPrefix + "{itemID}"
	CartUpdates            = "/cart/updates"
	Checkout               = "/checkout"
	CheckoutAddress        = "/checkout/address"
	CheckoutShipping       = "/checkout/shipping"
	CheckoutPayment        = "/checkout/payment"
	CheckoutComplete       = "/checkout/complete"
	OrdersPrefix           = "/orders/"
	OrderPattern           = OrdersPrefix + "{orderID}"
	SearchQueryKey         = "q"
	CheckoutStepQueryKey   = "step"
	CollectionPageQueryKey = "page"
)

// Product returns the product detail route for a handle.
func Product(handle string) string {
	return ProductsPrefix + escapeSegment(handle)
}

// Collection returns the collection listing route for a handle.
func Collection(handle string) string {
	return CollectionsPrefix + escapeSegment(handle)
}

// CartItem returns the cart line item route.
func CartItem(itemID string) string {
	return CartItemsPrefix + escapeSegment(itemID)
}

// Order returns the order confirmation route.
func Order(orderID string) string {
	return OrdersPrefix + escapeSegment(orderID)
}

// SearchWithQuery returns the search route carrying the query term.
func SearchWithQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return Search
	}
	values := url.Values{}
	values.Set(SearchQueryKey, query)
	return Search + "?" + values.Encode()
}

func escapeSegment(segment string) string {
	return url.PathEscape(strings.TrimSpace(segment))
}

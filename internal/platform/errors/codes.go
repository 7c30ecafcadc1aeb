// Package errors provides structured error handling for storefront surfaces.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Cart errors
	CodeCartNotFound  Code = "CART_NOT_FOUND"
	CodeCartCompleted Code = "CART_COMPLETED"
	CodeCartEmpty     Code = "CART_EMPTY"

	// Line item errors
	CodeLineItemNotFound   Code = "LINE_ITEM_NOT_FOUND"
	CodeLineItemInvalidQty Code = "LINE_ITEM_INVALID_QUANTITY"

	// Checkout errors
	CodeAddressInvalid        Code = "ADDRESS_INVALID"
	CodeShippingOptionInvalid Code = "SHIPPING_OPTION_INVALID"
	CodePaymentSessionFailed  Code = "PAYMENT_SESSION_FAILED"
	CodeOrderNotFound         Code = "ORDER_NOT_FOUND"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps the code to an HTTP response status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeCartNotFound, CodeLineItemNotFound, CodeOrderNotFound, CodeNotFound:
		return http.StatusNotFound
	case CodeCartCompleted, CodeCartEmpty:
		return http.StatusConflict
	case CodeLineItemInvalidQty, CodeAddressInvalid, CodeShippingOptionInvalid:
		return http.StatusBadRequest
	case CodePaymentSessionFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

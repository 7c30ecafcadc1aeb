package commerce

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type shippingOptionListEnvelope struct {
	ShippingOptions []ShippingOption `json:"shipping_options"`
}

// ListShippingOptions retrieves the fulfillment choices valid for a cart.
func (c *Client) ListShippingOptions(ctx context.Context, cartID string) ([]ShippingOption, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return nil, errors.New("cart id is required")
	}
	query := url.Values{"cart_id": []string{cartID}}
	var envelope shippingOptionListEnvelope
	if err := c.do(ctx, http.MethodGet, "/store/shipping-options", query, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.ShippingOptions, nil
}

// AddShippingMethod applies a shipping option to the cart.
func (c *Client) AddShippingMethod(ctx context.Context, cartID, optionID string) (*Cart, error) {
	cartID = strings.TrimSpace(cartID)
	optionID = strings.TrimSpace(optionID)
	if cartID == "" || optionID == "" {
		return nil, errors.New("cart id and shipping option id are required")
	}
	body := map[string]string{"option_id": optionID}
	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/store/carts/"+cartID+"/shipping-methods", nil, body, &envelope); err != nil {
		return nil, err
	}
	if envelope.Cart == nil {
		return nil, fmt.Errorf("add shipping method to cart %s: empty response", cartID)
	}
	return envelope.Cart, nil
}

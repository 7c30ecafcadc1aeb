package commerce

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	storeerrors "github.com/tidegoods/storefront/internal/platform/errors"
)

type cartEnvelope struct {
	Cart *Cart `json:"cart"`
}

// CreateCart creates a new cart scoped to a region.
func (c *Client) CreateCart(ctx context.Context, regionID string) (*Cart, error) {
	body := map[string]string{"region_id": strings.TrimSpace(regionID)}
	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/store/carts", nil, body, &envelope); err != nil {
		return nil, err
	}
	if envelope.Cart == nil {
		return nil, errors.New("create cart: empty response")
	}
	return envelope.Cart, nil
}

// GetCart retrieves the current snapshot of a cart.
func (c *Client) GetCart(ctx context.Context, cartID string) (*Cart, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return nil, errors.New("cart id is required")
	}
	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodGet, "/store/carts/"+cartID, nil, nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Cart == nil {
		return nil, fmt.Errorf("get cart %s: empty response", cartID)
	}
	return envelope.Cart, nil
}

// UpdateCartInput carries the mutable customer-facing cart fields.
type UpdateCartInput struct {
	Email           string   `json:"email,omitempty"`
	ShippingAddress *Address `json:"shipping_address,omitempty"`
}

// UpdateCart attaches contact and shipping details to a cart.
func (c *Client) UpdateCart(ctx context.Context, cartID string, input UpdateCartInput) (*Cart, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return nil, errors.New("cart id is required")
	}
	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/store/carts/"+cartID, nil, input, &envelope); err != nil {
		return nil, err
	}
	if envelope.Cart == nil {
		return nil, fmt.Errorf("update cart %s: empty response", cartID)
	}
	return envelope.Cart, nil
}

// AddLineItem adds a variant to the cart. Quantity must be at least one.
func (c *Client) AddLineItem(ctx context.Context, cartID, variantID string, quantity int) (*Cart, error) {
	cartID = strings.TrimSpace(cartID)
	variantID = strings.TrimSpace(variantID)
	if cartID == "" || variantID == "" {
		return nil, errors.New("cart id and variant id are required")
	}
	if quantity < 1 {
		return nil, storeerrors.New(storeerrors.CodeLineItemInvalidQty, fmt.Sprintf("quantity must be at least 1, got %d", quantity))
	}
	body := map[string]any{"variant_id": variantID, "quantity": quantity}
	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/store/carts/"+cartID+"/line-items", nil, body, &envelope); err != nil {
		return nil, err
	}
	if envelope.Cart == nil {
		return nil, fmt.Errorf("add line item to cart %s: empty response", cartID)
	}
	return envelope.Cart, nil
}

// UpdateLineItem sets the quantity of an existing line item.
// Removing a line is a DeleteLineItem, never a zero-quantity update.
func (c *Client) UpdateLineItem(ctx context.Context, cartID, itemID string, quantity int) (*Cart, error) {
	cartID = strings.TrimSpace(cartID)
	itemID = strings.TrimSpace(itemID)
	if cartID == "" || itemID == "" {
		return nil, errors.New("cart id and item id are required")
	}
	if quantity < 1 {
		return nil, storeerrors.New(storeerrors.CodeLineItemInvalidQty, fmt.Sprintf("quantity must be at least 1, got %d", quantity))
	}
	body := map[string]any{"quantity": quantity}
	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/store/carts/"+cartID+"/line-items/"+itemID, nil, body, &envelope); err != nil {
		return nil, err
	}
	if envelope.Cart == nil {
		return nil, fmt.Errorf("update line item %s: empty response", itemID)
	}
	return envelope.Cart, nil
}

// DeleteLineItem removes a line item from the cart.
func (c *Client) DeleteLineItem(ctx context.Context, cartID, itemID string) (*Cart, error) {
	cartID = strings.TrimSpace(cartID)
	itemID = strings.TrimSpace(itemID)
	if cartID == "" || itemID == "" {
		return nil, errors.New("cart id and item id are required")
	}
	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodDelete, "/store/carts/"+cartID+"/line-items/"+itemID, nil, nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Cart == nil {
		return nil, fmt.Errorf("delete line item %s: empty response", itemID)
	}
	return envelope.Cart, nil
}

// CompleteCart asks the backend to finalize the cart into an order.
// The result is a union: an order on success, or the open cart plus an error
// message when payment or validation blocked completion.
func (c *Client) CompleteCart(ctx context.Context, cartID string) (*CompleteResult, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return nil, errors.New("cart id is required")
	}
	var result CompleteResult
	if err := c.do(ctx, http.MethodPost, "/store/carts/"+cartID+"/complete", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

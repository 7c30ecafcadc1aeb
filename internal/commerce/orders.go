package commerce

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type orderEnvelope struct {
	Order *Order `json:"order"`
}

// GetOrder retrieves a completed order.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, errors.New("order id is required")
	}
	var envelope orderEnvelope
	if err := c.do(ctx, http.MethodGet, "/store/orders/"+orderID, nil, nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Order == nil {
		return nil, fmt.Errorf("get order %s: empty response", orderID)
	}
	return envelope.Order, nil
}

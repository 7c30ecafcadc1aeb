package commerce

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type paymentProviderListEnvelope struct {
	PaymentProviders []PaymentProvider `json:"payment_providers"`
}

// ListPaymentProviders retrieves the payment integrations for a region.
func (c *Client) ListPaymentProviders(ctx context.Context, regionID string) ([]PaymentProvider, error) {
	regionID = strings.TrimSpace(regionID)
	if regionID == "" {
		return nil, errors.New("region id is required")
	}
	query := url.Values{"region_id": []string{regionID}}
	var envelope paymentProviderListEnvelope
	if err := c.do(ctx, http.MethodGet, "/store/payment-providers", query, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.PaymentProviders, nil
}

type paymentSessionEnvelope struct {
	PaymentCollection *PaymentCollection `json:"payment_collection"`
}

// InitPaymentSession starts a payment session on the cart for one provider.
// The side effect is server-side; the returned collection records which
// provider the shopper selected.
func (c *Client) InitPaymentSession(ctx context.Context, cartID, providerID string) (*PaymentCollection, error) {
	cartID = strings.TrimSpace(cartID)
	providerID = strings.TrimSpace(providerID)
	if cartID == "" || providerID == "" {
		return nil, errors.New("cart id and provider id are required")
	}
	body := map[string]string{"provider_id": providerID}
	var envelope paymentSessionEnvelope
	if err := c.do(ctx, http.MethodPost, "/store/carts/"+cartID+"/payment-sessions", nil, body, &envelope); err != nil {
		return nil, err
	}
	if envelope.PaymentCollection == nil {
		return nil, fmt.Errorf("init payment session on cart %s: empty response", cartID)
	}
	return envelope.PaymentCollection, nil
}

package commerce

import (
	"context"
	"net/http"
)

type regionListEnvelope struct {
	Regions []Region `json:"regions"`
}

// ListRegions retrieves the regions this sales channel can sell into.
func (c *Client) ListRegions(ctx context.Context) ([]Region, error) {
	var envelope regionListEnvelope
	if err := c.do(ctx, http.MethodGet, "/store/regions", nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Regions, nil
}

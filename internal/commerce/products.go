package commerce

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ListProductsParams filters and pages the product listing.
type ListProductsParams struct {
	// Query is a free-text search over titles and descriptions.
	Query string
	// CollectionID restricts results to one collection.
	CollectionID string
	// RegionID selects the pricing region.
	RegionID string
	// Limit caps the page size. Zero lets the backend default apply.
	Limit int
	// Offset skips results for paging.
	Offset int
}

// ProductList is one page of products with the total match count.
type ProductList struct {
	Products []Product `json:"products"`
	Count    int       `json:"count"`
}

// ListProducts retrieves a page of catalog products.
func (c *Client) ListProducts(ctx context.Context, params ListProductsParams) (*ProductList, error) {
	query := url.Values{}
	if q := strings.TrimSpace(params.Query); q != "" {
		query.Set("q", q)
	}
	if id := strings.TrimSpace(params.CollectionID); id != "" {
		query.Set("collection_id", id)
	}
	if id := strings.TrimSpace(params.RegionID); id != "" {
		query.Set("region_id", id)
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		query.Set("offset", strconv.Itoa(params.Offset))
	}

	var list ProductList
	if err := c.do(ctx, http.MethodGet, "/store/products", query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

type productEnvelope struct {
	Product *Product `json:"product"`
}

// GetProduct retrieves one product by ID or handle.
func (c *Client) GetProduct(ctx context.Context, idOrHandle string) (*Product, error) {
	idOrHandle = strings.TrimSpace(idOrHandle)
	if idOrHandle == "" {
		return nil, errors.New("product id is required")
	}
	var envelope productEnvelope
	if err := c.do(ctx, http.MethodGet, "/store/products/"+idOrHandle, nil, nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Product == nil {
		return nil, fmt.Errorf("get product %s: empty response", idOrHandle)
	}
	return envelope.Product, nil
}

type collectionListEnvelope struct {
	Collections []Collection `json:"collections"`
}

// ListCollections retrieves all browsable collections.
func (c *Client) ListCollections(ctx context.Context) ([]Collection, error) {
	var envelope collectionListEnvelope
	if err := c.do(ctx, http.MethodGet, "/store/collections", nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Collections, nil
}

type collectionEnvelope struct {
	Collection *Collection `json:"collection"`
}

// GetCollection retrieves one collection by ID or handle.
func (c *Client) GetCollection(ctx context.Context, idOrHandle string) (*Collection, error) {
	idOrHandle = strings.TrimSpace(idOrHandle)
	if idOrHandle == "" {
		return nil, errors.New("collection id is required")
	}
	var envelope collectionEnvelope
	if err := c.do(ctx, http.MethodGet, "/store/collections/"+idOrHandle, nil, nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Collection == nil {
		return nil, fmt.Errorf("get collection %s: empty response", idOrHandle)
	}
	return envelope.Collection, nil
}

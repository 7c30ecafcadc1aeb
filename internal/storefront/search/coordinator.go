package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/tidegoods/storefront/internal/commerce"
)

// MaxResults caps how many hits the search panel shows.
const MaxResults = 6

// QueryFunc issues the settled query against the catalog.
type QueryFunc func(ctx context.Context, query string, limit int) ([]commerce.Product, error)

// Result is the outcome of one search request.
type Result struct {
	// Superseded is true when a newer keystroke replaced this request before
	// its debounce window elapsed; no query was issued for it.
	Superseded bool
	Query      string
	Products   []commerce.Product
}

// Coordinator debounces queries for one search panel. Each incoming request
// supersedes the previous pending one; only the request that survives the
// debounce window reaches the backend.
type Coordinator struct {
	mu      sync.Mutex
	delay   time.Duration
	query   QueryFunc
	pending chan struct{}
}

// NewCoordinator creates a search coordinator.
// A non-positive delay uses DefaultDelay.
func NewCoordinator(delay time.Duration, query QueryFunc) *Coordinator {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Coordinator{delay: delay, query: query}
}

// Search waits out the debounce window and issues the query unless a newer
// call arrives first. Superseded calls return without touching the backend.
func (c *Coordinator) Search(ctx context.Context, query string) (Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{Query: query}, nil
	}

	c.mu.Lock()
	if c.pending != nil {
		close(c.pending)
	}
	cancel := make(chan struct{})
	c.pending = cancel
	c.mu.Unlock()

	timer := time.NewTimer(c.delay)
	defer timer.Stop()

	select {
	case <-cancel:
		return Result{Superseded: true, Query: query}, nil
	case <-ctx.Done():
		return Result{Query: query}, ctx.Err()
	case <-timer.C:
	}

	c.mu.Lock()
	if c.pending == cancel {
		c.pending = nil
	}
	c.mu.Unlock()

	products, err := c.query(ctx, query, MaxResults)
	if err != nil {
		return Result{Query: query}, err
	}
	if len(products) > MaxResults {
		products = products[:MaxResults]
	}
	return Result{Query: query, Products: products}, nil
}

// Package commerce is a typed HTTP client for the remote headless commerce
// API. The storefront never computes prices, taxes, or inventory locally: it
// issues requests here and adopts whatever snapshot the backend returns.
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tidegoods/storefront/internal/platform/timeouts"
)

// publishableKeyHeader authorizes storefront-scoped requests.
const publishableKeyHeader = "x-publishable-api-key"

// authExpirySkew drops tokens shortly before their actual expiry so a request
// in flight does not cross the boundary.
const authExpirySkew = 30 * time.Second

// Config defines the inputs for the commerce client.
type Config struct {
	// BaseURL is the commerce API root, e.g. "https://commerce.example.com".
	BaseURL string
	// PublishableKey scopes requests to one sales channel.
	PublishableKey string
	// HTTPClient overrides the default traced client when set.
	HTTPClient *http.Client
}

// Client issues typed requests against the commerce API.
type Client struct {
	baseURL        string
	publishableKey string
	httpClient     *http.Client

	mu        sync.RWMutex
	authToken string
}

// New creates a commerce client from the given configuration.
func New(config Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("commerce base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse commerce base url: %w", err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeouts.CommerceRequest,
			Transport: newTracedTransport(nil),
		}
	}

	return &Client{
		baseURL:        baseURL,
		publishableKey: strings.TrimSpace(config.PublishableKey),
		httpClient:     httpClient,
	}, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetAuthToken stores a bearer token for subsequent requests.
// An empty token clears the stored credential.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	c.authToken = strings.TrimSpace(token)
	c.mu.Unlock()
}

// authHeader returns the bearer token to attach, dropping expired tokens.
// The token is parsed without signature verification: the backend is the
// verifier, the client only needs the expiry claim.
func (c *Client) authHeader() string {
	c.mu.RLock()
	token := c.authToken
	c.mu.RUnlock()
	if token == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if expiry, err := claims.GetExpirationTime(); err == nil && expiry != nil {
			if time.Until(expiry.Time) < authExpirySkew {
				c.SetAuthToken("")
				return ""
			}
		}
	}
	return token
}

// do issues one API request and decodes the response body into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.publishableKey != "" {
		req.Header.Set(publishableKeyHeader, c.publishableKey)
	}
	if token := c.authHeader(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(payload) > 0 {
		_ = json.Unmarshal(payload, apiErr)
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

package commerce

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the commerce API.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("commerce api: %s (%s, status %d)", e.Message, e.Code, e.Status)
	}
	return fmt.Sprintf("commerce api: %s (status %d)", e.Message, e.Status)
}

// IsNotFound reports whether the error is a commerce 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusNotFound
	}
	return false
}

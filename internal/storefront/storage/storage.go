// Package storage defines persistence contracts for storefront session state.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound indicates a requested session record is missing.
var ErrNotFound = errors.New("record not found")

// CartIDStore persists the active cart identifier for each browser session.
//
// This is the storefront's only durable state: one cart identifier per
// session key. Absence or a read failure reads as "no cart".
type CartIDStore interface {
	// GetCartID returns the cart identifier stored for the session, or
	// ErrNotFound when none is stored.
	GetCartID(ctx context.Context, sessionID string) (string, error)
	// SetCartID stores the cart identifier for the session, replacing any
	// previous value.
	SetCartID(ctx context.Context, sessionID, cartID string) error
	// DeleteCartID removes the stored cart identifier for the session.
	// Deleting an absent record is not an error.
	DeleteCartID(ctx context.Context, sessionID string) error
}

// Package cartstore holds the per-session cart state container.
//
// The store is an observable snapshot holder: islands render from it,
// mutations replace the snapshot wholesale with whatever the commerce
// backend returns, and every change notifies subscribers. One store exists
// per browser session and is constructed explicitly with its dependencies.
package cartstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/tidegoods/storefront/internal/commerce"
	"github.com/tidegoods/storefront/internal/platform/money"
)

// DefaultAnnounceDelay is how long a screen-reader announcement stays set
// before clearing itself.
const DefaultAnnounceDelay = 3 * time.Second

// IDStorage persists the active cart identifier across page loads.
type IDStorage interface {
	// Get returns the persisted cart identifier. Any error reads as "no cart".
	Get(ctx context.Context) (string, error)
	// Set replaces the persisted cart identifier.
	Set(ctx context.Context, cartID string) error
	// Delete removes the persisted cart identifier.
	Delete(ctx context.Context) error
}

// FetchFunc retrieves a cart snapshot by identifier during initialization.
type FetchFunc func(ctx context.Context, cartID string) (*commerce.Cart, error)

// Snapshot is an immutable view of the store handed to subscribers and
// renderers.
type Snapshot struct {
	Cart           *commerce.Cart
	Open           bool
	Loading        bool
	Announcement   string
	Updating       map[string]bool
	ItemCount      int
	FormattedTotal string
}

// Config defines the inputs for a cart store.
type Config struct {
	IDStorage IDStorage
	Formatter *money.Formatter
	// AnnounceDelay overrides DefaultAnnounceDelay when positive.
	AnnounceDelay time.Duration
}

// Store is the observable cart state container for one browser session.
type Store struct {
	mu sync.Mutex
	// mutationMu serializes remote cart mutations so concurrent line item
	// edits cannot race on which response becomes the final snapshot.
	mutationMu sync.Mutex

	cart          *commerce.Cart
	open          bool
	focusReturn   string
	loading       bool
	announcement  string
	announceTimer *time.Timer
	announceDelay time.Duration
	updating      map[string]bool

	ids       IDStorage
	formatter *money.Formatter

	subscribers    map[int]func(Snapshot)
	nextSubscriber int
}

// New creates an empty cart store.
func New(config Config) *Store {
	delay := config.AnnounceDelay
	if delay <= 0 {
		delay = DefaultAnnounceDelay
	}
	return &Store{
		announceDelay: delay,
		updating:      make(map[string]bool),
		ids:           config.IDStorage,
		formatter:     config.Formatter,
		subscribers:   make(map[int]func(Snapshot)),
	}
}

// Subscribe registers a callback invoked with a snapshot after every state
// change. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	if s == nil || fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextSubscriber
	s.nextSubscriber++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Cart returns the current cart snapshot, which may be nil.
func (s *Store) Cart() *commerce.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// SetCart replaces the snapshot wholesale and persists its identifier.
// A nil cart clears the snapshot but keeps the persisted identifier; only
// ClearCart discards it.
func (s *Store) SetCart(ctx context.Context, cart *commerce.Cart) {
	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()

	if cart != nil && strings.TrimSpace(cart.ID) != "" && s.ids != nil {
		// Persistence failure degrades to a cart that does not survive the
		// session; the snapshot itself stays valid.
		_ = s.ids.Set(ctx, cart.ID)
	}
	s.notify()
}

// ClearCart wipes the snapshot and the persisted identifier.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	s.cart = nil
	s.updating = make(map[string]bool)
	s.mu.Unlock()

	if s.ids != nil {
		_ = s.ids.Delete(ctx)
	}
	s.notify()
}

// Initialize adopts the persisted cart at the start of a session.
//
// A missing identifier, a fetch failure, or an already-completed cart all
// resolve to "no usable cart": the identifier is discarded and no error is
// surfaced.
func (s *Store) Initialize(ctx context.Context, fetch FetchFunc) {
	if s == nil || s.ids == nil || fetch == nil {
		return
	}
	cartID, err := s.ids.Get(ctx)
	if err != nil || strings.TrimSpace(cartID) == "" {
		return
	}

	s.setLoading(true)
	cart, err := fetch(ctx, cartID)
	s.setLoading(false)

	if err != nil || cart == nil || cart.Completed() {
		_ = s.ids.Delete(ctx)
		return
	}
	s.SetCart(ctx, cart)
}

// OpenCart opens the cart panel and records where focus should return.
func (s *Store) OpenCart(trigger string) {
	s.mu.Lock()
	s.open = true
	if trimmed := strings.TrimSpace(trigger); trimmed != "" {
		s.focusReturn = trimmed
	}
	s.mu.Unlock()
	s.notify()
}

// CloseCart closes the cart panel and returns the recorded focus target.
func (s *Store) CloseCart() string {
	s.mu.Lock()
	s.open = false
	target := s.focusReturn
	s.focusReturn = ""
	s.mu.Unlock()
	s.notify()
	return target
}

// IsOpen reports whether the cart panel is open.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Announce sets the assistive-technology announcement. The message clears
// itself after the configured delay; a newer announcement supersedes the
// pending timer.
func (s *Store) Announce(message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	s.mu.Lock()
	if s.announceTimer != nil {
		s.announceTimer.Stop()
	}
	s.announcement = message
	s.announceTimer = time.AfterFunc(s.announceDelay, func() {
		s.mu.Lock()
		s.announcement = ""
		s.announceTimer = nil
		s.mu.Unlock()
		s.notify()
	})
	s.mu.Unlock()
	s.notify()
}

// Announcement returns the current announcement, if any.
func (s *Store) Announcement() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.announcement
}

// SetItemUpdating marks or clears the in-flight state of one line item.
func (s *Store) SetItemUpdating(itemID string, updating bool) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return
	}
	s.mu.Lock()
	if updating {
		s.updating[itemID] = true
	} else {
		delete(s.updating, itemID)
	}
	s.mu.Unlock()
	s.notify()
}

// ItemUpdating reports whether a line item has a mutation in flight.
func (s *Store) ItemUpdating(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updating[itemID]
}

// ItemCount returns the sum of line item quantities, zero without a cart.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

// FormattedTotal returns the locale-formatted grand total, empty without a
// cart.
func (s *Store) FormattedTotal() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.formattedTotalLocked()
}

// Mutate runs one serialized remote cart mutation for a line item.
//
// The item is marked updating for the duration. On success the returned cart
// replaces the snapshot and the announcement is set; on failure only the
// updating flag is cleared, leaving the rest of the state untouched for the
// user to retry.
func (s *Store) Mutate(ctx context.Context, itemID, announcement string, mutation func(ctx context.Context) (*commerce.Cart, error)) error {
	if mutation == nil {
		return nil
	}
	s.SetItemUpdating(itemID, true)
	defer s.SetItemUpdating(itemID, false)

	s.mutationMu.Lock()
	cart, err := mutation(ctx)
	s.mutationMu.Unlock()
	if err != nil {
		return err
	}

	s.SetCart(ctx, cart)
	s.Announce(announcement)
	return nil
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
	s.notify()
}

func (s *Store) snapshotLocked() Snapshot {
	updating := make(map[string]bool, len(s.updating))
	for id, v := range s.updating {
		updating[id] = v
	}
	return Snapshot{
		Cart:           s.cart,
		Open:           s.open,
		Loading:        s.loading,
		Announcement:   s.announcement,
		Updating:       updating,
		ItemCount:      s.cart.ItemCount(),
		FormattedTotal: s.formattedTotalLocked(),
	}
}

func (s *Store) formattedTotalLocked() string {
	if s.cart == nil {
		return ""
	}
	return s.formatter.Format(s.cart.Total, s.cart.CurrencyCode)
}

func (s *Store) notify() {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	callbacks := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		callbacks = append(callbacks, fn)
	}
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(snapshot)
	}
}

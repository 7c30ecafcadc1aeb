package storefront

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/tidegoods/storefront/internal/storefront/cartstore"
	"github.com/tidegoods/storefront/internal/storefront/platform/sessioncookie"
	"github.com/tidegoods/storefront/internal/storefront/search"
	"github.com/tidegoods/storefront/internal/storefront/storage"
)

// session holds the per-browser state the storefront keeps in memory: the
// observable cart store and the search coordinator. Everything durable lives
// behind storage.CartIDStore, so a restarted process rebuilds sessions from
// the cookie and the persisted cart identifier alone.
type session struct {
	id     string
	store  *cartstore.Store
	search *search.Coordinator

	mu        sync.Mutex
	cartError string
}

func (s *session) setCartError(message string) {
	s.mu.Lock()
	s.cartError = message
	s.mu.Unlock()
}

func (s *session) takeCartError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartError
}

func (s *session) clearCartError() {
	s.setCartError("")
}

// sessionIDStorage adapts the shared CartIDStore to one session's view.
type sessionIDStorage struct {
	ids       storage.CartIDStore
	sessionID string
}

func (s sessionIDStorage) Get(ctx context.Context) (string, error) {
	return s.ids.GetCartID(ctx, s.sessionID)
}

func (s sessionIDStorage) Set(ctx context.Context, cartID string) error {
	return s.ids.SetCartID(ctx, s.sessionID, cartID)
}

func (s sessionIDStorage) Delete(ctx context.Context) error {
	return s.ids.DeleteCartID(ctx, s.sessionID)
}

// maxTrackedSessions caps the in-memory registry. Session identifiers come
// from client cookies, so without a cap a client minting fresh identifiers
// could grow the registry without bound.
const maxTrackedSessions = 10000

// sessionRegistry tracks live sessions by identifier. Entries record when
// they were last touched so idle sessions can be evicted; a session dropped
// here is rebuilt from the cookie and durable storage on its next request.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session
	lastSeen map[string]time.Time
	capacity int
	now      func() time.Time
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*session),
		lastSeen: make(map[string]time.Time),
		capacity: maxTrackedSessions,
		now:      time.Now,
	}
}

func (r *sessionRegistry) lookup(sessionID string) (*session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[sessionID]
	if ok {
		r.lastSeen[sessionID] = r.now()
	}
	return sess, ok
}

func (r *sessionRegistry) put(sess *session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[sess.id]; !exists && len(r.sessions) >= r.capacity {
		r.evictOldestLocked()
	}
	r.sessions[sess.id] = sess
	r.lastSeen[sess.id] = r.now()
}

func (r *sessionRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *sessionRegistry) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for sessionID, seen := range r.lastSeen {
		if oldestID == "" || seen.Before(oldest) {
			oldestID = sessionID
			oldest = seen
		}
	}
	if oldestID != "" {
		delete(r.sessions, oldestID)
		delete(r.lastSeen, oldestID)
	}
}

// evictIdle drops sessions not touched since the cutoff and reports how many
// were removed.
func (r *sessionRegistry) evictIdle(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for sessionID, seen := range r.lastSeen {
		if seen.Before(cutoff) {
			delete(r.sessions, sessionID)
			delete(r.lastSeen, sessionID)
			evicted++
		}
	}
	return evicted
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic("session id entropy unavailable: " + err.Error())
	}
	return hex.EncodeToString(buf)
}

// ensureSession resolves the session for the request, creating one (and its
// cookie) when missing. A fresh session initializes its cart store from the
// persisted cart identifier before first render.
func (s *Server) ensureSession(w http.ResponseWriter, r *http.Request) *session {
	if sessionID, ok := sessioncookie.Read(r); ok {
		if sess, found := s.sessions.lookup(sessionID); found {
			return sess
		}
		return s.createSession(w, r, sessionID)
	}
	return s.createSession(w, r, newSessionID())
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request, sessionID string) *session {
	sess := &session{
		id: sessionID,
		store: cartstore.New(cartstore.Config{
			IDStorage: sessionIDStorage{ids: s.ids, sessionID: sessionID},
			Formatter: s.formatter,
		}),
		search: search.NewCoordinator(search.DefaultDelay, s.searchProducts),
	}
	sess.store.Initialize(r.Context(), s.commerce.GetCart)
	s.sessions.put(sess)
	sessioncookie.WriteWithPolicy(w, r, sessionID, s.schemePolicy)
	return sess
}

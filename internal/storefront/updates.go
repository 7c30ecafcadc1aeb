package storefront

import (
	"log"
	"net/http"

	"golang.org/x/net/websocket"

	"github.com/tidegoods/storefront/internal/storefront/cartstore"
	"github.com/tidegoods/storefront/internal/storefront/platform/sessioncookie"
)

// cartUpdate is the wire payload pushed to connected clients whenever their
// cart snapshot changes.
type cartUpdate struct {
	ItemCount      int    `json:"item_count"`
	FormattedTotal string `json:"formatted_total"`
	Announcement   string `json:"announcement"`
	Open           bool   `json:"open"`
}

// cartUpdatesHandler streams cart snapshot changes over a websocket so open
// tabs keep their cart badge in sync with mutations from other tabs.
func (s *Server) cartUpdatesHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := sessioncookie.Read(r)
		if !ok {
			http.Error(w, "session required", http.StatusUnauthorized)
			return
		}
		sess, found := s.sessions.lookup(sessionID)
		if !found {
			http.Error(w, "session required", http.StatusUnauthorized)
			return
		}

		websocket.Handler(func(conn *websocket.Conn) {
			defer conn.Close()

			updates := make(chan cartUpdate, 8)
			unsubscribe := sess.store.Subscribe(func(snapshot cartstore.Snapshot) {
				select {
				case updates <- updateFromSnapshot(snapshot):
				default:
				}
			})
			defer unsubscribe()

			if err := websocket.JSON.Send(conn, updateFromSnapshot(sess.store.Snapshot())); err != nil {
				return
			}

			done := make(chan struct{})
			go func() {
				// Drain client frames so we notice the close.
				var discard string
				for {
					if err := websocket.Message.Receive(conn, &discard); err != nil {
						close(done)
						return
					}
				}
			}()

			for {
				select {
				case <-done:
					return
				case update := <-updates:
					if err := websocket.JSON.Send(conn, update); err != nil {
						log.Printf("cart updates send failed for session %s: %v", sessionID, err)
						return
					}
				}
			}
		}).ServeHTTP(w, r)
	})
}

func updateFromSnapshot(snapshot cartstore.Snapshot) cartUpdate {
	return cartUpdate{
		ItemCount:      snapshot.ItemCount,
		FormattedTotal: snapshot.FormattedTotal,
		Announcement:   snapshot.Announcement,
		Open:           snapshot.Open,
	}
}

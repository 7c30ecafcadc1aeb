// Package storefront serves the server-rendered shop: catalog pages, the cart
// panel, search suggestions, and the checkout flow. Dynamic islands are HTMX
// fragments swapped into the page; full page loads render the same content
// inside the shared layout.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/tidegoods/storefront/internal/commerce"
	"github.com/tidegoods/storefront/internal/platform/money"
	"github.com/tidegoods/storefront/internal/platform/timeouts"
	"github.com/tidegoods/storefront/internal/storefront/platform/requestmeta"
	"github.com/tidegoods/storefront/internal/storefront/platform/sessioncookie"
	"github.com/tidegoods/storefront/internal/storefront/routepath"
	"github.com/tidegoods/storefront/internal/storefront/static"
	"github.com/tidegoods/storefront/internal/storefront/storage/sqlite"
)

// Config holds storefront server configuration.
type Config struct {
	HTTPAddr        string
	CommerceBaseURL string
	PublishableKey  string
	// AuthToken is an optional bearer token sent to the commerce API, for
	// backends that scope the store endpoints to an authenticated customer.
	AuthToken string
	DBPath    string
	AppName         string
	// TrustForwardedProto marks cookies Secure behind an HTTPS-terminating
	// proxy.
	TrustForwardedProto bool
}

// Server is the storefront HTTP server.
type Server struct {
	httpAddr     string
	appName      string
	commerce     *commerce.Client
	ids          *sqlite.Store
	sessions     *sessionRegistry
	formatter    *money.Formatter
	schemePolicy requestmeta.SchemePolicy
	httpServer   *http.Server

	regionMu sync.Mutex
	region   *commerce.Region
}

// NewServer builds a configured storefront server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	appName := strings.TrimSpace(config.AppName)
	if appName == "" {
		appName = "Tide Goods"
	}
	dbPath := strings.TrimSpace(config.DBPath)
	if dbPath == "" {
		dbPath = "storefront.db"
	}

	client, err := commerce.New(commerce.Config{
		BaseURL:        config.CommerceBaseURL,
		PublishableKey: config.PublishableKey,
	})
	if err != nil {
		return nil, fmt.Errorf("init commerce client: %w", err)
	}
	if token := strings.TrimSpace(config.AuthToken); token != "" {
		client.SetAuthToken(token)
	}

	ids, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cart session storage: %w", err)
	}

	server := &Server{
		httpAddr:     httpAddr,
		appName:      appName,
		commerce:     client,
		ids:          ids,
		sessions:     newSessionRegistry(),
		formatter:    money.NewFormatter(language.English),
		schemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: config.TrustForwardedProto},
	}
	server.httpServer = &http.Server{
		Addr:              httpAddr,
		Handler:           server.NewHandler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	return server, nil
}

// NewHandler builds the storefront route table.
func (s *Server) NewHandler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static.FS)))
	mux.HandleFunc("GET "+routepath.Health, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("GET "+routepath.Root+"{$}", s.handleHome)
	mux.HandleFunc("GET "+routepath.Products, s.handleProductList)
	mux.HandleFunc("GET "+routepath.ProductPattern, s.handleProductDetail)
	mux.HandleFunc("GET "+routepath.Collections, s.handleCollectionList)
	mux.HandleFunc("GET "+routepath.CollectionPattern, s.handleCollectionDetail)
	mux.HandleFunc("GET "+routepath.Search, s.handleSearch)

	mux.HandleFunc("GET "+routepath.Cart, s.handleCartPanel)
	mux.HandleFunc("POST "+routepath.Cart+"/close", s.handleCartClose)
	mux.HandleFunc("POST "+routepath.CartItems, s.handleCartAdd)
	mux.HandleFunc("POST "+routepath.CartItemPattern, s.handleCartItemUpdate)
	mux.HandleFunc("DELETE "+routepath.CartItemPattern, s.handleCartItemRemove)
	mux.Handle("GET "+routepath.CartUpdates, s.cartUpdatesHandler())

	mux.HandleFunc("GET "+routepath.Checkout, s.handleCheckout)
	mux.HandleFunc("GET "+routepath.CheckoutAddress, s.handleCheckoutAddressPage)
	mux.HandleFunc("POST "+routepath.CheckoutAddress, s.handleCheckoutAddressSubmit)
	mux.HandleFunc("GET "+routepath.CheckoutShipping, s.handleCheckoutShippingPage)
	mux.HandleFunc("POST "+routepath.CheckoutShipping, s.handleCheckoutShippingSubmit)
	mux.HandleFunc("GET "+routepath.CheckoutPayment, s.handleCheckoutPaymentPage)
	mux.HandleFunc("POST "+routepath.CheckoutComplete, s.handleCheckoutComplete)

	mux.HandleFunc("GET "+routepath.OrderPattern, s.handleOrder)

	return mux
}

// ListenAndServe serves HTTP until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("storefront server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("storefront listening on %s", s.httpAddr)
	go s.sweepSessions(ctx)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// sessionSweepInterval is how often idle sessions and their stored cart
// identifiers are reaped.
const sessionSweepInterval = time.Hour

// sweepSessions periodically expires sessions idle longer than the cookie
// TTL, dropping both the in-memory state and the persisted cart identifier.
func (s *Server) sweepSessions(ctx context.Context) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-sessioncookie.TTL)
			evicted := s.sessions.evictIdle(cutoff)
			pruned, err := s.ids.DeleteStale(ctx, cutoff)
			if err != nil {
				log.Printf("prune cart sessions: %v", err)
			}
			if evicted > 0 || pruned > 0 {
				log.Printf("expired %d idle sessions, pruned %d stored cart ids", evicted, pruned)
			}
		}
	}
}

// Close releases storage held by the server.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.ids != nil {
		if err := s.ids.Close(); err != nil {
			log.Printf("close cart session storage: %v", err)
		}
	}
}

// resolveRegion returns the storefront's sales region, fetching and caching
// it on first use. Every cart is created in this region.
func (s *Server) resolveRegion(ctx context.Context) (*commerce.Region, error) {
	s.regionMu.Lock()
	defer s.regionMu.Unlock()
	if s.region != nil {
		return s.region, nil
	}
	regions, err := s.commerce.ListRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	if len(regions) == 0 {
		return nil, errors.New("no sales regions configured")
	}
	s.region = &regions[0]
	return s.region, nil
}

// searchProducts is the backend query behind the search island.
func (s *Server) searchProducts(ctx context.Context, query string, limit int) ([]commerce.Product, error) {
	list, err := s.commerce.ListProducts(ctx, commerce.ListProductsParams{Query: query, Limit: limit})
	if err != nil {
		return nil, err
	}
	return list.Products, nil
}

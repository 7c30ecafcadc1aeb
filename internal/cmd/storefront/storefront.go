// Package storefront wires configuration and lifecycle for the storefront
// server process.
package storefront

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/tidegoods/storefront/internal/platform/config"
	"github.com/tidegoods/storefront/internal/platform/otel"
	storefrontsrv "github.com/tidegoods/storefront/internal/storefront"
)

// Config holds storefront command configuration.
type Config struct {
	HTTPAddr            string `env:"STOREFRONT_HTTP_ADDR"         envDefault:"localhost:8080"`
	CommerceBaseURL     string `env:"STOREFRONT_COMMERCE_BASE_URL" envDefault:"http://localhost:9000"`
	PublishableKey      string `env:"STOREFRONT_PUBLISHABLE_KEY"`
	CommerceAuthToken   string `env:"STOREFRONT_COMMERCE_AUTH_TOKEN"`
	DBPath              string `env:"STOREFRONT_DB_PATH"           envDefault:"storefront.db"`
	AppName             string `env:"STOREFRONT_APP_NAME"          envDefault:"Tide Goods"`
	TrustForwardedProto bool   `env:"STOREFRONT_TRUST_PROXY"       envDefault:"false"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.CommerceBaseURL, "commerce-base-url", cfg.CommerceBaseURL, "commerce API base URL")
	fs.StringVar(&cfg.PublishableKey, "publishable-key", cfg.PublishableKey, "commerce publishable API key")
	fs.StringVar(&cfg.CommerceAuthToken, "commerce-auth-token", cfg.CommerceAuthToken, "optional commerce API bearer token")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite path for cart session storage")
	fs.StringVar(&cfg.AppName, "app-name", cfg.AppName, "storefront display name")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-proxy", cfg.TrustForwardedProto, "trust X-Forwarded-Proto for secure cookies")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the storefront server.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "storefront")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	server, err := storefrontsrv.NewServer(storefrontsrv.Config{
		HTTPAddr:            cfg.HTTPAddr,
		CommerceBaseURL:     cfg.CommerceBaseURL,
		PublishableKey:      cfg.PublishableKey,
		AuthToken:           cfg.CommerceAuthToken,
		DBPath:              cfg.DBPath,
		AppName:             cfg.AppName,
		TrustForwardedProto: cfg.TrustForwardedProto,
	})
	if err != nil {
		return fmt.Errorf("init storefront server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve storefront: %w", err)
	}
	return nil
}

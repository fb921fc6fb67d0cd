// Package web runs the site server command.
package web

import (
	"context"
	"flag"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/meridianworks/meridian.studio/internal/platform/config"
	"github.com/meridianworks/meridian.studio/internal/platform/otel"
	"github.com/meridianworks/meridian.studio/internal/web"
)

// ParseConfig loads configuration from .env, the environment, and flags,
// in that order of precedence (flags win).
func ParseConfig(fs *flag.FlagSet, args []string) (web.Config, error) {
	// A missing .env file is the normal production case.
	_ = godotenv.Load()

	var cfg web.Config
	if err := config.ParseEnv(&cfg); err != nil {
		return web.Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.IdentityBaseURL, "identity-base-url", cfg.IdentityBaseURL, "Identity service base URL")
	if err := fs.Parse(args); err != nil {
		return web.Config{}, err
	}
	return cfg, nil
}

// Run starts the web server and blocks until ctx ends.
func Run(ctx context.Context, cfg web.Config) error {
	shutdownTracing, err := otel.Setup(ctx, "meridian-web")
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		_ = shutdownTracing(context.Background())
	}()

	server, err := web.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}

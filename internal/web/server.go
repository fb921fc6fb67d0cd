// Package web hosts the multi-brand site: marketing pages, the client
// portal, the admin console, share links, and the component playground.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/meridianworks/meridian.studio/internal/identity"
	"github.com/meridianworks/meridian.studio/internal/storage/sqlite"
	"github.com/meridianworks/meridian.studio/internal/web/access"
	"github.com/meridianworks/meridian.studio/internal/web/brand"
	"github.com/meridianworks/meridian.studio/internal/web/gate"
	"github.com/meridianworks/meridian.studio/internal/web/module"
	"github.com/meridianworks/meridian.studio/internal/web/modules"
	"github.com/meridianworks/meridian.studio/internal/web/platform/httpx"
	"github.com/meridianworks/meridian.studio/internal/web/platform/metrics"
	"github.com/meridianworks/meridian.studio/internal/web/platform/requestmeta"
	"github.com/meridianworks/meridian.studio/internal/web/portal"
	"github.com/meridianworks/meridian.studio/internal/web/routepath"
	"github.com/meridianworks/meridian.studio/internal/web/session"
	"github.com/meridianworks/meridian.studio/internal/web/units"
)

const shutdownTimeout = 10 * time.Second

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr            string `env:"MERIDIAN_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath              string `env:"MERIDIAN_WEB_DB_PATH" envDefault:"meridian.db"`
	IdentityBaseURL     string `env:"MERIDIAN_IDENTITY_BASE_URL"`
	IdentityAPIKey      string `env:"MERIDIAN_IDENTITY_API_KEY"`
	AccessTokenSecret   string `env:"MERIDIAN_ACCESS_TOKEN_SECRET"`
	TrustForwardedProto bool   `env:"MERIDIAN_TRUST_FORWARDED_PROTO"`
}

// Server hosts the site HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      *sqlite.Store
}

// NewServer builds a configured web server.
func NewServer(cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if strings.TrimSpace(cfg.IdentityBaseURL) == "" {
		return nil, errors.New("identity base url is required")
	}
	if strings.TrimSpace(cfg.AccessTokenSecret) == "" {
		return nil, errors.New("access token secret is required")
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	policy := requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto}
	instruments := metrics.NewRegistry()
	sessions := &session.Provider{
		Identity:  identity.NewHTTPClient(cfg.IdentityBaseURL, cfg.IdentityAPIKey, nil),
		Inspector: &identity.TokenInspector{Secret: []byte(cfg.AccessTokenSecret)},
		Metrics:   instruments,
		Policy:    policy,
	}
	profiles := portal.NewProfiles(store)

	moduleSet := modules.Default(modules.Dependencies{
		Shares:       store,
		Profiles:     profiles,
		Sessions:     sessions,
		Units:        units.DefaultRegistry(),
		Metrics:      instruments,
		SchemePolicy: policy,
	})
	featureHandler, err := modules.Compose(moduleSet)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("compose modules: %w", err)
	}

	guard := &gate.Gate{
		Brands:   brand.DefaultRegistry(),
		Sessions: sessions,
		Profiles: profiles,
		Metrics:  instruments,
	}

	root := http.NewServeMux()
	root.HandleFunc("GET "+routepath.Health, healthHandler(moduleSet))
	root.Handle("GET "+routepath.Metrics, instruments.Handler())
	root.Handle("/", guard.Wrap(featureHandler))

	handler := httpx.Chain(root,
		httpx.RequestID(),
		httpx.RecoverPanic(),
		observeRequests(instruments),
	)

	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		store: store,
	}, nil
}

func healthHandler(moduleSet []module.Module) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		healthy := modules.Health(moduleSet)
		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		_ = httpx.WriteJSON(w, status, map[string]bool{"ok": healthy})
	}
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
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

// Handler exposes the composed handler for in-process tests.
func (s *Server) Handler() http.Handler {
	if s == nil || s.httpServer == nil {
		return nil
	}
	return s.httpServer.Handler
}

// Close releases the server's storage resources.
func (s *Server) Close() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		log.Printf("close store: %v", err)
	}
}

// observeRequests records request latency by route family and status.
func observeRequests(instruments *metrics.Registry) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(recorder, r)
			family := access.Classify(r.URL.Path).Family
			instruments.ObserveRequest(string(family), recorder.status, time.Since(start))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

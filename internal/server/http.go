package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouteRegistrar mounts domain routes on the shared mux.
type RouteRegistrar interface {
	RegisterRoutes(mux Router)
}

// NewHTTPServer wires base routes (health, metrics, ping) plus the domain
// routes and wraps them in the request middleware chain.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, store Pinger, routes RouteRegistrar) *http.Server {
	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      NewHandler(cfg, logger, store, routes),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// NewHandler builds the root handler used by NewHTTPServer.
func NewHandler(cfg *config.App, logger zerolog.Logger, store Pinger, routes RouteRegistrar) http.Handler {
	mux := instrumentedMux{http.NewServeMux()}

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondBadGateway(w)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if routes != nil {
		routes.RegisterRoutes(mux)
	}

	// Anything unmatched gets the JSON envelope instead of the mux's plain text.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w)
	})

	var handler http.Handler = mux
	handler = withRequestLogging(logger, handler)
	handler = withCORS(cfg.CORS, handler)
	return handler
}

package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/gokatarajesh/trivia-api/internal/config"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

const unmatchedRoute = "unmatched"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "http_requests_total",
		Help:      "HTTP requests served, by method, route pattern and status code.",
	}, []string{"method", "route", "code"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "trivia",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency, by method and route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Router is the registration surface handed to domain handlers.
type Router = interface {
	HandleFunc(pattern string, handler func(http.ResponseWriter, *http.Request))
}

// instrumentedMux registers every route behind the request counter and
// latency histogram, curried with the route pattern.
type instrumentedMux struct {
	*http.ServeMux
}

func (m instrumentedMux) Handle(pattern string, handler http.Handler) {
	m.ServeMux.Handle(pattern, instrument(pattern, handler))
}

func (m instrumentedMux) HandleFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	m.Handle(pattern, http.HandlerFunc(handler))
}

func instrument(pattern string, next http.Handler) http.Handler {
	route := prometheus.Labels{"route": routeLabel(pattern)}
	return promhttp.InstrumentHandlerDuration(
		httpDuration.MustCurryWith(route),
		promhttp.InstrumentHandlerCounter(httpRequests.MustCurryWith(route), next),
	)
}

func routeLabel(pattern string) string {
	if pattern == "/" {
		return unmatchedRoute
	}
	return pattern
}

// withRequestLogging installs a request-scoped logger tagged with a request
// id and logs one line per completed request.
func withRequestLogging(logger zerolog.Logger, next http.Handler) http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		reqLogger := hlog.FromRequest(r)
		event := reqLogger.Info()
		if status >= http.StatusInternalServerError {
			event = reqLogger.Error()
		}
		event.
			Int("status", status).
			Int("bytes", size).
			Dur("duration", duration).
			Msg("http request")
	})
	return hlog.NewHandler(logger)(withRequestID(access(next)))
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path)
		})
		next.ServeHTTP(w, r)
	})
}

// withCORS applies the configured CORS policy and answers preflight
// requests with 204.
func withCORS(cfg config.CORS, next http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}).Handler(next)
}

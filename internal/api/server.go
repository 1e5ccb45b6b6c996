package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"servery/internal/clock"
	"servery/internal/events"
	"servery/internal/restoapi"
	"servery/internal/schedule"
)

// DetailsFetcher is the slice of the backend client the API needs.
type DetailsFetcher interface {
	Details(ctx context.Context, restID int64) (*restoapi.Details, error)
}

// Options configures the HTTP server.
type Options struct {
	Port               int
	APIKey             string
	DefaultLeadMinutes int
	RateRPS            float64
	RateBurst          int
}

// HTTPServer serves the schedule endpoints to the mobile app.
type HTTPServer struct {
	server  *http.Server
	fetcher DetailsFetcher
	src     clock.Source
	gen     *schedule.Generator
	bus     *events.Bus
	limiter *rate.Limiter
	opts    Options
	logger  *zerolog.Logger
	redis   *redis.Client
}

// NewHTTPServer wires the routes and middleware.
func NewHTTPServer(fetcher DetailsFetcher, src clock.Source, bus *events.Bus, opts Options, logger *zerolog.Logger) *HTTPServer {
	s := &HTTPServer{
		fetcher: fetcher,
		src:     src,
		gen:     schedule.NewGenerator(src),
		bus:     bus,
		opts:    opts,
		logger:  logger,
	}

	if opts.RateRPS > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateRPS), opts.RateBurst)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/restaurants/{id}/status", s.withMiddleware(s.handleStatus))
	mux.HandleFunc("GET /api/v1/restaurants/{id}/order-slots", s.withMiddleware(s.handleOrderSlots))
	mux.HandleFunc("GET /api/v1/restaurants/{id}/reservation-slots", s.withMiddleware(s.handleReservationSlots))
	mux.HandleFunc("GET /health", s.handleHealth)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s
}

// UseRedis lets the health endpoint report Redis readiness.
func (s *HTTPServer) UseRedis(rdb *redis.Client) {
	s.redis = rdb
}

// Start serves until the context is cancelled.
func (s *HTTPServer) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.server.Shutdown(ctxShutdown)
	}()

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		if s.limiter != nil && !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		if s.opts.APIKey != "" && r.Header.Get("X-API-Key") != s.opts.APIKey {
			writeError(w, http.StatusUnauthorized, "invalid api key")
			return
		}

		if s.logger != nil {
			s.logger.Debug().
				Str("request_id", requestID).
				Str("path", r.URL.Path).
				Msg("api request")
		}
		next(w, r)
	}
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.redis != nil {
		ctxPing, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		if err := s.redis.Ping(ctxPing).Err(); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis not ready")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/viral-agent/internal/api"
	"github.com/viral-agent/internal/client"
	"github.com/viral-agent/internal/config"
	"github.com/viral-agent/internal/storage"
	"github.com/viral-agent/pkg/logger"
	"github.com/viral-agent/pkg/ratelimit"
)

// limiterIdleTTL is how long an idle client's bucket is kept
const limiterIdleTTL = 15 * time.Minute

// Server hosts the front page and the generation endpoint
type Server struct {
	cfg        config.ServerConfig
	httpServer *http.Server
	limiter    *ratelimit.KeyedLimiter
	log        *logger.Logger
}

// Options holds the components the server routes to
type Options struct {
	Generator  api.Generator
	Page       http.Handler       // Optional, nil serves only the API
	Repository storage.Repository // Optional, nil disables history
}

// New builds the server and its routes
func New(cfg *config.Config, opts Options, log *logger.Logger) *Server {
	s := &Server{
		cfg: cfg.Server,
		log: log.WithComponent("server"),
	}

	apiHandler := api.NewHandler(opts.Generator, log)
	if opts.Repository != nil {
		apiHandler.SetRepository(opts.Repository)
	}

	limit := func(h http.Handler) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		s.limiter = ratelimit.NewKeyedLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, limiterIdleTTL)
		limit = func(h http.Handler) http.Handler {
			return withRateLimit(s.limiter, cfg.RateLimit.ExemptLoopback, s.log, h)
		}
	}

	mux := http.NewServeMux()
	mux.Handle("POST "+client.GeneratePath, limit(apiHandler))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	if opts.Page != nil {
		mux.Handle("GET /{$}", opts.Page)
		mux.Handle("POST /{$}", limit(opts.Page))
	}

	var handler http.Handler = mux
	handler = withRecover(s.log, handler)
	handler = withAccessLog(s.log, handler)
	handler = withRequestID(log, handler)

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens on the configured address and blocks until the server stops
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln and blocks until the server stops
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info().Str("addr", ln.Addr().String()).Msg("HTTP server starting")
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// SweepLimiter drops idle rate limiter buckets
func (s *Server) SweepLimiter() int {
	if s.limiter == nil {
		return 0
	}
	return s.limiter.Sweep()
}

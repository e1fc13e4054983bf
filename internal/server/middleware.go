package server

import (
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/viral-agent/internal/api"
	"github.com/viral-agent/internal/client"
	"github.com/viral-agent/internal/models"
	"github.com/viral-agent/pkg/logger"
	"github.com/viral-agent/pkg/ratelimit"
)

// RequestIDHeader carries the per-request correlation ID
const RequestIDHeader = client.RequestIDHeader

// statusRecorder captures the status code and size written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// withRequestID assigns a request ID (keeping a valid inbound one) and
// stores a request-scoped logger in the context
func withRequestID(log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := logger.ContextWithRequestID(r.Context(), id)
		ctx = logger.NewContext(ctx, log.WithRequestID(id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withAccessLog logs one line per request
func withAccessLog(fallback *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		logger.FromContext(r.Context(), fallback).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", rec.bytes).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}

// withRecover turns a handler panic into a generic 500
func withRecover(fallback *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				logger.FromContext(r.Context(), fallback).Error().
					Interface("panic", p).
					Bytes("stack", debug.Stack()).
					Msg("Recovered from handler panic")
				api.WriteJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: api.MsgGenerateFailed})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients that exceed their per-IP budget.
// Loopback callers (the front page calling the API) can be exempted.
func withRateLimit(limiter *ratelimit.KeyedLimiter, exemptLoopback bool, fallback *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)
		if exemptLoopback && isLoopback(key) {
			next.ServeHTTP(w, r)
			return
		}
		if !limiter.Allow(key) {
			logger.FromContext(r.Context(), fallback).Warn().
				Str("client", key).
				Msg("Rate limit exceeded")
			w.Header().Set("Retry-After", "60")
			api.WriteJSON(w, http.StatusTooManyRequests, models.ErrorResponse{Error: api.MsgTooManyRequests})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func isLoopback(host string) bool {
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

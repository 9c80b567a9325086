package transport

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ipLimiters keeps one token bucket per client address. Limiters are never
// evicted; like the task registry, the gateway accepts unbounded growth for
// its process lifetime.
type ipLimiters struct {
	mu       sync.Mutex
	rpm      int
	limiters map[string]*rate.Limiter
}

func newIPLimiters(rpm int) *ipLimiters {
	return &ipLimiters{rpm: rpm, limiters: map[string]*rate.Limiter{}}
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	limiter, ok := l.limiters[ip]
	if !ok {
		// Convert RPM to requests per second for the limiter
		limiter = rate.NewLimiter(rate.Limit(l.rpm)/60.0, l.rpm)
		l.limiters[ip] = limiter
	}
	return limiter
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// rateLimit rejects requests over the per-client budget on API paths.
func (t *Transport) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !t.limiters.get(clientIP(r)).Allow() {
			writeError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// cors enforces the origin allow-list. Requests without an Origin header
// (non-browser clients) always pass. Allow-listed origins get the CORS
// response headers and OPTIONS preflight handling; everything else is 403.
func (t *Transport) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}
		if _, ok := t.allowedOrigins[origin]; !ok {
			writeError(w, http.StatusForbidden, "Not allowed by CORS")
			return
		}
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Add("Vary", "Origin")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// logRequests tags every request with an id and logs method, path, status
// and duration.
func (t *Transport) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(rec, r)

		t.logger.Info("Request handled",
			zap.String("requestId", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// recoverPanics is the process-wide error translator for uncaught handler
// panics: log, capture to Sentry when configured, respond 500.
func (t *Transport) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				err := fmt.Errorf("panic in handler: %v", rec)
				t.logger.Error("Recovered from handler panic",
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec))
				t.captureError(err)
				writeError(w, http.StatusInternalServerError, err.Error())
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (t *Transport) captureError(err error) {
	if t.hub == nil {
		return
	}
	t.hub.CaptureException(err)
}

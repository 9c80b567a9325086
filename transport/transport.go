// Package transport is the HTTP boundary of the gateway: routes, CORS,
// per-client rate limiting, upload handling and error translation. Agent
// handlers and the task registry are injected; the boundary itself only
// validates transport-level input and serializes task records.
package transport

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/hyperitsme/vanta/agents"
	"github.com/hyperitsme/vanta/config"
	"github.com/hyperitsme/vanta/registry"
)

// Transport holds the HTTP boundary's collaborators and policies.
type Transport struct {
	generic *agents.Generic
	sheets  *agents.Sheets
	store   *registry.Store
	logger  *zap.Logger

	serviceName    string
	allowedOrigins map[string]struct{}
	limiters       *ipLimiters
	maxUploadBytes int64

	hub *sentry.Hub
}

// New creates a Transport. Boundary policies (CORS allow-list, rate limit,
// upload cap) are read from cfg once at construction.
func New(generic *agents.Generic, sheets *agents.Sheets, store *registry.Store, cfg config.IConfig, logger *zap.Logger) (*Transport, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if generic == nil || sheets == nil || store == nil {
		return nil, errors.New("agents and store cannot be nil")
	}

	serviceName, err := cfg.ServerName()
	if err != nil {
		return nil, fmt.Errorf("failed to get server name: %w", err)
	}
	origins, err := cfg.AllowedOrigins()
	if err != nil {
		return nil, fmt.Errorf("failed to get allowed origins: %w", err)
	}
	rpm, err := cfg.RateLimitRPM()
	if err != nil {
		return nil, fmt.Errorf("failed to get rate limit: %w", err)
	}
	maxUpload, err := cfg.UploadMaxBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get upload limit: %w", err)
	}

	originSet := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		originSet[o] = struct{}{}
	}

	return &Transport{
		generic:        generic,
		sheets:         sheets,
		store:          store,
		logger:         logger,
		serviceName:    serviceName,
		allowedOrigins: originSet,
		limiters:       newIPLimiters(rpm),
		maxUploadBytes: maxUpload,
	}, nil
}

// SetSentryHub attaches an optional Sentry hub used by the error translator
// and the panic recovery middleware.
func (t *Transport) SetSentryHub(hub *sentry.Hub) {
	t.hub = hub
}

// Handler builds the full request pipeline:
// logging -> recovery -> CORS -> mux, with rate limiting on /api/ routes.
func (t *Transport) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", t.handleHealth)
	mux.Handle("POST /api/upload", t.rateLimit(http.HandlerFunc(t.handleUpload)))
	mux.Handle("POST /api/agent/generic", t.rateLimit(t.agentHandler(t.generic.Run)))
	mux.Handle("POST /api/agent/sheets", t.rateLimit(t.agentHandler(t.sheets.Run)))
	mux.Handle("GET /api/tasks/{id}", t.rateLimit(http.HandlerFunc(t.handleTaskLookup)))

	return t.logRequests(t.recoverPanics(t.cors(mux)))
}

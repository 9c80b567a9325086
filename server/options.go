package server

import (
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/hyperitsme/vanta/config"
	"github.com/hyperitsme/vanta/llm"
)

// Builder accumulates the state assembled by Start before the server runs.
type Builder struct {
	logger     *zap.Logger
	cfg        config.IConfig
	listenAddr string
	completer  llm.Completer
	hub        *sentry.Hub
}

// ServerOption configures the Builder during Start.
type ServerOption func(*Builder) error

// WithListenAddr overrides the listen address from the config.
func WithListenAddr(addr string) ServerOption {
	return func(b *Builder) error {
		if addr != "" {
			b.listenAddr = addr
			b.logger.Info("Overriding listen address", zap.String("newAddress", addr))
		}
		return nil
	}
}

// WithCompleter overrides the model provider client. Used by tests to
// substitute a stub provider.
func WithCompleter(completer llm.Completer) ServerOption {
	return func(b *Builder) error {
		b.completer = completer
		return nil
	}
}

// WithSentryHub attaches a Sentry hub for upstream-failure and panic capture.
func WithSentryHub(hub *sentry.Hub) ServerOption {
	return func(b *Builder) error {
		b.hub = hub
		return nil
	}
}

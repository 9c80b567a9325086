// Package server is the composition root: it wires the task registry, the
// model provider client, the two agents and the HTTP boundary together and
// manages the server lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/hyperitsme/vanta/agents"
	"github.com/hyperitsme/vanta/config"
	"github.com/hyperitsme/vanta/llm"
	"github.com/hyperitsme/vanta/registry"
	"github.com/hyperitsme/vanta/transport"
)

// Start wires all components and starts the HTTP server. It returns the
// listener error channel; the server shuts down gracefully when ctx is
// cancelled.
func Start(ctx context.Context, logger *zap.Logger, cfg config.IConfig, options ...ServerOption) (<-chan error, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	listenAddr, err := cfg.ListenAddr()
	if err != nil {
		return nil, fmt.Errorf("failed to get listen address: %w", err)
	}

	builder := &Builder{
		logger:     logger,
		cfg:        cfg,
		listenAddr: listenAddr,
	}
	for _, option := range options {
		if err := option(builder); err != nil {
			return nil, fmt.Errorf("failed to apply server option: %w", err)
		}
	}

	// The registry is owned here and injected; handlers never reach for
	// shared globals.
	store := registry.NewStore()

	completer := builder.completer
	if completer == nil {
		settings, err := cfg.LLM()
		if err != nil {
			return nil, fmt.Errorf("failed to get model provider settings: %w", err)
		}
		completer = llm.NewClient(llm.ClientConfig{
			BaseURL:     settings.BaseURL,
			Model:       settings.Model,
			APIKey:      settings.APIKey,
			Temperature: settings.Temperature,
		}, logger)
	}

	generic := agents.NewGeneric(completer, store, logger)
	sheets := agents.NewSheets(completer, store, logger)

	boundary, err := transport.New(generic, sheets, store, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}
	if builder.hub != nil {
		boundary.SetSentryHub(builder.hub)
	}

	serverInstance, listenerErrChan, startErr := transport.StartHTTPServer(
		ctx,
		logger,
		cfg,
		boundary.Handler(),
		builder.listenAddr,
	)
	if startErr != nil {
		return nil, fmt.Errorf("failed to start HTTP server: %w", startErr)
	}

	go func() {
		select {
		case err, ok := <-listenerErrChan:
			if ok && err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("Server listener failed", zap.Error(err))
				os.Exit(1)
			}
			logger.Info("Server listener stopped.")
		case <-ctx.Done():
			logger.Info("Shutdown signal received, stopping server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			transport.ShutdownHTTPServer(shutdownCtx, logger, serverInstance)
			logger.Info("Server stopped.")
		}
	}()

	return listenerErrChan, nil
}

// Package agents contains the two prompt-shaping behaviors layered over the
// model provider: free-text generation and structured sheet-schema
// generation. Each agent owns the task lifecycle for its requests: create a
// running record, call the provider, finalize the record.
package agents

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperitsme/vanta/llm"
	"github.com/hyperitsme/vanta/registry"
)

const genericSystemPrompt = "You are a helpful assistant. Be concise and actionable."

// Generic answers a prompt with plain trimmed text.
type Generic struct {
	completer llm.Completer
	store     *registry.Store
	logger    *zap.Logger
}

// NewGeneric creates the free-text agent.
func NewGeneric(completer llm.Completer, store *registry.Store, logger *zap.Logger) *Generic {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generic{
		completer: completer,
		store:     store,
		logger:    logger.With(zap.String("agent", "generic")),
	}
}

// Run executes one free-text request. The prompt is assumed validated by the
// boundary. On provider failure the task is finalized as error and the error
// is returned for the boundary to translate.
func (a *Generic) Run(ctx context.Context, prompt string) (registry.Task, error) {
	task := a.store.Create(registry.KindGeneric)

	text, err := a.completer.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "system", Content: genericSystemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		a.logger.Error("Model call failed", zap.String("taskId", task.ID), zap.Error(err))
		failed, _ := a.store.Update(task.ID, registry.StatusError, nil, err.Error())
		return failed, fmt.Errorf("generic agent: %w", err)
	}

	result := registry.GenericResult{Answer: strings.TrimSpace(text)}
	done, err := a.store.Update(task.ID, registry.StatusDone, result, "")
	if err != nil {
		return registry.Task{}, fmt.Errorf("generic agent: %w", err)
	}
	a.logger.Debug("Task completed", zap.String("taskId", task.ID))
	return done, nil
}

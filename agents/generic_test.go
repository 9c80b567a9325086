package agents_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hyperitsme/vanta/agents"
	"github.com/hyperitsme/vanta/llm"
	"github.com/hyperitsme/vanta/registry"
)

// completerFunc adapts a function to llm.Completer for stubbing providers.
type completerFunc func(ctx context.Context, req llm.CompletionRequest) (string, error)

func (f completerFunc) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	return f(ctx, req)
}

func staticCompleter(text string) completerFunc {
	return func(context.Context, llm.CompletionRequest) (string, error) { return text, nil }
}

func failingCompleter(err error) completerFunc {
	return func(context.Context, llm.CompletionRequest) (string, error) { return "", err }
}

func TestGeneric_Run(t *testing.T) {
	store := registry.NewStore()
	var seen llm.CompletionRequest
	agent := agents.NewGeneric(completerFunc(func(_ context.Context, req llm.CompletionRequest) (string, error) {
		seen = req
		return "  an answer\n", nil
	}), store, zap.NewNop())

	task, err := agent.Run(context.Background(), "help me plan")
	require.NoError(t, err)

	assert.Equal(t, registry.KindGeneric, task.Kind)
	assert.Equal(t, registry.StatusDone, task.Status)
	assert.Equal(t, registry.GenericResult{Answer: "an answer"}, task.Result)
	assert.Empty(t, task.Error)

	// Stored record matches the returned one
	stored, ok := store.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, task, stored)

	// Request shaping: fixed system instruction + the prompt, plain text mode
	require.Len(t, seen.Messages, 2)
	assert.Equal(t, "system", seen.Messages[0].Role)
	assert.Contains(t, seen.Messages[0].Content, "concise and actionable")
	assert.Equal(t, llm.Message{Role: "user", Content: "help me plan"}, seen.Messages[1])
	assert.False(t, seen.JSONMode)
}

func TestGeneric_Run_EmptyCompletion(t *testing.T) {
	store := registry.NewStore()
	agent := agents.NewGeneric(staticCompleter(""), store, zap.NewNop())

	task, err := agent.Run(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, registry.StatusDone, task.Status)
	assert.Equal(t, registry.GenericResult{Answer: ""}, task.Result)
}

func TestGeneric_Run_ProviderFailure(t *testing.T) {
	store := registry.NewStore()
	upstream := errors.New("connection refused")
	agent := agents.NewGeneric(failingCompleter(upstream), store, zap.NewNop())

	task, err := agent.Run(context.Background(), "anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, upstream)

	// The task is finalized as error rather than left running
	stored, ok := store.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, registry.StatusError, stored.Status)
	assert.Equal(t, "connection refused", stored.Error)
	assert.Nil(t, stored.Result)
}

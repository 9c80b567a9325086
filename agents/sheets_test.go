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

func runSheets(t *testing.T, modelOutput string) (registry.Task, *registry.Store) {
	t.Helper()
	store := registry.NewStore()
	agent := agents.NewSheets(staticCompleter(modelOutput), store, zap.NewNop())
	task, err := agent.Run(context.Background(), "inventory tracker")
	require.NoError(t, err)
	return task, store
}

func sheetResult(t *testing.T, task registry.Task) registry.SheetResult {
	t.Helper()
	result, ok := task.Result.(registry.SheetResult)
	require.True(t, ok, "result should be a SheetResult, got %T", task.Result)
	return result
}

func TestSheets_Run_ValidJSON(t *testing.T) {
	task, store := runSheets(t, `{
		"title": "Inventory",
		"columns": [
			{"name": "item", "type": "string", "description": "Item name"},
			{"name": "qty", "type": "number", "description": "Quantity"}
		],
		"sample_csv": "item,qty\nwidget,3\nbolt,10\nnut,25\nscrew,8\nnail,100"
	}`)

	assert.Equal(t, registry.KindSheets, task.Kind)
	assert.Equal(t, registry.StatusDone, task.Status)

	result := sheetResult(t, task)
	assert.Equal(t, "Inventory", result.Title)
	require.Len(t, result.Columns, 2)
	first, ok := result.Columns[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "item", first["name"])
	assert.Contains(t, result.SampleCSV, "item,qty")

	stored, ok := store.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, task, stored)
}

func TestSheets_Run_InvalidJSON(t *testing.T) {
	task, _ := runSheets(t, "Sure! Here is your sheet:\n```json\n{}\n```")

	// Malformed output never fails the request
	assert.Equal(t, registry.StatusDone, task.Status)
	result := sheetResult(t, task)
	assert.Equal(t, "Sheet", result.Title)
	assert.Empty(t, result.Columns)
	assert.Equal(t, "", result.SampleCSV)
}

func TestSheets_Run_MissingFields(t *testing.T) {
	task, _ := runSheets(t, `{}`)

	result := sheetResult(t, task)
	assert.Equal(t, "Generated Sheet", result.Title)
	assert.Empty(t, result.Columns)
	assert.Equal(t, "", result.SampleCSV)
}

func TestSheets_Run_WrongShapedFields(t *testing.T) {
	task, _ := runSheets(t, `{"title": 42, "columns": {"not": "an array"}, "sample_csv": ["x"]}`)

	result := sheetResult(t, task)
	assert.Equal(t, "Generated Sheet", result.Title)
	assert.Empty(t, result.Columns)
	assert.Equal(t, "", result.SampleCSV)
}

func TestSheets_Run_EmptyTitle(t *testing.T) {
	task, _ := runSheets(t, `{"title": "", "columns": [], "sample_csv": "a,b"}`)

	result := sheetResult(t, task)
	assert.Equal(t, "Generated Sheet", result.Title)
	assert.Equal(t, "a,b", result.SampleCSV)
}

func TestSheets_Run_NonObjectJSON(t *testing.T) {
	// Valid JSON that is not an object: parse succeeds, fields default
	task, _ := runSheets(t, `[1, 2, 3]`)

	result := sheetResult(t, task)
	assert.Equal(t, "Generated Sheet", result.Title)
	assert.Empty(t, result.Columns)
}

func TestSheets_Run_RequestsJSONMode(t *testing.T) {
	store := registry.NewStore()
	var seen llm.CompletionRequest
	agent := agents.NewSheets(completerFunc(func(_ context.Context, req llm.CompletionRequest) (string, error) {
		seen = req
		return `{}`, nil
	}), store, zap.NewNop())

	_, err := agent.Run(context.Background(), "expense report")
	require.NoError(t, err)

	assert.True(t, seen.JSONMode)
	require.Len(t, seen.Messages, 2)
	assert.Contains(t, seen.Messages[0].Content, "strict JSON")
	assert.Contains(t, seen.Messages[1].Content, "sample_csv")
	assert.Contains(t, seen.Messages[1].Content, "expense report")
}

func TestSheets_Run_ProviderFailure(t *testing.T) {
	store := registry.NewStore()
	upstream := errors.New("bad gateway")
	agent := agents.NewSheets(failingCompleter(upstream), store, zap.NewNop())

	task, err := agent.Run(context.Background(), "anything")
	require.Error(t, err)

	stored, ok := store.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, registry.StatusError, stored.Status)
	assert.Equal(t, "bad gateway", stored.Error)
	_ = task
}

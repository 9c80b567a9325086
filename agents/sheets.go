package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/hyperitsme/vanta/llm"
	"github.com/hyperitsme/vanta/registry"
)

const sheetsSystemPrompt = "You design spreadsheet schemas. Respond with strict JSON only. " +
	"No markdown formatting, no code fences, no commentary."

const sheetsInstruction = `Return a JSON object with exactly three keys:
"title": a short string naming the sheet.
"columns": an array of objects, each {"name": string, "type": string, "description": string} where type is one of "string", "number", "date", "boolean".
"sample_csv": a string containing a CSV header row matching the columns followed by exactly 5 sample data rows.`

// Defaults applied when the model response cannot be used as-is. A malformed
// model response is never surfaced as an error to the caller.
const (
	fallbackTitle = "Sheet"
	defaultTitle  = "Generated Sheet"
)

// Sheets generates a spreadsheet schema plus sample CSV from a prompt.
type Sheets struct {
	completer llm.Completer
	store     *registry.Store
	logger    *zap.Logger
}

// NewSheets creates the sheet-schema agent.
func NewSheets(completer llm.Completer, store *registry.Store, logger *zap.Logger) *Sheets {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sheets{
		completer: completer,
		store:     store,
		logger:    logger.With(zap.String("agent", "sheets")),
	}
}

// Run executes one sheet-schema request. Provider failures finalize the task
// as error; malformed model output is absorbed by normalizeSheet instead.
func (a *Sheets) Run(ctx context.Context, prompt string) (registry.Task, error) {
	task := a.store.Create(registry.KindSheets)

	raw, err := a.completer.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "system", Content: sheetsSystemPrompt},
			{Role: "user", Content: sheetsInstruction + "\n\nRequest: " + prompt},
		},
		JSONMode: true,
	})
	if err != nil {
		a.logger.Error("Model call failed", zap.String("taskId", task.ID), zap.Error(err))
		failed, _ := a.store.Update(task.ID, registry.StatusError, nil, err.Error())
		return failed, fmt.Errorf("sheets agent: %w", err)
	}

	result := a.normalizeSheet(task.ID, raw)
	done, err := a.store.Update(task.ID, registry.StatusDone, result, "")
	if err != nil {
		return registry.Task{}, fmt.Errorf("sheets agent: %w", err)
	}
	a.logger.Debug("Task completed",
		zap.String("taskId", task.ID),
		zap.Int("columns", len(result.Columns)))
	return done, nil
}

// normalizeSheet parses the raw model text and defaults each field
// independently. Parse failure substitutes the fallback sheet wholesale;
// after that, title must be a non-empty string, columns must actually be an
// array, sample_csv must be a string. Column entries are never validated
// beyond that; their shape is the model's responsibility.
func (a *Sheets) normalizeSheet(taskID string, raw string) registry.SheetResult {
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		a.logger.Warn("Model returned non-JSON output, using fallback sheet",
			zap.String("taskId", taskID))
		return registry.SheetResult{Title: fallbackTitle, Columns: []any{}, SampleCSV: ""}
	}

	obj, _ := parsed.(map[string]any)

	result := registry.SheetResult{Title: defaultTitle, Columns: []any{}}
	if title, ok := obj["title"].(string); ok && title != "" {
		result.Title = title
	}
	if columns, ok := obj["columns"].([]any); ok {
		result.Columns = columns
	}
	if csv, ok := obj["sample_csv"].(string); ok {
		result.SampleCSV = csv
	}
	return result
}

package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hyperitsme/vanta/registry"
)

// agentRequest decodes the prompt loosely so that a non-string prompt (number,
// array, ...) is distinguishable from a valid one and rejected.
type agentRequest struct {
	Prompt any `json:"prompt"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// agentHandler adapts an agent's Run function to HTTP: validate the prompt
// before any task exists, then run synchronously and return the full task
// record. Upstream failures reach the generic 500 path.
func (t *Transport) agentHandler(run func(context.Context, string) (registry.Task, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req agentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Missing prompt")
			return
		}
		prompt, ok := req.Prompt.(string)
		if !ok || prompt == "" {
			writeError(w, http.StatusBadRequest, "Missing prompt")
			return
		}

		task, err := run(r.Context(), prompt)
		if err != nil {
			t.logger.Error("Agent request failed",
				zap.String("path", r.URL.Path),
				zap.String("taskId", task.ID),
				zap.Error(err))
			t.captureError(err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, task)
	}
}

// handleTaskLookup returns the stored record verbatim. No side effects.
func (t *Transport) handleTaskLookup(w http.ResponseWriter, r *http.Request) {
	task, ok := t.store.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (t *Transport) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"service": t.serviceName,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

package registry

import "time"

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Kind identifies which agent created the task.
type Kind string

const (
	KindGeneric Kind = "generic"
	KindSheets  Kind = "sheets"
)

// Task is one unit of submitted work. Created when an agent accepts a
// prompt, finalized when the model call resolves, never deleted.
type Task struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	Result    any       `json:"result,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// GenericResult is the free-text agent's result payload.
type GenericResult struct {
	Answer string `json:"answer"`
}

// SheetResult is the sheets agent's result payload. Columns entries are
// carried exactly as the model produced them; no sub-field validation is
// performed, and sample_csv is not checked against the columns.
type SheetResult struct {
	Title     string `json:"title"`
	Columns   []any  `json:"columns"`
	SampleCSV string `json:"sample_csv"`
}

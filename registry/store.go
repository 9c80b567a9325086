package registry

import (
	"fmt"
	"sync"
	"time"
)

// Store keeps task records in memory. Tasks are never evicted; unbounded
// growth is an accepted limitation of the ephemeral registry.
type Store struct {
	mu    sync.RWMutex
	tasks map[string]Task
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{tasks: map[string]Task{}}
}

// Create adds a new running task for the given kind and returns it.
func (s *Store) Create(kind Kind) Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := Task{
		ID:        NewID(),
		Kind:      kind,
		Status:    StatusRunning,
		CreatedAt: time.Now().UTC(),
	}
	s.tasks[task.ID] = task
	return task
}

// Put inserts or replaces the record for task.ID.
func (s *Store) Put(task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = task
}

// Update finalizes a task. Result is only attached together with StatusDone,
// errMsg only together with StatusError.
func (s *Store) Update(id string, status Status, result any, errMsg string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return Task{}, fmt.Errorf("task not found: %s", id)
	}
	task.Status = status
	if status == StatusDone {
		task.Result = result
		task.Error = ""
	}
	if status == StatusError {
		task.Result = nil
		task.Error = errMsg
	}
	s.tasks[id] = task
	return task, nil
}

// Get retrieves a task by ID.
func (s *Store) Get(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	return task, ok
}

// Len reports how many tasks are currently tracked.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

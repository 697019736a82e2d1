package domain

import (
	"strings"
	"time"
)

// TaskState is the workflow position of a task.
type TaskState string

// The three task states. Their string values are also the persisted
// representation and the wire representation.
const (
	TaskStateToDo       TaskState = "TO_DO"
	TaskStateInProgress TaskState = "IN_PROGRESS"
	TaskStateDone       TaskState = "DONE"
)

// TaskStates returns all states in workflow order.
func TaskStates() []TaskState {
	return []TaskState{TaskStateToDo, TaskStateInProgress, TaskStateDone}
}

// Valid reports whether s is a known task state.
func (s TaskState) Valid() bool {
	switch s {
	case TaskStateToDo, TaskStateInProgress, TaskStateDone:
		return true
	}
	return false
}

// Task represents a single task owned by exactly one user. The integer ID is
// persistence-assigned and never leaves the service raw; outward-facing
// representations carry the encoded form instead.
type Task struct {
	ID        int64
	Title     string
	Content   string
	State     TaskState
	AuthorID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTask creates a Task with the given attributes and sets the
// creation/update timestamps. Returns an error if validation fails.
func NewTask(title, content string, state TaskState, authorID int64) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		Title:     title,
		Content:   content,
		State:     state,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(t.Content) == "" {
		return ErrEmptyContent
	}
	if !t.State.Valid() {
		return ErrInvalidState
	}
	if t.AuthorID <= 0 {
		return ErrInvalidAuthor
	}
	return nil
}

package store

import (
	"context"

	"github.com/taskin/taskin-api/internal/domain"
)

// TaskUpdate carries the fields of a task update. Nil fields are left
// unchanged by the store.
type TaskUpdate struct {
	Title   *string
	Content *string
	State   *domain.TaskState
}

// TaskStore defines the interface for task data persistence. Every operation
// is scoped by the owning user's ID; there is no way to reach another user's
// tasks through this interface.
type TaskStore interface {
	// List retrieves the tasks owned by authorID, filtered and ordered per
	// opts. A zero-value opts returns all of the user's tasks in storage
	// order.
	List(ctx context.Context, authorID int64, opts QueryOptions) ([]*domain.Task, error)

	// Count reports how many tasks authorID owns.
	Count(ctx context.Context, authorID int64) (int64, error)

	// ListByState retrieves the tasks owned by authorID in the given state,
	// ordered by creation time ascending.
	ListByState(ctx context.Context, authorID int64, state domain.TaskState) ([]*domain.Task, error)

	// GetByID retrieves a single task matching both id and authorID.
	// Returns ErrTaskNotFound if no task matches the scoped predicate.
	GetByID(ctx context.Context, id, authorID int64) (*domain.Task, error)

	// Create saves a new task and fills in its persistence-assigned ID.
	Create(ctx context.Context, task *domain.Task) error

	// Update applies upd to the task matching both id and authorID and
	// returns the updated record. A zero-row match is detected explicitly
	// and reported as ErrTaskNotFound.
	Update(ctx context.Context, id, authorID int64, upd TaskUpdate) (*domain.Task, error)

	// Delete removes the task matching both id and authorID.
	// Returns ErrTaskNotFound if no task matched the scoped predicate.
	Delete(ctx context.Context, id, authorID int64) error
}

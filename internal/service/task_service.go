package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taskin/taskin-api/internal/domain"
	"github.com/taskin/taskin-api/internal/idcodec"
	"github.com/taskin/taskin-api/internal/query"
	"github.com/taskin/taskin-api/internal/store"
)

// EncodedTask is a task whose identifier has been passed through the codec
// and is safe to serialize. The raw author ID is deliberately absent: every
// listing is already scoped to its owner.
type EncodedTask struct {
	ID        string
	Title     string
	Content   string
	State     domain.TaskState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListResult is the outcome of a List call: either a record listing or, when
// the request carried the count-only signal, a scalar count.
type ListResult struct {
	CountOnly bool
	Count     int64
	Tasks     []EncodedTask
}

// GroupedTasks is the grouped-by-state view of a user's tasks. Each group is
// independently ordered by creation time ascending; there is no cross-group
// ordering guarantee.
type GroupedTasks struct {
	ToDo       []EncodedTask
	InProgress []EncodedTask
	Done       []EncodedTask
}

// UpdateTaskInput carries a partial task update. Nil fields are left
// unchanged.
type UpdateTaskInput struct {
	Title   *string
	Content *string
	State   *domain.TaskState
}

// TaskService orchestrates task persistence around the identifier codec: it
// is the only component that calls the task store, every outward identifier
// is encoded, and every inward identifier is decoded. All operations are
// scoped by the requesting user's ID.
type TaskService struct {
	tasks  store.TaskStore
	codec  *idcodec.Codec
	logger *slog.Logger
}

// NewTaskService creates a TaskService with the given dependencies.
func NewTaskService(tasks store.TaskStore, codec *idcodec.Codec, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{
		tasks:  tasks,
		codec:  codec,
		logger: logger.With(slog.String("component", "task_service")),
	}
}

// List returns the user's tasks filtered and sorted per params. When params
// carries the count-only signal the listing is short-circuited into a count
// query and only the scalar is returned.
func (s *TaskService) List(
	ctx context.Context,
	userID int64,
	params map[string]string,
) (*ListResult, error) {
	if query.IsCountRequest(params) {
		count, err := s.tasks.Count(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &ListResult{CountOnly: true, Count: count}, nil
	}

	opts, err := query.Build(params)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.List(ctx, userID, opts)
	if err != nil {
		return nil, err
	}

	encoded, err := s.encodeAll(tasks)
	if err != nil {
		return nil, err
	}
	return &ListResult{Tasks: encoded}, nil
}

// ListGroupedByState returns the user's tasks grouped by the three states.
// The three scoped queries have no ordering dependency on one another, so
// they are issued concurrently and joined before composing the result; a
// failure in any one fails the whole aggregate.
func (s *TaskService) ListGroupedByState(ctx context.Context, userID int64) (*GroupedTasks, error) {
	grouped := &GroupedTasks{}

	targets := []struct {
		state domain.TaskState
		dst   *[]EncodedTask
	}{
		{domain.TaskStateToDo, &grouped.ToDo},
		{domain.TaskStateInProgress, &grouped.InProgress},
		{domain.TaskStateDone, &grouped.Done},
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, t := range targets {
		t := t
		g.Go(func() error {
			tasks, err := s.tasks.ListByState(ctx, userID, t.state)
			if err != nil {
				return err
			}
			encoded, err := s.encodeAll(tasks)
			if err != nil {
				return err
			}
			*t.dst = encoded
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return grouped, nil
}

// Create persists a new task. The task is expected to be validated upstream
// (the domain constructor applies defaults and validation); this service only
// persists and encodes.
func (s *TaskService) Create(ctx context.Context, task *domain.Task) (*EncodedTask, error) {
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return s.encode(task)
}

// Get decodes token and retrieves the matching task scoped to userID.
// A token that decodes to an identifier the user does not own surfaces as
// store.ErrTaskNotFound.
func (s *TaskService) Get(ctx context.Context, userID int64, token string) (*EncodedTask, error) {
	id, err := s.codec.Decode(token)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return s.encode(task)
}

// Update decodes token and applies a scoped partial update. A zero-row match
// is reported as store.ErrTaskNotFound by the store.
func (s *TaskService) Update(
	ctx context.Context,
	userID int64,
	token string,
	input UpdateTaskInput,
) (*EncodedTask, error) {
	id, err := s.codec.Decode(token)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.Update(ctx, id, userID, store.TaskUpdate{
		Title:   input.Title,
		Content: input.Content,
		State:   input.State,
	})
	if err != nil {
		return nil, err
	}
	return s.encode(task)
}

// Delete decodes token and issues a scoped delete.
func (s *TaskService) Delete(ctx context.Context, userID int64, token string) error {
	id, err := s.codec.Decode(token)
	if err != nil {
		return err
	}
	return s.tasks.Delete(ctx, id, userID)
}

func (s *TaskService) encode(task *domain.Task) (*EncodedTask, error) {
	token, err := s.codec.Encode(task.ID)
	if err != nil {
		return nil, err
	}
	return &EncodedTask{
		ID:        token,
		Title:     task.Title,
		Content:   task.Content,
		State:     task.State,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}, nil
}

func (s *TaskService) encodeAll(tasks []*domain.Task) ([]EncodedTask, error) {
	encoded := make([]EncodedTask, 0, len(tasks))
	for _, task := range tasks {
		e, err := s.encode(task)
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, *e)
	}
	return encoded, nil
}

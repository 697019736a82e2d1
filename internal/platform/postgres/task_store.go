package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taskin/taskin-api/internal/domain"
	"github.com/taskin/taskin-api/internal/store"
)

// taskColumns maps the query-facing field names to their table columns.
// Only fields present here can ever appear in a generated clause; the query
// builder allow-lists request input before it reaches this map.
var taskColumns = map[string]string{
	"title":     "title",
	"content":   "content",
	"state":     "state",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

const taskSelectColumns = "id, title, content, state, author_id, created_at, updated_at"

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection that should be
// initialized and managed by the caller. If logger is nil, a default logger
// will be used.
func NewPostgresTaskStore(db *sql.DB, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// List implements store.TaskStore.List. The WHERE and ORDER BY clauses are
// assembled only from taskColumns; filter and sort values are always bound as
// parameters, never interpolated.
func (s *PostgresTaskStore) List(
	ctx context.Context,
	authorID int64,
	opts store.QueryOptions,
) ([]*domain.Task, error) {
	var sb strings.Builder
	sb.WriteString("SELECT " + taskSelectColumns + " FROM tasks WHERE author_id = $1")
	args := []interface{}{authorID}

	for _, f := range opts.Where {
		column, ok := taskColumns[f.Field]
		if !ok {
			return nil, fmt.Errorf("%w: unknown filter field %q", store.ErrInvalidEntity, f.Field)
		}
		args = append(args, f.Value)
		switch f.Op {
		case store.FilterContains:
			fmt.Fprintf(&sb, " AND %s ILIKE '%%' || $%d || '%%'", column, len(args))
		case store.FilterEquals:
			fmt.Fprintf(&sb, " AND %s = $%d", column, len(args))
		default:
			return nil, fmt.Errorf("%w: unknown filter operator %q", store.ErrInvalidEntity, f.Op)
		}
	}

	if len(opts.OrderBy) > 0 {
		clauses := make([]string, 0, len(opts.OrderBy))
		for _, c := range opts.OrderBy {
			column, ok := taskColumns[c.Field]
			if !ok {
				return nil, fmt.Errorf("%w: unknown sort field %q", store.ErrInvalidEntity, c.Field)
			}
			direction := "ASC"
			if c.Direction == store.SortDesc {
				direction = "DESC"
			}
			clauses = append(clauses, column+" "+direction)
		}
		sb.WriteString(" ORDER BY " + strings.Join(clauses, ", "))
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Error("failed to close rows", "error", err)
		}
	}()

	return scanTasks(rows)
}

// Count implements store.TaskStore.Count.
func (s *PostgresTaskStore) Count(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tasks WHERE author_id = $1", authorID,
	).Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// ListByState implements store.TaskStore.ListByState. Results are ordered by
// creation time ascending, which is the fixed ordering of the grouped view.
func (s *PostgresTaskStore) ListByState(
	ctx context.Context,
	authorID int64,
	state domain.TaskState,
) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+taskSelectColumns+" FROM tasks WHERE author_id = $1 AND state = $2 ORDER BY created_at ASC",
		authorID, string(state),
	)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Error("failed to close rows", "error", err)
		}
	}()

	return scanTasks(rows)
}

// GetByID implements store.TaskStore.GetByID. The predicate matches both the
// task ID and the author ID, so a user can never fetch another user's task by
// guessing or decoding an identifier.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id, authorID int64) (*domain.Task, error) {
	task := &domain.Task{}
	var state string
	err := s.db.QueryRowContext(ctx,
		"SELECT "+taskSelectColumns+" FROM tasks WHERE id = $1 AND author_id = $2",
		id, authorID,
	).Scan(&task.ID, &task.Title, &task.Content, &state, &task.AuthorID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, MapError(err)
	}
	task.State = domain.TaskState(state)
	return task, nil
}

// Create implements store.TaskStore.Create.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO tasks (title, content, state, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		task.Title, task.Content, string(task.State), task.AuthorID, task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// Update implements store.TaskStore.Update. Unset fields keep their current
// value via COALESCE. The scoped predicate plus RETURNING makes a zero-row
// match indistinguishable from a missing task, which is exactly the contract:
// both surface as ErrTaskNotFound.
func (s *PostgresTaskStore) Update(
	ctx context.Context,
	id, authorID int64,
	upd store.TaskUpdate,
) (*domain.Task, error) {
	var stateArg interface{}
	if upd.State != nil {
		stateArg = string(*upd.State)
	}

	task := &domain.Task{}
	var state string
	err := s.db.QueryRowContext(ctx,
		`UPDATE tasks
		 SET title = COALESCE($1, title),
		     content = COALESCE($2, content),
		     state = COALESCE($3, state),
		     updated_at = $4
		 WHERE id = $5 AND author_id = $6
		 RETURNING `+taskSelectColumns,
		upd.Title, upd.Content, stateArg, time.Now().UTC(), id, authorID,
	).Scan(&task.ID, &task.Title, &task.Content, &state, &task.AuthorID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, MapError(err)
	}
	task.State = domain.TaskState(state)
	return task, nil
}

// Delete implements store.TaskStore.Delete.
func (s *PostgresTaskStore) Delete(ctx context.Context, id, authorID int64) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = $1 AND author_id = $2", id, authorID)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// scanTasks drains rows into domain tasks.
func scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	tasks := []*domain.Task{}
	for rows.Next() {
		task := &domain.Task{}
		var state string
		if err := rows.Scan(
			&task.ID, &task.Title, &task.Content, &state,
			&task.AuthorID, &task.CreatedAt, &task.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		task.State = domain.TaskState(state)
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return tasks, nil
}

package api

import (
	"time"

	"github.com/taskin/taskin-api/internal/service"
)

// LoginRequest is the payload for POST /api/users.
type LoginRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// LoginResponse carries the opaque user identifier the client presents on
// every subsequent request.
type LoginResponse struct {
	ID string `json:"id"`
}

// CreateTaskRequest is the payload for POST /api/tasks. State is optional and
// defaults to TO_DO.
type CreateTaskRequest struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
	State   string `json:"state"   validate:"omitempty,oneof=TO_DO IN_PROGRESS DONE"`
}

// UpdateTaskRequest is the payload for PUT /api/tasks/{id}. Absent fields are
// left unchanged.
type UpdateTaskRequest struct {
	Title   *string `json:"title"   validate:"omitempty,min=1"`
	Content *string `json:"content" validate:"omitempty,min=1"`
	State   *string `json:"state"   validate:"omitempty,oneof=TO_DO IN_PROGRESS DONE"`
}

// TaskResponse is the outward representation of a task. The ID is the encoded
// identifier; the raw integer never appears on the wire.
type TaskResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TaskListResponse is the response for GET /api/tasks without the count
// signal.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// TaskCountResponse is the response for GET /api/tasks with the count signal.
type TaskCountResponse struct {
	Count int64 `json:"count"`
}

// GroupedTasksResponse is the response for GET /api/tasks/grouped.
type GroupedTasksResponse struct {
	ToDo       []TaskResponse `json:"toDo"`
	InProgress []TaskResponse `json:"inProgress"`
	Done       []TaskResponse `json:"done"`
}

func newTaskResponse(task *service.EncodedTask) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Content:   task.Content,
		State:     string(task.State),
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

func newTaskResponses(tasks []service.EncodedTask) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, newTaskResponse(&tasks[i]))
	}
	return out
}

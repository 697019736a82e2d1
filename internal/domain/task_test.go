package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	task, err := NewTask("write minutes", "notes from standup", TaskStateToDo, 1)
	require.NoError(t, err)

	assert.Equal(t, "write minutes", task.Title)
	assert.Equal(t, "notes from standup", task.Content)
	assert.Equal(t, TaskStateToDo, task.State)
	assert.Equal(t, int64(1), task.AuthorID)
	assert.False(t, task.CreatedAt.IsZero())
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	assert.Zero(t, task.ID, "ID is assigned by the store, not the constructor")
}

func TestNewTaskValidation(t *testing.T) {
	testCases := []struct {
		name     string
		title    string
		content  string
		state    TaskState
		authorID int64
		wantErr  error
	}{
		{"empty title", "", "content", TaskStateToDo, 1, ErrEmptyTitle},
		{"blank title", "   ", "content", TaskStateToDo, 1, ErrEmptyTitle},
		{"empty content", "title", "", TaskStateToDo, 1, ErrEmptyContent},
		{"blank content", "title", "\t\n", TaskStateToDo, 1, ErrEmptyContent},
		{"unknown state", "title", "content", TaskState("PENDING"), 1, ErrInvalidState},
		{"empty state", "title", "content", TaskState(""), 1, ErrInvalidState},
		{"zero author", "title", "content", TaskStateToDo, 0, ErrInvalidAuthor},
		{"negative author", "title", "content", TaskStateToDo, -4, ErrInvalidAuthor},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTask(tc.title, tc.content, tc.state, tc.authorID)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestTaskStateValid(t *testing.T) {
	for _, state := range TaskStates() {
		assert.True(t, state.Valid(), "state %q", state)
	}

	assert.False(t, TaskState("").Valid())
	assert.False(t, TaskState("to_do").Valid(), "state comparison is case sensitive")
	assert.False(t, TaskState("ARCHIVED").Valid())
}

func TestTaskStatesOrder(t *testing.T) {
	assert.Equal(t, []TaskState{TaskStateToDo, TaskStateInProgress, TaskStateDone}, TaskStates())
}

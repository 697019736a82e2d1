package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskin/taskin-api/internal/domain"
	"github.com/taskin/taskin-api/internal/idcodec"
	"github.com/taskin/taskin-api/internal/service"
)

type taskFixture struct {
	handler *TaskHandler
	tasks   *fakeTaskStore
	codec   *idcodec.Codec
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()
	tasks := newFakeTaskStore()
	codec := newTestCodec(t)
	return &taskFixture{
		handler: NewTaskHandler(service.NewTaskService(tasks, codec, nil)),
		tasks:   tasks,
		codec:   codec,
	}
}

func (f *taskFixture) seed(t *testing.T, userID int64, title string, state domain.TaskState) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(title, "content of "+title, state, userID)
	require.NoError(t, err)
	require.NoError(t, f.tasks.Create(context.Background(), task))
	return task
}

func TestTaskListReturnsEncodedTasks(t *testing.T) {
	f := newTaskFixture(t)
	created := f.seed(t, 1, "buy milk", domain.TaskStateToDo)

	req := authedRequest(http.MethodGet, "/api/tasks", nil, 1)
	rec := httptest.NewRecorder()
	f.handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp TaskListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Tasks, 1)
	assert.Equal(t, "buy milk", resp.Tasks[0].Title)

	decoded, err := f.codec.Decode(resp.Tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, decoded)
}

func TestTaskListCountSignal(t *testing.T) {
	f := newTaskFixture(t)
	f.seed(t, 1, "one", domain.TaskStateToDo)
	f.seed(t, 1, "two", domain.TaskStateDone)
	f.seed(t, 2, "not mine", domain.TaskStateToDo)

	req := authedRequest(http.MethodGet, "/api/tasks?isCount=true", nil, 1)
	rec := httptest.NewRecorder()
	f.handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp TaskCountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Count)
	assert.NotContains(t, rec.Body.String(), `"tasks"`)
}

func TestTaskListRejectsUnknownFilterField(t *testing.T) {
	f := newTaskFixture(t)

	req := authedRequest(http.MethodGet, "/api/tasks?filter-category=work", nil, 1)
	rec := httptest.NewRecorder()
	f.handler.List(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskListGrouped(t *testing.T) {
	f := newTaskFixture(t)
	f.seed(t, 1, "pending", domain.TaskStateToDo)
	f.seed(t, 1, "shipped", domain.TaskStateDone)

	req := authedRequest(http.MethodGet, "/api/tasks/grouped", nil, 1)
	rec := httptest.NewRecorder()
	f.handler.ListGrouped(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp GroupedTasksResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.ToDo, 1)
	assert.Equal(t, "pending", resp.ToDo[0].Title)
	assert.Empty(t, resp.InProgress)
	require.Len(t, resp.Done, 1)
	assert.Equal(t, "shipped", resp.Done[0].Title)
}

func TestTaskCreate(t *testing.T) {
	f := newTaskFixture(t)

	body := strings.NewReader(`{"title":"write report","content":"quarterly numbers","state":"IN_PROGRESS"}`)
	req := authedRequest(http.MethodPost, "/api/tasks", body, 1)
	rec := httptest.NewRecorder()
	f.handler.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "write report", resp.Title)
	assert.Equal(t, "IN_PROGRESS", resp.State)

	id, err := f.codec.Decode(resp.ID)
	require.NoError(t, err)
	stored, err := f.tasks.GetByID(context.Background(), id, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.AuthorID)
}

func TestTaskCreateDefaultsState(t *testing.T) {
	f := newTaskFixture(t)

	body := strings.NewReader(`{"title":"no state given","content":"something"}`)
	req := authedRequest(http.MethodPost, "/api/tasks", body, 1)
	rec := httptest.NewRecorder()
	f.handler.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(domain.TaskStateToDo), resp.State)
}

func TestTaskCreateRejectsBadPayloads(t *testing.T) {
	f := newTaskFixture(t)

	testCases := []struct {
		name string
		body string
	}{
		{"not json", "not json at all"},
		{"unknown field", `{"title":"x","content":"y","owner":"z"}`},
		{"missing title", `{"content":"y"}`},
		{"missing content", `{"title":"x"}`},
		{"bad state", `{"title":"x","content":"y","state":"SHIPPED"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := authedRequest(http.MethodPost, "/api/tasks", strings.NewReader(tc.body), 1)
			rec := httptest.NewRecorder()
			f.handler.Create(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestTaskGet(t *testing.T) {
	f := newTaskFixture(t)
	created := f.seed(t, 1, "mine", domain.TaskStateToDo)
	token, err := f.codec.Encode(created.ID)
	require.NoError(t, err)

	req := withURLParam(authedRequest(http.MethodGet, "/api/tasks/"+token, nil, 1), "id", token)
	rec := httptest.NewRecorder()
	f.handler.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "mine", resp.Title)
	assert.Equal(t, token, resp.ID)
}

func TestTaskGetOtherUsersTask(t *testing.T) {
	f := newTaskFixture(t)
	created := f.seed(t, 1, "not yours", domain.TaskStateToDo)
	token, err := f.codec.Encode(created.ID)
	require.NoError(t, err)

	// Requesting as user 2 with user 1's valid token yields 404, not 403;
	// existence is not revealed across users.
	req := withURLParam(authedRequest(http.MethodGet, "/api/tasks/"+token, nil, 2), "id", token)
	rec := httptest.NewRecorder()
	f.handler.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskGetMalformedToken(t *testing.T) {
	f := newTaskFixture(t)

	req := withURLParam(authedRequest(http.MethodGet, "/api/tasks/garbage", nil, 1), "id", "garbage")
	rec := httptest.NewRecorder()
	f.handler.Get(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskUpdate(t *testing.T) {
	f := newTaskFixture(t)
	created := f.seed(t, 1, "draft", domain.TaskStateToDo)
	token, err := f.codec.Encode(created.ID)
	require.NoError(t, err)

	body := strings.NewReader(`{"state":"DONE"}`)
	req := withURLParam(authedRequest(http.MethodPut, "/api/tasks/"+token, body, 1), "id", token)
	rec := httptest.NewRecorder()
	f.handler.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "DONE", resp.State)
	assert.Equal(t, "draft", resp.Title, "fields absent from the payload stay unchanged")
}

func TestTaskUpdateRejectsBadState(t *testing.T) {
	f := newTaskFixture(t)
	created := f.seed(t, 1, "draft", domain.TaskStateToDo)
	token, err := f.codec.Encode(created.ID)
	require.NoError(t, err)

	body := strings.NewReader(`{"state":"ARCHIVED"}`)
	req := withURLParam(authedRequest(http.MethodPut, "/api/tasks/"+token, body, 1), "id", token)
	rec := httptest.NewRecorder()
	f.handler.Update(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskUpdateNotFound(t *testing.T) {
	f := newTaskFixture(t)
	token, err := f.codec.Encode(777)
	require.NoError(t, err)

	body := strings.NewReader(`{"title":"renamed"}`)
	req := withURLParam(authedRequest(http.MethodPut, "/api/tasks/"+token, body, 1), "id", token)
	rec := httptest.NewRecorder()
	f.handler.Update(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskDelete(t *testing.T) {
	f := newTaskFixture(t)
	created := f.seed(t, 1, "remove me", domain.TaskStateDone)
	token, err := f.codec.Encode(created.ID)
	require.NoError(t, err)

	req := withURLParam(authedRequest(http.MethodDelete, "/api/tasks/"+token, nil, 1), "id", token)
	rec := httptest.NewRecorder()
	f.handler.Delete(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	_, err = f.tasks.GetByID(context.Background(), created.ID, 1)
	assert.Error(t, err)
}

func TestTaskDeleteNotFound(t *testing.T) {
	f := newTaskFixture(t)
	token, err := f.codec.Encode(888)
	require.NoError(t, err)

	req := withURLParam(authedRequest(http.MethodDelete, "/api/tasks/"+token, nil, 1), "id", token)
	rec := httptest.NewRecorder()
	f.handler.Delete(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskHandlersRequireAuthContext(t *testing.T) {
	f := newTaskFixture(t)

	// A request that somehow bypasses the middleware carries no user ID and
	// must be refused.
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	f.handler.List(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/taskin/taskin-api/internal/api/shared"
	"github.com/taskin/taskin-api/internal/config"
	"github.com/taskin/taskin-api/internal/domain"
	"github.com/taskin/taskin-api/internal/idcodec"
	"github.com/taskin/taskin-api/internal/store"
)

// In-memory stores backing the handler tests. The real services run on top,
// so these tests exercise the full handler-to-store path minus the database.

type fakeTaskStore struct {
	tasks  map[int64]*domain.Task
	nextID int64
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[int64]*domain.Task), nextID: 1}
}

func (f *fakeTaskStore) List(_ context.Context, authorID int64, _ store.QueryOptions) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, task := range f.tasks {
		if task.AuthorID == authorID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) Count(_ context.Context, authorID int64) (int64, error) {
	var count int64
	for _, task := range f.tasks {
		if task.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (f *fakeTaskStore) ListByState(_ context.Context, authorID int64, state domain.TaskState) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, task := range f.tasks {
		if task.AuthorID == authorID && task.State == state {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) GetByID(_ context.Context, id, authorID int64) (*domain.Task, error) {
	task, ok := f.tasks[id]
	if !ok || task.AuthorID != authorID {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

func (f *fakeTaskStore) Create(_ context.Context, task *domain.Task) error {
	task.ID = f.nextID
	f.nextID++
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskStore) Update(_ context.Context, id, authorID int64, upd store.TaskUpdate) (*domain.Task, error) {
	task, ok := f.tasks[id]
	if !ok || task.AuthorID != authorID {
		return nil, store.ErrTaskNotFound
	}
	if upd.Title != nil {
		task.Title = *upd.Title
	}
	if upd.Content != nil {
		task.Content = *upd.Content
	}
	if upd.State != nil {
		task.State = *upd.State
	}
	task.UpdatedAt = time.Now().UTC()
	return task, nil
}

func (f *fakeTaskStore) Delete(_ context.Context, id, authorID int64) error {
	task, ok := f.tasks[id]
	if !ok || task.AuthorID != authorID {
		return store.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

type fakeUserStore struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*domain.User), nextID: 1}
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByName(_ context.Context, name string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Name == name {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	if _, err := f.GetByName(context.Background(), user.Name); err == nil {
		return store.ErrUserNameExists
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func newTestCodec(t *testing.T) *idcodec.Codec {
	t.Helper()
	codec, err := idcodec.New(config.EncryptionConfig{
		Algorithm: "aes-256-cbc",
		Key:       "0123456789abcdef0123456789abcdef",
		IV:        "fedcba9876543210",
	})
	require.NoError(t, err)
	return codec
}

// authedRequest builds a request whose context carries userID, the way the
// auth middleware leaves it for the handlers.
func authedRequest(method, target string, body io.Reader, userID int64) *http.Request {
	req := httptest.NewRequest(method, target, body)
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

// withURLParam attaches a chi route parameter so chi.URLParam resolves it
// outside a running router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

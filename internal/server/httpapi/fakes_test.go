package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/growflow/internal/common"
	"github.com/dmitrijs2005/growflow/internal/server/auth"
	"github.com/dmitrijs2005/growflow/internal/server/models"
	"github.com/dmitrijs2005/growflow/internal/server/services"
)

var testSecret = []byte("test-secret")

const (
	aliceID = "8a7b2f9e-0000-4000-8000-000000000001"
	bobID   = "8a7b2f9e-0000-4000-8000-000000000002"
	taskA   = "0f8fad5b-d9cb-469f-a165-70867728950e"
)

type fakeUsers struct {
	mu    sync.Mutex
	calls int

	token    string
	err      error
	user     *models.User
	lastArgs []string
}

func (f *fakeUsers) Register(ctx context.Context, username, email, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastArgs = []string{username, email, password}
	return f.token, f.err
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastArgs = []string{email, password}
	return f.token, f.err
}

func (f *fakeUsers) GetUser(ctx context.Context, userID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastArgs = []string{userID}
	return f.user, f.err
}

// fakeTasks keeps tasks in memory and applies the real growth rule, so
// handler tests can walk a whole lifecycle.
type fakeTasks struct {
	mu    sync.Mutex
	calls int
	tasks map[string]*models.Task
	err   error
	ids   []string
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{tasks: map[string]*models.Task{}, ids: []string{taskA}}
}

func (f *fakeTasks) owned(userID, id string) (*models.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if t.UserID != userID {
		return nil, common.ErrorForbidden
	}
	return t, nil
}

func (f *fakeTasks) List(ctx context.Context, userID string) ([]*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Task
	for _, t := range f.tasks {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTasks) Get(ctx context.Context, userID, id string) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	t, err := f.owned(userID, id)
	if err != nil {
		return nil, err
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTasks) Create(ctx context.Context, userID string, in services.NewTask) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if in.Name == "" || in.PlantType == "" {
		return nil, common.ErrorValidation
	}
	id := f.ids[0]
	f.ids = f.ids[1:]
	t := &models.Task{ID: id, UserID: userID, Name: in.Name, Description: in.Description, PlantType: in.PlantType, CreatedAt: time.Now()}
	f.tasks[id] = t
	cp := *t
	return &cp, nil
}

func (f *fakeTasks) Update(ctx context.Context, userID, id string, patch models.TaskPatch) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	t, err := f.owned(userID, id)
	if err != nil {
		return nil, err
	}
	t.Apply(patch)
	cp := *t
	return &cp, nil
}

func (f *fakeTasks) Delete(ctx context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	if _, err := f.owned(userID, id); err != nil {
		return err
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTasks) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSnapshots struct {
	res *services.SnapshotResult
	err error
}

func (f *fakeSnapshots) Create(ctx context.Context, userID string) (*services.SnapshotResult, error) {
	return f.res, f.err
}

type fakeLimiter struct {
	allowed bool
	wait    time.Duration
	err     error
}

func (f *fakeLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	return f.allowed, f.wait, f.err
}

type fakeHealth struct{ serving bool }

func (f fakeHealth) Serving() bool { return f.serving }

// --- request helpers ---

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, testSecret, time.Hour)
	require.NoError(t, err)
	return tok
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

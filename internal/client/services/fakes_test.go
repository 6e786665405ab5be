package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/growflow/internal/client/client"
	"github.com/dmitrijs2005/growflow/internal/client/models"
	"github.com/dmitrijs2005/growflow/internal/client/repositories/metadata"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func getMeta(t *testing.T, db *sql.DB, key string) string {
	t.Helper()
	v, err := metadata.NewSQLiteRepository(db).Get(context.Background(), key)
	require.NoError(t, err)
	return string(v)
}

// fakeClient implements client.Client, returning err from every call when set.
type fakeClient struct {
	token string
	err   error

	authToken string
	user      *models.User
	task      *models.Task
	tasks     []*models.Task
	snapshot  *models.Snapshot

	lastArgs  []string
	lastPatch models.TaskPatch
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Register(ctx context.Context, username, email, password string) (string, error) {
	f.lastArgs = []string{username, email, password}
	return f.authToken, f.err
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	f.lastArgs = []string{email, password}
	return f.authToken, f.err
}

func (f *fakeClient) SetToken(token string) { f.token = token }

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeClient) ListTasks(ctx context.Context) ([]*models.Task, error) {
	return f.tasks, f.err
}

func (f *fakeClient) GetTask(ctx context.Context, id string) (*models.Task, error) {
	f.lastArgs = []string{id}
	return f.task, f.err
}

func (f *fakeClient) CreateTask(ctx context.Context, name, description, plantType string) (*models.Task, error) {
	f.lastArgs = []string{name, description, plantType}
	return f.task, f.err
}

func (f *fakeClient) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	f.lastArgs = []string{id}
	f.lastPatch = patch
	return f.task, f.err
}

func (f *fakeClient) DeleteTask(ctx context.Context, id string) error {
	f.lastArgs = []string{id}
	return f.err
}

func (f *fakeClient) CreateSnapshot(ctx context.Context) (*models.Snapshot, error) {
	return f.snapshot, f.err
}

func unauthorized() error {
	return client.NewAPIError(401, "Token has expired. Authorization denied.")
}

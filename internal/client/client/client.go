package client

import (
	"context"

	"github.com/dmitrijs2005/growflow/internal/client/models"
)

// Client is the GrowFlow REST API as seen by the terminal client.
// Register and Login return a session token; the task calls use the token
// set with SetToken.
type Client interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	SetToken(token string)

	CurrentUser(ctx context.Context) (*models.User, error)
	ListTasks(ctx context.Context) ([]*models.Task, error)
	GetTask(ctx context.Context, id string) (*models.Task, error)
	CreateTask(ctx context.Context, name, description, plantType string) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	CreateSnapshot(ctx context.Context) (*models.Snapshot, error)
}

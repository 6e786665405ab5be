package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/growflow/internal/client/client"
	"github.com/dmitrijs2005/growflow/internal/client/models"
)

var (
	ErrTaskFieldsRequired = errors.New("name and plant type are required")
	ErrEmptyName          = errors.New("name must not be empty")
)

// TaskService exposes the garden to the REPL. Any 401 from the server
// clears the stored session.
type TaskService interface {
	List(ctx context.Context) ([]*models.Task, error)
	Show(ctx context.Context, id string) (*models.Task, error)
	Add(ctx context.Context, name, description, plantType string) (*models.Task, error)
	SetCompleted(ctx context.Context, id string, completed bool) (*models.Task, error)
	Rename(ctx context.Context, id, name string) (*models.Task, error)
	Delete(ctx context.Context, id string) error
	Snapshot(ctx context.Context) (*models.Snapshot, error)
}

type taskService struct {
	session
}

func NewTaskService(c client.Client, db *sql.DB) TaskService {
	return &taskService{session{client: c, db: db}}
}

func (s *taskService) List(ctx context.Context) ([]*models.Task, error) {
	tasks, err := s.client.ListTasks(ctx)
	return tasks, s.check(ctx, err)
}

func (s *taskService) Show(ctx context.Context, id string) (*models.Task, error) {
	t, err := s.client.GetTask(ctx, id)
	return t, s.check(ctx, err)
}

func (s *taskService) Add(ctx context.Context, name, description, plantType string) (*models.Task, error) {
	name = strings.TrimSpace(name)
	plantType = strings.TrimSpace(plantType)
	if name == "" || plantType == "" {
		return nil, ErrTaskFieldsRequired
	}

	t, err := s.client.CreateTask(ctx, name, strings.TrimSpace(description), plantType)
	return t, s.check(ctx, err)
}

func (s *taskService) SetCompleted(ctx context.Context, id string, completed bool) (*models.Task, error) {
	t, err := s.client.UpdateTask(ctx, id, models.TaskPatch{Completed: &completed})
	return t, s.check(ctx, err)
}

func (s *taskService) Rename(ctx context.Context, id, name string) (*models.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	t, err := s.client.UpdateTask(ctx, id, models.TaskPatch{Name: &name})
	return t, s.check(ctx, err)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.check(ctx, s.client.DeleteTask(ctx, id))
}

func (s *taskService) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	snap, err := s.client.CreateSnapshot(ctx)
	return snap, s.check(ctx, err)
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/growflow/internal/common"
	"github.com/dmitrijs2005/growflow/internal/dbx"
	"github.com/dmitrijs2005/growflow/internal/logging"
	"github.com/dmitrijs2005/growflow/internal/server/metrics"
	"github.com/dmitrijs2005/growflow/internal/server/models"
	"github.com/dmitrijs2005/growflow/internal/server/repositories/repomanager"
)

// NewTask is the input of TaskService.Create.
type NewTask struct {
	Name        string
	Description string
	PlantType   string
}

// TaskService manages a user's tasks and their growth stages. Every method
// takes the authenticated user's id and refuses to touch tasks owned by
// anyone else.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *TaskService {
	return &TaskService{db: db, repomanager: m, log: log}
}

// storeError passes domain errors through and hides everything else behind
// ErrorServiceUnavailable.
func (s *TaskService) storeError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrorForbidden),
		errors.Is(err, common.ErrorValidation):
		return err
	default:
		s.log.Error(ctx, op+" failed", "error", err)
		return common.ErrorServiceUnavailable
	}
}

// List returns userID's tasks, newest first.
func (s *TaskService) List(ctx context.Context, userID string) ([]*models.Task, error) {
	tasks, err := s.repomanager.Tasks(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, s.storeError(ctx, "list tasks", err)
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, userID, id string) (*models.Task, error) {
	task, err := s.repomanager.Tasks(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, s.storeError(ctx, "get task", err)
	}
	if task.UserID != userID {
		return nil, common.ErrorForbidden
	}
	return task, nil
}

// Create stores a new task at growth stage 0, not completed.
func (s *TaskService) Create(ctx context.Context, userID string, in NewTask) (*models.Task, error) {
	name := strings.TrimSpace(in.Name)
	plantType := strings.TrimSpace(in.PlantType)

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if plantType == "" {
		return nil, fmt.Errorf("%w: plantType is required", common.ErrorValidation)
	}

	task := &models.Task{
		UserID:      userID,
		Name:        name,
		Description: in.Description,
		PlantType:   plantType,
	}

	task, err := s.repomanager.Tasks(s.db).Create(ctx, task)
	if err != nil {
		return nil, s.storeError(ctx, "create task", err)
	}
	return task, nil
}

// Update applies patch to the task. The row stays locked from read to write,
// so concurrent toggles of the same task are applied one after another and
// each false→true edge grows the plant exactly once.
func (s *TaskService) Update(ctx context.Context, userID, id string, patch models.TaskPatch) (*models.Task, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", common.ErrorValidation)
		}
		patch.Name = &name
	}

	var (
		task *models.Task
		grew bool
	)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		current, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current.UserID != userID {
			return common.ErrorForbidden
		}

		grew = current.Apply(patch)

		if err := repo.Update(ctx, current); err != nil {
			return err
		}

		task = current
		return nil
	})
	if err != nil {
		return nil, s.storeError(ctx, "update task", err)
	}

	if grew {
		metrics.TaskCompletions.Inc()
		s.log.Debug(ctx, "plant grew", "task_id", task.ID, "growth_stage", task.GrowthStage)
	}

	return task, nil
}

// Delete removes the task. Deleting an id that is already gone reports
// ErrorNotFound.
func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		current, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current.UserID != userID {
			return common.ErrorForbidden
		}

		return repo.Delete(ctx, id)
	})
	if err != nil {
		return s.storeError(ctx, "delete task", err)
	}
	return nil
}

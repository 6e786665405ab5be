package tasks

import (
	"context"

	"github.com/dmitrijs2005/growflow/internal/server/models"
)

// Repository persists tasks. Ownership is not checked here; callers compare
// Task.UserID with the authenticated user.
type Repository interface {
	// Create inserts task and fills in its generated ID and CreatedAt.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	// ListByUser returns userID's tasks, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	// GetByIDForUpdate reads the task and row-locks it until the surrounding
	// transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*models.Task, error)
	// Update writes name, description, completed and growth stage.
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
}

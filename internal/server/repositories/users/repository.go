package users

import (
	"context"

	"github.com/dmitrijs2005/growflow/internal/server/models"
)

// Repository persists user accounts.
type Repository interface {
	// Create inserts user and fills in its generated ID and CreatedAt.
	// A taken email or username yields common.ErrorDuplicateIdentity.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

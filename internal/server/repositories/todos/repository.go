package todos

import (
	"context"

	"github.com/dpetrovs/todomood/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	GetByID(ctx context.Context, id int64) (*models.Todo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) error
	Delete(ctx context.Context, id int64) error
	DeleteAllByOwner(ctx context.Context, ownerID int64) error
}

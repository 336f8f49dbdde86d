package moods

import (
	"context"
	"time"

	"github.com/dpetrovs/todomood/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, mood *models.Mood) (*models.Mood, error)
	GetByOwnerAndDate(ctx context.Context, ownerID int64, date time.Time) (*models.Mood, error)
	UpdateValue(ctx context.Context, id int64, mood string) error
	DeleteAllByOwner(ctx context.Context, ownerID int64) error
}

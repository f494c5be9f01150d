package videos

import (
	"context"

	"github.com/avolkovs/vidhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, video *models.Video) (*models.Video, error)
	GetByID(ctx context.Context, id string) (*models.Video, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Video, error)
	ListPublished(ctx context.Context, limit, offset int) ([]*models.Video, error)
	SetPublished(ctx context.Context, id string, published bool) error
	IncrementViews(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

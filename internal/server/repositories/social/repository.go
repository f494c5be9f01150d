// Package social provides PostgreSQL-backed repositories for the community
// entities around videos: tweets, comments, likes and playlists.
package social

import (
	"context"

	"github.com/avolkovs/vidhub/internal/server/models"
)

type TweetsRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) (*models.Tweet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Tweet, error)
	Delete(ctx context.Context, id string, ownerID string) error
}

type CommentsRepository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	ListByVideo(ctx context.Context, videoID string) ([]*models.Comment, error)
	Delete(ctx context.Context, id string, ownerID string) error
}

// LikesRepository toggles likes: a second like for the same target removes
// the first one.
type LikesRepository interface {
	Toggle(ctx context.Context, like *models.Like) (liked bool, err error)
	CountForVideo(ctx context.Context, videoID string) (int64, error)
}

type PlaylistsRepository interface {
	Create(ctx context.Context, playlist *models.Playlist) (*models.Playlist, error)
	GetByID(ctx context.Context, id string) (*models.Playlist, error)
	AddVideo(ctx context.Context, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, playlistID, videoID string) error
	Delete(ctx context.Context, id string, ownerID string) error
}

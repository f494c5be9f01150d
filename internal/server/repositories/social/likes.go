package social

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/avolkovs/vidhub/internal/dbx"
	"github.com/avolkovs/vidhub/internal/server/models"
)

type PostgresLikesRepository struct {
	db dbx.DBTX
}

func NewPostgresLikesRepository(db dbx.DBTX) *PostgresLikesRepository {
	return &PostgresLikesRepository{db: db}
}

// Toggle removes an existing like for the same owner/target pair, or inserts
// one when none exists. Returns whether the target is liked afterwards.
func (r *PostgresLikesRepository) Toggle(ctx context.Context, like *models.Like) (bool, error) {
	del := `
		DELETE FROM likes
		WHERE owner_id = $1
		  AND video_id IS NOT DISTINCT FROM $2
		  AND comment_id IS NOT DISTINCT FROM $3
		  AND tweet_id IS NOT DISTINCT FROM $4
	`
	res, err := r.db.ExecContext(ctx, del, like.OwnerID, like.VideoID, like.CommentID, like.TweetID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	if affected > 0 {
		return false, nil
	}

	if like.ID == "" {
		like.ID = uuid.NewString()
	}
	ins := `
		INSERT INTO likes (id, owner_id, video_id, comment_id, tweet_id)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, ins, like.ID, like.OwnerID, like.VideoID, like.CommentID, like.TweetID); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

func (r *PostgresLikesRepository) CountForVideo(ctx context.Context, videoID string) (int64, error) {
	query := `SELECT count(*) FROM likes WHERE video_id = $1`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, videoID).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

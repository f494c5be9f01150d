package social

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avolkovs/vidhub/internal/common"
	"github.com/avolkovs/vidhub/internal/dbx"
	"github.com/avolkovs/vidhub/internal/server/models"
)

type PostgresPlaylistsRepository struct {
	db dbx.DBTX
}

func NewPostgresPlaylistsRepository(db dbx.DBTX) *PostgresPlaylistsRepository {
	return &PostgresPlaylistsRepository{db: db}
}

func (r *PostgresPlaylistsRepository) Create(ctx context.Context, playlist *models.Playlist) (*models.Playlist, error) {
	if playlist.ID == "" {
		playlist.ID = uuid.NewString()
	}
	query := `
		INSERT INTO playlists (id, owner_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, playlist.ID, playlist.OwnerID, playlist.Name, playlist.Description).
		Scan(&playlist.CreatedAt, &playlist.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return playlist, nil
}

func (r *PostgresPlaylistsRepository) GetByID(ctx context.Context, id string) (*models.Playlist, error) {
	query := `
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM playlists WHERE id = $1
	`
	playlist := &models.Playlist{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&playlist.ID, &playlist.OwnerID, &playlist.Name, &playlist.Description,
		&playlist.CreatedAt, &playlist.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	videoQuery := `SELECT video_id FROM playlist_videos WHERE playlist_id = $1 ORDER BY position`
	rows, err := r.db.QueryContext(ctx, videoQuery, id)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var videoID string
		if err := rows.Scan(&videoID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		playlist.VideoIDs = append(playlist.VideoIDs, videoID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return playlist, nil
}

func (r *PostgresPlaylistsRepository) AddVideo(ctx context.Context, playlistID, videoID string) error {
	query := `
		INSERT INTO playlist_videos (playlist_id, video_id, position)
		SELECT $1, $2, coalesce(max(position), 0) + 1 FROM playlist_videos WHERE playlist_id = $1
		ON CONFLICT DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, playlistID, videoID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresPlaylistsRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) error {
	query := `DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`
	if _, err := r.db.ExecContext(ctx, query, playlistID, videoID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresPlaylistsRepository) Delete(ctx context.Context, id string, ownerID string) error {
	query := `DELETE FROM playlists WHERE id = $1 AND owner_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

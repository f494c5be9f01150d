// Package videos provides a PostgreSQL-backed repository for video records.
package videos

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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const videoColumns = `id, owner_id, title, description, file_key, thumbnail, duration, views, is_published, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, video *models.Video) (*models.Video, error) {
	if video.ID == "" {
		video.ID = uuid.NewString()
	}

	query := `
		INSERT INTO videos (id, owner_id, title, description, file_key, thumbnail, duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		video.ID, video.OwnerID, video.Title, video.Description,
		video.FileKey, video.Thumbnail, video.Duration,
	).Scan(&video.CreatedAt, &video.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return video, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`
	video := &models.Video{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&video.ID, &video.OwnerID, &video.Title, &video.Description,
		&video.FileKey, &video.Thumbnail, &video.Duration, &video.Views,
		&video.IsPublished, &video.CreatedAt, &video.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return video, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE owner_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, ownerID)
}

func (r *PostgresRepository) ListPublished(ctx context.Context, limit, offset int) ([]*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE is_published ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

func (r *PostgresRepository) SetPublished(ctx context.Context, id string, published bool) error {
	query := `UPDATE videos SET is_published = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, published)
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

func (r *PostgresRepository) IncrementViews(ctx context.Context, id string) error {
	query := `UPDATE videos SET views = views + 1 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM videos WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Video, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Video
	for rows.Next() {
		video := &models.Video{}
		if err := rows.Scan(
			&video.ID, &video.OwnerID, &video.Title, &video.Description,
			&video.FileKey, &video.Thumbnail, &video.Duration, &video.Views,
			&video.IsPublished, &video.CreatedAt, &video.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

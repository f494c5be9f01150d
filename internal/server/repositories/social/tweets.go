package social

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/avolkovs/vidhub/internal/common"
	"github.com/avolkovs/vidhub/internal/dbx"
	"github.com/avolkovs/vidhub/internal/server/models"
)

type PostgresTweetsRepository struct {
	db dbx.DBTX
}

func NewPostgresTweetsRepository(db dbx.DBTX) *PostgresTweetsRepository {
	return &PostgresTweetsRepository{db: db}
}

func (r *PostgresTweetsRepository) Create(ctx context.Context, tweet *models.Tweet) (*models.Tweet, error) {
	if tweet.ID == "" {
		tweet.ID = uuid.NewString()
	}
	query := `
		INSERT INTO tweets (id, owner_id, content)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, tweet.ID, tweet.OwnerID, tweet.Content).
		Scan(&tweet.CreatedAt, &tweet.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tweet, nil
}

func (r *PostgresTweetsRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Tweet, error) {
	query := `
		SELECT id, owner_id, content, created_at, updated_at
		FROM tweets WHERE owner_id = $1 ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Tweet
	for rows.Next() {
		tweet := &models.Tweet{}
		if err := rows.Scan(&tweet.ID, &tweet.OwnerID, &tweet.Content, &tweet.CreatedAt, &tweet.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, tweet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Delete removes the tweet only when ownerID matches, so a caller cannot
// delete someone else's tweet.
func (r *PostgresTweetsRepository) Delete(ctx context.Context, id string, ownerID string) error {
	query := `DELETE FROM tweets WHERE id = $1 AND owner_id = $2`
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

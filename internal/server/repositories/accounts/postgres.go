// Package accounts provides a PostgreSQL-backed repository for account
// records, including the single stored refresh token per account.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avolkovs/vidhub/internal/common"
	"github.com/avolkovs/vidhub/internal/dbx"
	"github.com/avolkovs/vidhub/internal/server/models"
)

const uniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX (satisfied by both
// *sql.DB and *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const accountColumns = `id, username, email, fullname, avatar, cover_image, password_hash, refresh_token, created_at, updated_at`

// Create inserts a new account. Duplicate username or email surfaces as
// common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}

	query := `
		INSERT INTO accounts (id, username, email, fullname, avatar, cover_image, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.Username, account.Email, account.Fullname,
		account.Avatar, account.CoverImage, account.PasswordHash,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByIdentifier looks an account up by username or email. Identifiers are
// stored lowercased, so the caller normalizes before calling.
func (r *PostgresRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1 OR email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, identifier))
}

// UpdateRefreshToken overwrites the stored refresh token unconditionally.
// A nil token clears it.
func (r *PostgresRepository) UpdateRefreshToken(ctx context.Context, id string, token *string) error {
	query := `UPDATE accounts SET refresh_token = $2, updated_at = now() WHERE id = $1`
	return r.execExpectingRow(ctx, query, id, token)
}

// CompareAndSwapRefreshToken replaces the stored refresh token only if it
// still equals expectedOld. This is the single serialization point for
// refresh rotation: the losing side of a race matches zero rows and gets
// common.ErrVersionConflict.
func (r *PostgresRepository) CompareAndSwapRefreshToken(ctx context.Context, id string, expectedOld string, newToken string) error {
	query := `
		UPDATE accounts SET refresh_token = $3, updated_at = now()
		WHERE id = $1 AND refresh_token = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, expectedOld, newToken)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrVersionConflict
	}
	return nil
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id string, hash string) error {
	query := `UPDATE accounts SET password_hash = $2, updated_at = now() WHERE id = $1`
	return r.execExpectingRow(ctx, query, id, hash)
}

// UpdateDetails changes fullname and email together. A duplicate email
// surfaces as common.ErrorAlreadyExists.
func (r *PostgresRepository) UpdateDetails(ctx context.Context, id string, fullname string, email string) error {
	query := `UPDATE accounts SET fullname = $2, email = $3, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, fullname, email)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrorAlreadyExists
		}
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

func (r *PostgresRepository) UpdateAvatar(ctx context.Context, id string, avatar string) error {
	query := `UPDATE accounts SET avatar = $2, updated_at = now() WHERE id = $1`
	return r.execExpectingRow(ctx, query, id, avatar)
}

func (r *PostgresRepository) UpdateCoverImage(ctx context.Context, id string, coverImage string) error {
	query := `UPDATE accounts SET cover_image = $2, updated_at = now() WHERE id = $1`
	return r.execExpectingRow(ctx, query, id, coverImage)
}

// AddWatchHistory records a view; re-watching refreshes the timestamp.
func (r *PostgresRepository) AddWatchHistory(ctx context.Context, accountID string, videoID string) error {
	query := `
		INSERT INTO watch_history (account_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (account_id, video_id) DO UPDATE SET watched_at = now()
	`
	if _, err := r.db.ExecContext(ctx, query, accountID, videoID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Account, error) {
	account := &models.Account{}
	err := row.Scan(
		&account.ID, &account.Username, &account.Email, &account.Fullname,
		&account.Avatar, &account.CoverImage, &account.PasswordHash,
		&account.RefreshToken, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}

func (r *PostgresRepository) execExpectingRow(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
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

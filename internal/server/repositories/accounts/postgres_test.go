package accounts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avolkovs/vidhub/internal/common"
	"github.com/avolkovs/vidhub/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func accountRows(refreshToken *string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "username", "email", "fullname", "avatar", "cover_image",
		"password_hash", "refresh_token", "created_at", "updated_at",
	}).AddRow("id-1", "u1", "u1@x.com", "User One", "", "", "hash", refreshToken, now, now)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)^\s*INSERT\s+INTO\s+accounts`).
		WithArgs(sqlmock.AnyArg(), "u1", "u1@x.com", "User One", "", "", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	got, err := repo.Create(context.Background(), &models.Account{
		Username: "u1", Email: "u1@x.com", Fullname: "User One", PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestGetByIdentifier_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM accounts WHERE username = \$1 OR email = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByIdentifier(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	stored := "stored-token"
	mock.ExpectQuery(`SELECT .* FROM accounts WHERE id = \$1`).
		WithArgs("id-1").
		WillReturnRows(accountRows(&stored))

	got, err := repo.GetByID(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.RefreshToken == nil || *got.RefreshToken != "stored-token" {
		t.Fatalf("unexpected refresh token: %v", got.RefreshToken)
	}
}

func TestCompareAndSwapRefreshToken_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)UPDATE accounts SET refresh_token = \$3.*WHERE id = \$1 AND refresh_token = \$2`).
		WithArgs("id-1", "old", "new").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.CompareAndSwapRefreshToken(context.Background(), "id-1", "old", "new"); err != nil {
		t.Fatalf("CompareAndSwapRefreshToken error: %v", err)
	}
}

func TestCompareAndSwapRefreshToken_StaleValue(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// Zero rows matched: some other call already rotated or cleared the token.
	mock.ExpectExec(`(?s)UPDATE accounts SET refresh_token = \$3.*WHERE id = \$1 AND refresh_token = \$2`).
		WithArgs("id-1", "stale", "new").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.CompareAndSwapRefreshToken(context.Background(), "id-1", "stale", "new")
	if !errors.Is(err, common.ErrVersionConflict) {
		t.Fatalf("expected common.ErrVersionConflict, got %v", err)
	}
}

func TestUpdateRefreshToken_ClearsWithNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE accounts SET refresh_token = \$2`).
		WithArgs("id-1", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateRefreshToken(context.Background(), "id-1", nil); err != nil {
		t.Fatalf("UpdateRefreshToken error: %v", err)
	}
}

func TestUpdateDetails_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE accounts SET fullname = \$2, email = \$3`).
		WithArgs("id-1", "User One", "taken@x.com").
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	err := repo.UpdateDetails(context.Background(), "id-1", "User One", "taken@x.com")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected common.ErrorAlreadyExists, got %v", err)
	}
}

func TestUpdateDetails_MissingAccount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE accounts SET fullname = \$2, email = \$3`).
		WithArgs("missing", "User One", "u1@x.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateDetails(context.Background(), "missing", "User One", "u1@x.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestUpdatePasswordHash_MissingAccount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE accounts SET password_hash = \$2`).
		WithArgs("missing", "hash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePasswordHash(context.Background(), "missing", "hash")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

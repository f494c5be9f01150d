package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/avolkovs/vidhub/internal/dbx"
	"github.com/avolkovs/vidhub/internal/server/migrations"
	"github.com/avolkovs/vidhub/internal/server/repositories/accounts"
	"github.com/avolkovs/vidhub/internal/server/repositories/social"
	"github.com/avolkovs/vidhub/internal/server/repositories/videos"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Videos(db dbx.DBTX) videos.Repository {
	return videos.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Tweets(db dbx.DBTX) social.TweetsRepository {
	return social.NewPostgresTweetsRepository(db)
}

func (m *PostgresRepositoryManager) Comments(db dbx.DBTX) social.CommentsRepository {
	return social.NewPostgresCommentsRepository(db)
}

func (m *PostgresRepositoryManager) Likes(db dbx.DBTX) social.LikesRepository {
	return social.NewPostgresLikesRepository(db)
}

func (m *PostgresRepositoryManager) Playlists(db dbx.DBTX) social.PlaylistsRepository {
	return social.NewPostgresPlaylistsRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}

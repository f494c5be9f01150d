// Package repomanager wires concrete repositories to a database handle and
// owns schema migrations. Repositories are constructed per call against a
// dbx.DBTX, so the same manager serves both plain and transactional use.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/avolkovs/vidhub/internal/dbx"
	"github.com/avolkovs/vidhub/internal/server/repositories/accounts"
	"github.com/avolkovs/vidhub/internal/server/repositories/social"
	"github.com/avolkovs/vidhub/internal/server/repositories/videos"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Videos(db dbx.DBTX) videos.Repository
	Tweets(db dbx.DBTX) social.TweetsRepository
	Comments(db dbx.DBTX) social.CommentsRepository
	Likes(db dbx.DBTX) social.LikesRepository
	Playlists(db dbx.DBTX) social.PlaylistsRepository
}

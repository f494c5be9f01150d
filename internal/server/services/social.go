package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/avolkovs/vidhub/internal/common"
	"github.com/avolkovs/vidhub/internal/dbx"
	"github.com/avolkovs/vidhub/internal/logging"
	"github.com/avolkovs/vidhub/internal/server/models"
	"github.com/avolkovs/vidhub/internal/server/repositories/repomanager"
)

// SocialService covers tweets, comments, likes and playlists.
type SocialService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewSocialService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *SocialService {
	return &SocialService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "social_service"),
	}
}

func (s *SocialService) CreateTweet(ctx context.Context, ownerID, content string) (*models.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, common.ErrorValidation
	}
	tweet, err := s.repomanager.Tweets(s.db).Create(ctx, &models.Tweet{OwnerID: ownerID, Content: content})
	if err != nil {
		s.logger.Error(ctx, "tweet create failed", "error", err)
		return nil, common.ErrorInternal
	}
	return tweet, nil
}

func (s *SocialService) ListTweets(ctx context.Context, ownerID string) ([]*models.Tweet, error) {
	tweets, err := s.repomanager.Tweets(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error(ctx, "tweet list failed", "error", err)
		return nil, common.ErrorInternal
	}
	return tweets, nil
}

func (s *SocialService) DeleteTweet(ctx context.Context, callerID, tweetID string) error {
	return s.mapDeleteErr(ctx, s.repomanager.Tweets(s.db).Delete(ctx, tweetID, callerID))
}

func (s *SocialService) CreateComment(ctx context.Context, ownerID, videoID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" || videoID == "" {
		return nil, common.ErrorValidation
	}
	comment, err := s.repomanager.Comments(s.db).Create(ctx, &models.Comment{
		OwnerID: ownerID, VideoID: videoID, Content: content,
	})
	if err != nil {
		s.logger.Error(ctx, "comment create failed", "error", err)
		return nil, common.ErrorInternal
	}
	return comment, nil
}

func (s *SocialService) ListComments(ctx context.Context, videoID string) ([]*models.Comment, error) {
	comments, err := s.repomanager.Comments(s.db).ListByVideo(ctx, videoID)
	if err != nil {
		s.logger.Error(ctx, "comment list failed", "error", err)
		return nil, common.ErrorInternal
	}
	return comments, nil
}

func (s *SocialService) DeleteComment(ctx context.Context, callerID, commentID string) error {
	return s.mapDeleteErr(ctx, s.repomanager.Comments(s.db).Delete(ctx, commentID, callerID))
}

// ToggleLike likes or unlikes exactly one target. Returns whether the target
// is liked after the call.
func (s *SocialService) ToggleLike(ctx context.Context, ownerID string, videoID, commentID, tweetID *string) (bool, error) {
	targets := 0
	for _, t := range []*string{videoID, commentID, tweetID} {
		if t != nil && *t != "" {
			targets++
		}
	}
	if targets != 1 {
		return false, common.ErrorValidation
	}

	// The toggle is a delete-then-insert pair, so it runs in a transaction.
	var liked bool
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		liked, err = s.repomanager.Likes(tx).Toggle(ctx, &models.Like{
			OwnerID: ownerID, VideoID: videoID, CommentID: commentID, TweetID: tweetID,
		})
		return err
	})
	if err != nil {
		s.logger.Error(ctx, "like toggle failed", "error", err)
		return false, common.ErrorInternal
	}
	return liked, nil
}

func (s *SocialService) CreatePlaylist(ctx context.Context, ownerID, name, description string) (*models.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrorValidation
	}
	playlist, err := s.repomanager.Playlists(s.db).Create(ctx, &models.Playlist{
		OwnerID: ownerID, Name: name, Description: description,
	})
	if err != nil {
		s.logger.Error(ctx, "playlist create failed", "error", err)
		return nil, common.ErrorInternal
	}
	return playlist, nil
}

func (s *SocialService) GetPlaylist(ctx context.Context, id string) (*models.Playlist, error) {
	playlist, err := s.repomanager.Playlists(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "playlist lookup failed", "error", err)
		return nil, common.ErrorInternal
	}
	return playlist, nil
}

// AddPlaylistVideo appends a video; only the playlist owner may modify it.
func (s *SocialService) AddPlaylistVideo(ctx context.Context, callerID, playlistID, videoID string) error {
	playlistRepo := s.repomanager.Playlists(s.db)

	playlist, err := playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		s.logger.Error(ctx, "playlist lookup failed", "error", err)
		return common.ErrorInternal
	}
	if playlist.OwnerID != callerID {
		return common.ErrorUnauthorized
	}

	if err := playlistRepo.AddVideo(ctx, playlistID, videoID); err != nil {
		s.logger.Error(ctx, "playlist update failed", "error", err)
		return common.ErrorInternal
	}
	return nil
}

func (s *SocialService) RemovePlaylistVideo(ctx context.Context, callerID, playlistID, videoID string) error {
	playlistRepo := s.repomanager.Playlists(s.db)

	playlist, err := playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		s.logger.Error(ctx, "playlist lookup failed", "error", err)
		return common.ErrorInternal
	}
	if playlist.OwnerID != callerID {
		return common.ErrorUnauthorized
	}

	if err := playlistRepo.RemoveVideo(ctx, playlistID, videoID); err != nil {
		s.logger.Error(ctx, "playlist update failed", "error", err)
		return common.ErrorInternal
	}
	return nil
}

func (s *SocialService) DeletePlaylist(ctx context.Context, callerID, playlistID string) error {
	return s.mapDeleteErr(ctx, s.repomanager.Playlists(s.db).Delete(ctx, playlistID, callerID))
}

func (s *SocialService) mapDeleteErr(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	s.logger.Error(ctx, "delete failed", "error", err)
	return common.ErrorInternal
}

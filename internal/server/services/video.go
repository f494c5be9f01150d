package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/avolkovs/vidhub/internal/common"
	"github.com/avolkovs/vidhub/internal/logging"
	"github.com/avolkovs/vidhub/internal/server/models"
	"github.com/avolkovs/vidhub/internal/server/repositories/repomanager"
)

// VideoService manages video records and their media objects. Uploads go
// straight to object storage through presigned URLs; Publish only records
// the resulting keys.
type VideoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	media       MediaStore
	logger      logging.Logger
}

func NewVideoService(db *sql.DB, m repomanager.RepositoryManager, store MediaStore, l logging.Logger) *VideoService {
	return &VideoService{
		db:          db,
		repomanager: m,
		media:       store,
		logger:      l.With("module", "video_service"),
	}
}

// RequestUpload returns presigned PUT URLs for a video file and its thumbnail.
func (s *VideoService) RequestUpload(ctx context.Context) (fileKey, fileURL, thumbKey, thumbURL string, err error) {
	fileKey, fileURL, err = s.media.PresignPut(ctx, "videos")
	if err != nil {
		s.logger.Error(ctx, "presign failed", "error", err)
		return "", "", "", "", common.ErrorInternal
	}
	thumbKey, thumbURL, err = s.media.PresignPut(ctx, "thumbnails")
	if err != nil {
		s.logger.Error(ctx, "presign failed", "error", err)
		return "", "", "", "", common.ErrorInternal
	}
	return fileKey, fileURL, thumbKey, thumbURL, nil
}

// Publish records an uploaded video. On a failed insert the uploaded objects
// are removed.
func (s *VideoService) Publish(ctx context.Context, ownerID, title, description, fileKey, thumbKey string, duration float64) (*models.Video, error) {
	title = strings.TrimSpace(title)
	if title == "" || fileKey == "" {
		return nil, common.ErrorValidation
	}

	video := &models.Video{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		FileKey:     fileKey,
		Thumbnail:   thumbKey,
		Duration:    duration,
		IsPublished: false,
	}

	created, err := s.repomanager.Videos(s.db).Create(ctx, video)
	if err != nil {
		for _, key := range []string{fileKey, thumbKey} {
			if key == "" {
				continue
			}
			if delErr := s.media.Delete(ctx, key); delErr != nil {
				s.logger.Warn(ctx, "media cleanup failed", "key", key, "error", delErr)
			}
		}
		s.logger.Error(ctx, "video create failed", "error", err)
		return nil, common.ErrorInternal
	}
	return created, nil
}

// Watch fetches a video for playback: unpublished videos are only visible to
// their owner, a view is counted, the watcher's history is updated, and a
// presigned GET URL for the file is returned.
func (s *VideoService) Watch(ctx context.Context, viewerID, videoID string) (*models.Video, string, error) {
	videoRepo := s.repomanager.Videos(s.db)

	video, err := videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorNotFound
		}
		s.logger.Error(ctx, "video lookup failed", "error", err)
		return nil, "", common.ErrorInternal
	}

	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, "", common.ErrorNotFound
	}

	playbackURL, err := s.media.PresignGet(ctx, video.FileKey)
	if err != nil {
		s.logger.Error(ctx, "presign failed", "error", err)
		return nil, "", common.ErrorInternal
	}

	if err := videoRepo.IncrementViews(ctx, videoID); err != nil {
		s.logger.Warn(ctx, "view count update failed", "error", err)
	}
	if viewerID != "" {
		if err := s.repomanager.Accounts(s.db).AddWatchHistory(ctx, viewerID, videoID); err != nil {
			s.logger.Warn(ctx, "watch history update failed", "error", err)
		}
	}

	return video, playbackURL, nil
}

func (s *VideoService) ListPublished(ctx context.Context, limit, offset int) ([]*models.Video, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	result, err := s.repomanager.Videos(s.db).ListPublished(ctx, limit, offset)
	if err != nil {
		s.logger.Error(ctx, "video list failed", "error", err)
		return nil, common.ErrorInternal
	}
	return result, nil
}

func (s *VideoService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Video, error) {
	result, err := s.repomanager.Videos(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error(ctx, "video list failed", "error", err)
		return nil, common.ErrorInternal
	}
	return result, nil
}

// SetPublished toggles visibility; only the owner may do so.
func (s *VideoService) SetPublished(ctx context.Context, callerID, videoID string, published bool) error {
	videoRepo := s.repomanager.Videos(s.db)

	video, err := videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		s.logger.Error(ctx, "video lookup failed", "error", err)
		return common.ErrorInternal
	}
	if video.OwnerID != callerID {
		return common.ErrorUnauthorized
	}

	if err := videoRepo.SetPublished(ctx, videoID, published); err != nil {
		s.logger.Error(ctx, "publish toggle failed", "error", err)
		return common.ErrorInternal
	}
	return nil
}

// Delete removes the record and its media objects; only the owner may do so.
func (s *VideoService) Delete(ctx context.Context, callerID, videoID string) error {
	videoRepo := s.repomanager.Videos(s.db)

	video, err := videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		s.logger.Error(ctx, "video lookup failed", "error", err)
		return common.ErrorInternal
	}
	if video.OwnerID != callerID {
		return common.ErrorUnauthorized
	}

	if err := videoRepo.Delete(ctx, videoID); err != nil {
		s.logger.Error(ctx, "video delete failed", "error", err)
		return common.ErrorInternal
	}

	for _, key := range []string{video.FileKey, video.Thumbnail} {
		if key == "" {
			continue
		}
		if err := s.media.Delete(ctx, key); err != nil {
			s.logger.Warn(ctx, "media cleanup failed", "key", key, "error", err)
		}
	}
	return nil
}

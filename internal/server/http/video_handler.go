package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avolkovs/vidhub/internal/logging"
	"github.com/avolkovs/vidhub/internal/server/services"
)

type VideoHandler struct {
	videos *services.VideoService
	logger logging.Logger
}

func NewVideoHandler(videos *services.VideoService, l logging.Logger) *VideoHandler {
	return &VideoHandler{videos: videos, logger: l.With("module", "video_handler")}
}

type videoUploadResponse struct {
	FileKey      string `json:"fileKey"`
	FileURL      string `json:"fileUrl"`
	ThumbnailKey string `json:"thumbnailKey"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

func (h *VideoHandler) RequestUpload(c *gin.Context) {
	fileKey, fileURL, thumbKey, thumbURL, err := h.videos.RequestUpload(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, videoUploadResponse{
		FileKey:      fileKey,
		FileURL:      fileURL,
		ThumbnailKey: thumbKey,
		ThumbnailURL: thumbURL,
	})
}

type publishRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	FileKey      string  `json:"fileKey" binding:"required"`
	ThumbnailKey string  `json:"thumbnailKey"`
	Duration     float64 `json:"duration"`
}

func (h *VideoHandler) Publish(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	video, err := h.videos.Publish(c.Request.Context(), callerID(c),
		req.Title, req.Description, req.FileKey, req.ThumbnailKey, req.Duration)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, video)
}

type watchResponse struct {
	Video       any    `json:"video"`
	PlaybackURL string `json:"playbackUrl"`
}

func (h *VideoHandler) Watch(c *gin.Context) {
	video, playbackURL, err := h.videos.Watch(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, watchResponse{Video: video, PlaybackURL: playbackURL})
}

func (h *VideoHandler) ListPublished(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	list, err := h.videos.ListPublished(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

func (h *VideoHandler) ListMine(c *gin.Context) {
	list, err := h.videos.ListByOwner(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

type publishToggleRequest struct {
	Published *bool `json:"published" binding:"required"`
}

func (h *VideoHandler) SetPublished(c *gin.Context) {
	var req publishToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	if err := h.videos.SetPublished(c.Request.Context(), callerID(c), c.Param("id"), *req.Published); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"published": *req.Published})
}

func (h *VideoHandler) Delete(c *gin.Context) {
	if err := h.videos.Delete(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

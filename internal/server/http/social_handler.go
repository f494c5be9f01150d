package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avolkovs/vidhub/internal/logging"
	"github.com/avolkovs/vidhub/internal/server/services"
)

type SocialHandler struct {
	social *services.SocialService
	logger logging.Logger
}

func NewSocialHandler(social *services.SocialService, l logging.Logger) *SocialHandler {
	return &SocialHandler{social: social, logger: l.With("module", "social_handler")}
}

type contentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *SocialHandler) CreateTweet(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	tweet, err := h.social.CreateTweet(c.Request.Context(), callerID(c), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, tweet)
}

func (h *SocialHandler) ListTweets(c *gin.Context) {
	tweets, err := h.social.ListTweets(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, tweets)
}

func (h *SocialHandler) DeleteTweet(c *gin.Context) {
	if err := h.social.DeleteTweet(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SocialHandler) CreateComment(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	comment, err := h.social.CreateComment(c.Request.Context(), callerID(c), c.Param("id"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, comment)
}

func (h *SocialHandler) ListComments(c *gin.Context) {
	comments, err := h.social.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, comments)
}

func (h *SocialHandler) DeleteComment(c *gin.Context) {
	if err := h.social.DeleteComment(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type toggleLikeRequest struct {
	VideoID   *string `json:"videoId"`
	CommentID *string `json:"commentId"`
	TweetID   *string `json:"tweetId"`
}

func (h *SocialHandler) ToggleLike(c *gin.Context) {
	var req toggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	liked, err := h.social.ToggleLike(c.Request.Context(), callerID(c), req.VideoID, req.CommentID, req.TweetID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"liked": liked})
}

type playlistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *SocialHandler) CreatePlaylist(c *gin.Context) {
	var req playlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	playlist, err := h.social.CreatePlaylist(c.Request.Context(), callerID(c), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, playlist)
}

func (h *SocialHandler) GetPlaylist(c *gin.Context) {
	playlist, err := h.social.GetPlaylist(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, playlist)
}

func (h *SocialHandler) AddPlaylistVideo(c *gin.Context) {
	err := h.social.AddPlaylistVideo(c.Request.Context(), callerID(c), c.Param("id"), c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"added": true})
}

func (h *SocialHandler) RemovePlaylistVideo(c *gin.Context) {
	err := h.social.RemovePlaylistVideo(c.Request.Context(), callerID(c), c.Param("id"), c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"removed": true})
}

func (h *SocialHandler) DeletePlaylist(c *gin.Context) {
	if err := h.social.DeletePlaylist(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

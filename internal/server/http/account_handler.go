package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avolkovs/vidhub/internal/logging"
	"github.com/avolkovs/vidhub/internal/server/services"
)

type AccountHandler struct {
	accounts *services.AccountService
	logger   logging.Logger
}

func NewAccountHandler(accounts *services.AccountService, l logging.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, logger: l.With("module", "account_handler")}
}

type registerRequest struct {
	Username      string `json:"username" binding:"required"`
	Email         string `json:"email" binding:"required"`
	Fullname      string `json:"fullname" binding:"required"`
	Password      string `json:"password" binding:"required"`
	AvatarKey     string `json:"avatarKey" binding:"required"`
	CoverImageKey string `json:"coverImageKey"`
}

func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	account, err := h.accounts.Register(c.Request.Context(),
		req.Username, req.Email, req.Fullname, req.Password, req.AvatarKey, req.CoverImageKey)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, account)
}

func (h *AccountHandler) Get(c *gin.Context) {
	account, err := h.accounts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, account)
}

type accountDetailsRequest struct {
	Fullname string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

// UpdateDetails changes the caller's fullname and email.
func (h *AccountHandler) UpdateDetails(c *gin.Context) {
	var req accountDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	account, err := h.accounts.UpdateDetails(c.Request.Context(), callerID(c), req.Fullname, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, account)
}

type mediaUploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
}

// RequestMediaUpload hands out a presigned PUT URL for a profile image. The
// prefix selects avatars or covers.
func (h *AccountHandler) RequestMediaUpload(c *gin.Context) {
	prefix := c.Query("kind")
	if prefix != "avatars" && prefix != "covers" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	key, url, err := h.accounts.RequestMediaUpload(c.Request.Context(), prefix)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, mediaUploadResponse{Key: key, UploadURL: url})
}

type mediaKeyRequest struct {
	Key string `json:"key" binding:"required"`
}

func (h *AccountHandler) UpdateAvatar(c *gin.Context) {
	var req mediaKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	if err := h.accounts.UpdateAvatar(c.Request.Context(), callerID(c), req.Key); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"updated": true})
}

func (h *AccountHandler) UpdateCoverImage(c *gin.Context) {
	var req mediaKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	if err := h.accounts.UpdateCoverImage(c.Request.Context(), callerID(c), req.Key); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"updated": true})
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avolkovs/vidhub/internal/logging"
	"github.com/avolkovs/vidhub/internal/server/services"
)

// AuthHandler serves login, refresh, logout and password changes. Tokens
// travel both in the JSON body and as cookies so browser and API clients
// work the same way.
type AuthHandler struct {
	sessions *services.SessionService
	logger   logging.Logger
}

func NewAuthHandler(sessions *services.SessionService, l logging.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, logger: l.With("module", "auth_handler")}
}

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) setSessionCookies(c *gin.Context, pair *services.TokenPair) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AccessTokenCookie, pair.AccessToken, 0, "/", "", false, true)
	c.SetCookie(RefreshTokenCookie, pair.RefreshToken, 0, "/", "", false, true)
}

func (h *AuthHandler) clearSessionCookies(c *gin.Context) {
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", false, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", false, true)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	pair, err := h.sessions.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookies(c, pair)
	respondData(c, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh rotates the refresh token. It is taken from the cookie first and
// from the body otherwise.
func (h *AuthHandler) Refresh(c *gin.Context) {
	presented, _ := c.Cookie(RefreshTokenCookie)
	if presented == "" {
		var req refreshRequest
		_ = c.ShouldBindJSON(&req)
		presented = req.RefreshToken
	}

	pair, err := h.sessions.Refresh(c.Request.Context(), presented)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookies(c, pair)
	respondData(c, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context(), callerID(c)); err != nil {
		respondError(c, err)
		return
	}
	h.clearSessionCookies(c)
	respondData(c, http.StatusOK, gin.H{"loggedOut": true})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	err := h.sessions.ChangePassword(c.Request.Context(), callerID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"changed": true})
}

// Me returns the identity embedded in the presented access token.
func (h *AuthHandler) Me(c *gin.Context) {
	identity := callerIdentity(c)
	respondData(c, http.StatusOK, gin.H{
		"id":       identity.ID,
		"username": identity.Username,
		"email":    identity.Email,
		"fullname": identity.Fullname,
	})
}

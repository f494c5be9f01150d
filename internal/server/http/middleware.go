package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avolkovs/vidhub/internal/server/auth"
	"github.com/avolkovs/vidhub/internal/server/services"
)

const identityKey = "identity"

// AccessTokenCookie and RefreshTokenCookie are the cookie names browser
// clients use; API clients may send the access token as a Bearer header
// instead.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// accessTokenFromRequest extracts the access token from the cookie or, when
// absent, from the Authorization header.
func accessTokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}
	return token
}

// RequireAuth rejects requests without a valid access token and stores the
// verified identity for the handlers downstream.
func RequireAuth(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessTokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "missing token"})
			return
		}
		identity, err := sessions.Authenticate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuth resolves an identity when a valid token is present but lets
// anonymous requests through. Used for playback, where views count either way.
func OptionalAuth(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := accessTokenFromRequest(c); token != "" {
			if identity, err := sessions.Authenticate(token); err == nil {
				c.Set(identityKey, identity)
			}
		}
		c.Next()
	}
}

// callerIdentity returns the identity stored by RequireAuth, or nil for an
// anonymous request.
func callerIdentity(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*auth.Identity)
	return identity
}

func callerID(c *gin.Context) string {
	if identity := callerIdentity(c); identity != nil {
		return identity.ID
	}
	return ""
}

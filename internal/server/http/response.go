// Package http exposes the server over a JSON REST API (gin). Handlers
// translate between HTTP and the service layer; all business rules live in
// the services.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avolkovs/vidhub/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

type dataResponse struct {
	Data any `json:"data"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, dataResponse{Data: data})
}

// respondError maps service sentinels to HTTP statuses. Unknown errors
// surface as a generic 500 so internals never leak to the client.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, common.ErrorNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.Is(err, common.ErrorValidation):
		status, message = http.StatusBadRequest, "invalid request"
	case errors.Is(err, common.ErrorAlreadyExists):
		status, message = http.StatusConflict, "already exists"
	case errors.Is(err, common.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, common.ErrMissingToken):
		status, message = http.StatusUnauthorized, "missing token"
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		status, message = http.StatusUnauthorized, "invalid token"
	case errors.Is(err, common.ErrorUnauthorized):
		status, message = http.StatusUnauthorized, "unauthorized"
	}

	c.AbortWithStatusJSON(status, errorResponse{Error: message})
}

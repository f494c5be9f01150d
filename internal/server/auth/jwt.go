// Package auth implements the token issuer and password hashing used by the
// session lifecycle: short-lived self-contained access tokens and long-lived
// refresh tokens, signed with independent secrets (HS256).
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/avolkovs/vidhub/internal/common"
)

// AccessClaims carries the full identity needed to serve a request without
// touching storage.
type AccessClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
}

// RefreshClaims carries the account id only.
type RefreshClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// Identity is the verified subject of an access token.
type Identity struct {
	ID       string
	Username string
	Email    string
	Fullname string
}

// TokenIssuer signs and verifies both token kinds. The two secrets are
// independent so a leaked access-signing key cannot mint refresh tokens and
// vice versa.
type TokenIssuer struct {
	accessSecret    []byte
	refreshSecret   []byte
	accessValidity  time.Duration
	refreshValidity time.Duration
}

func NewTokenIssuer(accessSecret, refreshSecret []byte, accessValidity, refreshValidity time.Duration) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:    accessSecret,
		refreshSecret:   refreshSecret,
		accessValidity:  accessValidity,
		refreshValidity: refreshValidity,
	}
}

// IssueAccessToken signs {id, username, email, fullname} with the access
// secret and the short validity window.
func (i *TokenIssuer) IssueAccessToken(id, username, email, fullname string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(i.accessValidity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:   id,
		Username: username,
		Email:    email,
		Fullname: fullname,
	})
	return token.SignedString(i.accessSecret)
}

// IssueRefreshToken signs {id} only, with the refresh secret and the long
// validity window. The jti makes every issued token distinct even within the
// same second, so rotation always replaces the stored value.
func (i *TokenIssuer) IssueRefreshToken(id string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(i.refreshValidity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: id,
	})
	return token.SignedString(i.refreshSecret)
}

// VerifyAccessToken checks signature and expiry against the access secret and
// resolves the claims into an Identity. It never returns partial claims.
func (i *TokenIssuer) VerifyAccessToken(tokenString string) (*Identity, error) {
	claims := &AccessClaims{}
	if err := i.parse(tokenString, claims, i.accessSecret); err != nil {
		return nil, err
	}
	return &Identity{
		ID:       claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
		Fullname: claims.Fullname,
	}, nil
}

// VerifyRefreshToken checks signature and expiry against the refresh secret
// and returns the account id embedded in the token.
func (i *TokenIssuer) VerifyRefreshToken(tokenString string) (string, error) {
	claims := &RefreshClaims{}
	if err := i.parse(tokenString, claims, i.refreshSecret); err != nil {
		return "", err
	}
	return claims.UserID, nil
}

func (i *TokenIssuer) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.ErrTokenExpired
		}
		return common.ErrInvalidToken
	}
	if !token.Valid {
		return common.ErrInvalidToken
	}
	return nil
}

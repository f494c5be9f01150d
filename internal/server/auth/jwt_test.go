package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/avolkovs/vidhub/internal/common"
)

func newTestIssuer(accessValidity, refreshValidity time.Duration) *TokenIssuer {
	return NewTokenIssuer([]byte("access-secret"), []byte("refresh-secret"), accessValidity, refreshValidity)
}

func TestIssueAndVerifyAccessToken_Success(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer(time.Hour, 72*time.Hour)

	tok, err := issuer.IssueAccessToken("user-123", "u1", "u1@x.com", "User One")
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	identity, err := issuer.VerifyAccessToken(tok)
	if err != nil {
		t.Fatalf("VerifyAccessToken error: %v", err)
	}
	if identity.ID != "user-123" || identity.Username != "u1" || identity.Email != "u1@x.com" || identity.Fullname != "User One" {
		t.Fatalf("claims mismatch: %+v", identity)
	}
}

func TestIssueAndVerifyRefreshToken_Success(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer(time.Hour, 72*time.Hour)

	tok, err := issuer.IssueRefreshToken("user-123")
	if err != nil {
		t.Fatalf("IssueRefreshToken error: %v", err)
	}

	id, err := issuer.VerifyRefreshToken(tok)
	if err != nil {
		t.Fatalf("VerifyRefreshToken error: %v", err)
	}
	if id != "user-123" {
		t.Fatalf("user id mismatch: got %q", id)
	}
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer(-1*time.Second, 72*time.Hour)

	tok, err := issuer.IssueAccessToken("u", "u", "u@x.com", "U")
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	_, err = issuer.VerifyAccessToken(tok)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestVerify_SecretsAreIndependent(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer(time.Hour, 72*time.Hour)

	// An access token must not verify as a refresh token and vice versa.
	access, err := issuer.IssueAccessToken("u", "u", "u@x.com", "U")
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}
	if _, err := issuer.VerifyRefreshToken(access); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}

	refresh, err := issuer.IssueRefreshToken("u")
	if err != nil {
		t.Fatalf("IssueRefreshToken error: %v", err)
	}
	if _, err := issuer.VerifyAccessToken(refresh); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestVerifyAccessToken_Malformed(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer(time.Hour, 72*time.Hour)

	if _, err := issuer.VerifyAccessToken("not.a.jwt"); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

// Package services contains server-side business logic. This file implements
// SessionService, which owns the credential and session-token lifecycle:
// login, refresh rotation, logout, password changes and per-request access
// token verification.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/avolkovs/vidhub/internal/common"
	"github.com/avolkovs/vidhub/internal/logging"
	"github.com/avolkovs/vidhub/internal/server/auth"
	"github.com/avolkovs/vidhub/internal/server/config"
	"github.com/avolkovs/vidhub/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// SessionService enforces the single-active-session invariant: an account
// holds at most one valid refresh token, and every successful login or
// refresh replaces it.
type SessionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	issuer      *auth.TokenIssuer
	hasher      *auth.PasswordHasher
	logger      logging.Logger
}

// NewSessionService constructs a SessionService using repositories and server config.
func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *SessionService {
	return &SessionService{
		db:          db,
		repomanager: m,
		issuer: auth.NewTokenIssuer(
			[]byte(cfg.AccessTokenSecret), []byte(cfg.RefreshTokenSecret),
			cfg.AccessTokenValidityDuration, cfg.RefreshTokenValidityDuration,
		),
		hasher: auth.NewPasswordHasher(cfg.PasswordHashCost),
		logger: l.With("module", "session_service"),
	}
}

// NormalizeIdentifier lowercases and trims a username or email the same way
// they are stored.
func NormalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// Login verifies the password for the account matching identifier (username
// or email) and, on success, issues a fresh token pair. The new refresh token
// overwrites any stored one, which ends a session open elsewhere.
func (s *SessionService) Login(ctx context.Context, identifier string, password string) (*TokenPair, error) {
	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByIdentifier(ctx, NormalizeIdentifier(identifier))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "account lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	if !s.hasher.Check(password, account.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	pair, err := s.issuePair(account.ID, account.Username, account.Email, account.Fullname)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "error", err)
		return nil, common.ErrorInternal
	}

	if err := repo.UpdateRefreshToken(ctx, account.ID, &pair.RefreshToken); err != nil {
		s.logger.Error(ctx, "refresh token persist failed", "error", err)
		return nil, common.ErrorInternal
	}

	return pair, nil
}

// Refresh rotates the refresh token: the presented token must carry a valid
// signature, be unexpired, and match the account's stored value exactly.
// The compare-and-swap in the repository makes the read-check-write atomic,
// so of two concurrent refreshes with the same token exactly one wins; the
// loser observes the winner's new value and fails.
//
// Signature, expiry and stored-value mismatches all surface as
// common.ErrInvalidToken so a caller cannot probe which check failed.
func (s *SessionService) Refresh(ctx context.Context, presented string) (*TokenPair, error) {
	if presented == "" {
		return nil, common.ErrMissingToken
	}

	accountID, err := s.issuer.VerifyRefreshToken(presented)
	if err != nil {
		s.logger.Warn(ctx, "refresh token rejected", "reason", err.Error())
		return nil, common.ErrInvalidToken
	}

	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "refresh token for unknown account", "account_id", accountID)
			return nil, common.ErrInvalidToken
		}
		s.logger.Error(ctx, "account lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	if account.RefreshToken == nil || *account.RefreshToken != presented {
		s.logger.Warn(ctx, "refresh token does not match stored value", "account_id", accountID)
		return nil, common.ErrInvalidToken
	}

	pair, err := s.issuePair(account.ID, account.Username, account.Email, account.Fullname)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "error", err)
		return nil, common.ErrorInternal
	}

	if err := repo.CompareAndSwapRefreshToken(ctx, account.ID, presented, pair.RefreshToken); err != nil {
		if errors.Is(err, common.ErrVersionConflict) {
			// A concurrent refresh, login or logout got there first.
			s.logger.Warn(ctx, "refresh rotation lost race", "account_id", accountID)
			return nil, common.ErrInvalidToken
		}
		s.logger.Error(ctx, "refresh token rotation failed", "error", err)
		return nil, common.ErrorInternal
	}

	return pair, nil
}

// Logout clears the stored refresh token unconditionally. Already being
// logged out is not an error.
func (s *SessionService) Logout(ctx context.Context, accountID string) error {
	repo := s.repomanager.Accounts(s.db)
	if err := repo.UpdateRefreshToken(ctx, accountID, nil); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		s.logger.Error(ctx, "logout failed", "error", err)
		return common.ErrorInternal
	}
	return nil
}

// ChangePassword verifies the current password and stores a new hash. The
// active refresh token is left in place.
func (s *SessionService) ChangePassword(ctx context.Context, accountID string, current string, newPassword string) error {
	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		s.logger.Error(ctx, "account lookup failed", "error", err)
		return common.ErrorInternal
	}

	if !s.hasher.Check(current, account.PasswordHash) {
		return common.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		s.logger.Error(ctx, "password hash failed", "error", err)
		return common.ErrorInternal
	}

	if err := repo.UpdatePasswordHash(ctx, accountID, hash); err != nil {
		s.logger.Error(ctx, "password update failed", "error", err)
		return common.ErrorInternal
	}
	return nil
}

// Authenticate resolves an access token into the caller's identity. It only
// checks signature and expiry; storage is never consulted.
func (s *SessionService) Authenticate(token string) (*auth.Identity, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}
	identity, err := s.issuer.VerifyAccessToken(token)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	return identity, nil
}

func (s *SessionService) issuePair(id, username, email, fullname string) (*TokenPair, error) {
	access, err := s.issuer.IssueAccessToken(id, username, email, fullname)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issuer.IssueRefreshToken(id)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

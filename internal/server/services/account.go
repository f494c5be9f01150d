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
	"github.com/avolkovs/vidhub/internal/server/models"
	"github.com/avolkovs/vidhub/internal/server/repositories/repomanager"
)

// AccountService handles registration and profile management. Media files
// (avatar, cover image) are uploaded by the client through presigned URLs;
// the service receives the resulting storage keys.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	media       MediaStore
	logger      logging.Logger
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, store MediaStore, l logging.Logger) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		hasher:      auth.NewPasswordHasher(cfg.PasswordHashCost),
		media:       store,
		logger:      l.With("module", "account_service"),
	}
}

// Register creates an account. Username and email are lowercased and
// trimmed; the password is hashed before it reaches the repository. When the
// insert fails after the client already uploaded media, the uploaded objects
// are removed so they do not leak.
func (s *AccountService) Register(ctx context.Context, username, email, fullname, password, avatarKey, coverKey string) (*models.Account, error) {
	username = NormalizeIdentifier(username)
	email = NormalizeIdentifier(email)
	fullname = strings.TrimSpace(fullname)

	if username == "" || email == "" || fullname == "" || password == "" {
		return nil, common.ErrorValidation
	}
	if avatarKey == "" {
		return nil, common.ErrorValidation
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "password hash failed", "error", err)
		return nil, common.ErrorInternal
	}

	account := &models.Account{
		Username:     username,
		Email:        email,
		Fullname:     fullname,
		Avatar:       avatarKey,
		CoverImage:   coverKey,
		PasswordHash: hash,
	}

	repo := s.repomanager.Accounts(s.db)
	created, err := repo.Create(ctx, account)
	if err != nil {
		s.cleanupUploads(ctx, avatarKey, coverKey)
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "account create failed", "error", err)
		return nil, common.ErrorInternal
	}

	return created, nil
}

func (s *AccountService) Get(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.repomanager.Accounts(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "account lookup failed", "error", err)
		return nil, common.ErrorInternal
	}
	return account, nil
}

// UpdateDetails changes the account's fullname and email. Both fields are
// required; the email is normalized the same way Register normalizes it. The
// updated account is returned.
func (s *AccountService) UpdateDetails(ctx context.Context, id, fullname, email string) (*models.Account, error) {
	fullname = strings.TrimSpace(fullname)
	email = NormalizeIdentifier(email)
	if fullname == "" || email == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Accounts(s.db)
	if err := repo.UpdateDetails(ctx, id, fullname, email); err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.ErrorNotFound
		case errors.Is(err, common.ErrorAlreadyExists):
			return nil, common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "account details update failed", "error", err)
		return nil, common.ErrorInternal
	}

	account, err := repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "account lookup failed", "error", err)
		return nil, common.ErrorInternal
	}
	return account, nil
}

// RequestMediaUpload returns a storage key and a presigned PUT URL for a
// profile image ("avatars" or "covers").
func (s *AccountService) RequestMediaUpload(ctx context.Context, prefix string) (string, string, error) {
	key, url, err := s.media.PresignPut(ctx, prefix)
	if err != nil {
		s.logger.Error(ctx, "presign failed", "error", err)
		return "", "", common.ErrorInternal
	}
	return key, url, nil
}

// UpdateAvatar points the account at a newly uploaded avatar object and
// removes the previous one.
func (s *AccountService) UpdateAvatar(ctx context.Context, id string, key string) error {
	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		s.logger.Error(ctx, "account lookup failed", "error", err)
		return common.ErrorInternal
	}

	if err := repo.UpdateAvatar(ctx, id, key); err != nil {
		s.logger.Error(ctx, "avatar update failed", "error", err)
		return common.ErrorInternal
	}

	if account.Avatar != "" && account.Avatar != key {
		s.cleanupUploads(ctx, account.Avatar)
	}
	return nil
}

// UpdateCoverImage mirrors UpdateAvatar for the cover image.
func (s *AccountService) UpdateCoverImage(ctx context.Context, id string, key string) error {
	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		s.logger.Error(ctx, "account lookup failed", "error", err)
		return common.ErrorInternal
	}

	if err := repo.UpdateCoverImage(ctx, id, key); err != nil {
		s.logger.Error(ctx, "cover image update failed", "error", err)
		return common.ErrorInternal
	}

	if account.CoverImage != "" && account.CoverImage != key {
		s.cleanupUploads(ctx, account.CoverImage)
	}
	return nil
}

// cleanupUploads is best effort: a failed delete only logs.
func (s *AccountService) cleanupUploads(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.media.Delete(ctx, key); err != nil {
			s.logger.Warn(ctx, "media cleanup failed", "key", key, "error", err)
		}
	}
}

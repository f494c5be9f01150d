package accounts

import (
	"context"

	"github.com/avolkovs/vidhub/internal/server/models"
)

// Repository persists accounts. The refresh-token methods are deliberately
// narrow: UpdateRefreshToken overwrites unconditionally (login, logout) while
// CompareAndSwapRefreshToken only succeeds when the stored value still equals
// the expected one (rotation).
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.Account, error)
	UpdateRefreshToken(ctx context.Context, id string, token *string) error
	CompareAndSwapRefreshToken(ctx context.Context, id string, expectedOld string, newToken string) error
	UpdatePasswordHash(ctx context.Context, id string, hash string) error
	UpdateDetails(ctx context.Context, id string, fullname string, email string) error
	UpdateAvatar(ctx context.Context, id string, avatar string) error
	UpdateCoverImage(ctx context.Context, id string, coverImage string) error
	AddWatchHistory(ctx context.Context, accountID string, videoID string) error
}

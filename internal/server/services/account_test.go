package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkovs/vidhub/internal/common"
	"github.com/avolkovs/vidhub/internal/logging"
	"github.com/avolkovs/vidhub/internal/server/models"
)

func newTestAccount(t *testing.T) (*AccountService, *fakeAccountsRepo, *fakeMediaStore) {
	t.Helper()
	repo := newFakeAccountsRepo()
	store := &fakeMediaStore{}
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	svc := NewAccountService(nil, &fakeRepoManager{accounts: repo}, testConfig(), store, logger)
	return svc, repo, store
}

func TestRegister(t *testing.T) {
	svc, repo, store := newTestAccount(t)

	account, err := svc.Register(context.Background(), " Alice ", "Alice@Example.com", "Alice A.", "secret", "avatars/k1", "covers/k2")
	require.NoError(t, err)
	assert.Equal(t, "alice", account.Username)
	assert.Equal(t, "alice@example.com", account.Email)
	assert.NotEqual(t, "secret", account.PasswordHash)
	assert.Empty(t, store.deleted)

	stored, err := repo.GetByIdentifier(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "avatars/k1", stored.Avatar)
	assert.Equal(t, "covers/k2", stored.CoverImage)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestAccount(t)
	ctx := context.Background()

	cases := []struct {
		name                                                 string
		username, email, fullname, password, avatar, cover   string
	}{
		{"empty username", "", "a@b.c", "A", "pw", "avatars/k1", ""},
		{"empty email", "alice", "", "A", "pw", "avatars/k1", ""},
		{"empty fullname", "alice", "a@b.c", "  ", "pw", "avatars/k1", ""},
		{"empty password", "alice", "a@b.c", "A", "", "avatars/k1", ""},
		{"missing avatar", "alice", "a@b.c", "A", "pw", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.email, tc.fullname, tc.password, tc.avatar, tc.cover)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	repo := newFakeAccountsRepo()
	store := &fakeMediaStore{}
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	m := &fakeRepoManager{accounts: repo}
	accountSvc := NewAccountService(nil, m, testConfig(), store, logger)
	sessionSvc := NewSessionService(nil, m, testConfig(), logger)

	_, err := accountSvc.Register(context.Background(), "alice", "alice@example.com", "Alice", "secret", "avatars/k1", "")
	require.NoError(t, err)

	_, err = sessionSvc.Login(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)
}

func TestGetUnknownAccount(t *testing.T) {
	svc, _, _ := newTestAccount(t)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdateDetails(t *testing.T) {
	svc, repo, _ := newTestAccount(t)
	repo.add(&models.Account{ID: "acc1", Username: "alice", Email: "alice@example.com", Fullname: "Alice"})

	account, err := svc.UpdateDetails(context.Background(), "acc1", "  Alice B. ", "Alice.B@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", account.Fullname)
	assert.Equal(t, "alice.b@example.com", account.Email)

	stored, err := repo.GetByID(context.Background(), "acc1")
	require.NoError(t, err)
	assert.Equal(t, "alice.b@example.com", stored.Email)
}

func TestUpdateDetailsValidation(t *testing.T) {
	svc, repo, _ := newTestAccount(t)
	repo.add(&models.Account{ID: "acc1", Username: "alice", Email: "alice@example.com", Fullname: "Alice"})
	ctx := context.Background()

	_, err := svc.UpdateDetails(ctx, "acc1", "  ", "alice@example.com")
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.UpdateDetails(ctx, "acc1", "Alice", "")
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.UpdateDetails(ctx, "missing", "Alice", "alice@example.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdateDetailsDuplicateEmail(t *testing.T) {
	svc, repo, _ := newTestAccount(t)
	repo.add(&models.Account{ID: "acc1", Username: "alice", Email: "alice@example.com", Fullname: "Alice"})
	repo.add(&models.Account{ID: "acc2", Username: "bob", Email: "bob@example.com", Fullname: "Bob"})

	_, err := svc.UpdateDetails(context.Background(), "acc2", "Bob", "alice@example.com")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	stored, getErr := repo.GetByID(context.Background(), "acc2")
	require.NoError(t, getErr)
	assert.Equal(t, "bob@example.com", stored.Email)
}

func TestRequestMediaUpload(t *testing.T) {
	svc, _, store := newTestAccount(t)

	key, url, err := svc.RequestMediaUpload(context.Background(), "avatars")
	require.NoError(t, err)
	assert.Contains(t, url, key)
	assert.Len(t, store.presigns, 1)
}

func TestUpdateAvatarReplacesOldObject(t *testing.T) {
	svc, repo, store := newTestAccount(t)
	repo.add(&models.Account{ID: "acc1", Username: "alice", Avatar: "avatars/old"})

	require.NoError(t, svc.UpdateAvatar(context.Background(), "acc1", "avatars/new"))
	assert.Equal(t, []string{"avatars/old"}, store.deleted)

	err := svc.UpdateAvatar(context.Background(), "missing", "avatars/new")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdateCoverImageFirstUploadDeletesNothing(t *testing.T) {
	svc, repo, store := newTestAccount(t)
	repo.add(&models.Account{ID: "acc1", Username: "alice"})

	require.NoError(t, svc.UpdateCoverImage(context.Background(), "acc1", "covers/new"))
	assert.Empty(t, store.deleted)
}

package service

import (
	"context"
	"testing"

	"github.com/gamestash/marketplace-backend/internal/repository"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (UserService, repository.TokenRepository) {
	t.Helper()
	db := newTestDB(t)
	tokens := repository.NewTokenRepository(db)
	return NewUserService(repository.NewUserRepository(db), tokens), tokens
}

func TestRegisterAndLogin(t *testing.T) {
	svc, tokens := newUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "correct horse")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.False(t, user.IsSeller)
	require.NotEqual(t, "correct horse", user.PasswordHash)

	got, token, err := svc.Login(ctx, "alice", "correct horse")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.NotEmpty(t, token.Key)

	resolved, err := tokens.FindUserByKey(ctx, token.Key)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	require.Equal(t, user.ID, resolved.ID)

	// a second login reuses the same token
	_, again, err := svc.Login(ctx, "alice", "correct horse")
	require.NoError(t, err)
	require.Equal(t, token.Key, again.Key)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "correct horse")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other@example.com", "battery staple")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "correct horse")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice", "wrong password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody", "correct horse")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutDeletesToken(t *testing.T) {
	svc, tokens := newUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "correct horse")
	require.NoError(t, err)
	_, token, err := svc.Login(ctx, "alice", "correct horse")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.ID))

	resolved, err := tokens.FindUserByKey(ctx, token.Key)
	require.NoError(t, err)
	require.Nil(t, resolved)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "correct horse")
	require.NoError(t, err)
	wasSeller := user.IsSeller

	avatar := "https://cdn.example.com/a.png"
	updated, err := svc.UpdateProfile(ctx, user, "alice2", "alice2@example.com", &avatar)
	require.NoError(t, err)
	require.Equal(t, "alice2", updated.Username)
	require.Equal(t, "alice2@example.com", updated.Email)
	require.NotNil(t, updated.AvatarURL)
	require.Equal(t, wasSeller, updated.IsSeller)

	// taken username is rejected
	_, err = svc.Register(ctx, "bob", "bob@example.com", "battery staple")
	require.NoError(t, err)
	_, err = svc.UpdateProfile(ctx, updated, "bob", "alice2@example.com", nil)
	require.ErrorIs(t, err, ErrUsernameTaken)
}

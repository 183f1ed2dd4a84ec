// Copyright (c) 2026 Wishare. All rights reserved.

package user_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisharehq/wishare/internal/platform/apperr"
	"github.com/wisharehq/wishare/internal/user"
)

// memoryAccounts is a minimal in-memory [user.Repository].
type memoryAccounts struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*user.User
}

func newMemoryAccounts() *memoryAccounts {
	return &memoryAccounts{byID: make(map[int64]*user.User)}
}

func (r *memoryAccounts) FindByID(_ context.Context, id int64) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *memoryAccounts) FindByUsername(_ context.Context, username string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *memoryAccounts) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *memoryAccounts) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	stored := *u
	r.byID[u.ID] = &stored
	return nil
}

func (r *memoryAccounts) UpdateProfile(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[u.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	existing.About = u.About
	existing.AvatarURL = u.AvatarURL
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *memoryAccounts) UpdatePassword(_ context.Context, userID int64, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	existing.PasswordHash = newHash
	return nil
}

// memoryResetTokens is a minimal in-memory [user.ResetTokenRepository].
type memoryResetTokens struct {
	mu     sync.Mutex
	tokens map[string]int64
}

func newMemoryResetTokens() *memoryResetTokens {
	return &memoryResetTokens{tokens: make(map[string]int64)}
}

func (r *memoryResetTokens) Set(_ context.Context, token string, userID int64, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = userID
	return nil
}

func (r *memoryResetTokens) Get(_ context.Context, token string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.tokens[token]; ok {
		return id, nil
	}
	return 0, apperr.NotFound("Reset token")
}

func (r *memoryResetTokens) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}

// stubTokenProvider issues predictable tokens.
type stubTokenProvider struct{}

func (stubTokenProvider) GenerateAccessToken(userID int64, username string, _ time.Duration) (string, error) {
	return fmt.Sprintf("token-%d-%s", userID, username), nil
}

func newTestService() (*user.Service, *memoryAccounts, *memoryResetTokens) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	accounts := newMemoryAccounts()
	resetTokens := newMemoryResetTokens()
	return user.NewService(accounts, resetTokens, stubTokenProvider{}, logger), accounts, resetTokens
}

func registerTestUser(t *testing.T, service *user.Service) *user.User {
	t.Helper()
	account, err := service.Register(context.Background(), user.RegisterInput{
		Username: "mika",
		Email:    "mika@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return account
}

/*
TestService_Register verifies hashing and duplicate rejection.
*/
func TestService_Register(t *testing.T) {
	service, _, _ := newTestService()
	account := registerTestUser(t, service)

	assert.NotZero(t, account.ID)
	assert.NotEqual(t, "correct-horse", account.PasswordHash, "password must never be stored in clear")

	t.Run("duplicate_email", func(t *testing.T) {
		_, err := service.Register(context.Background(), user.RegisterInput{
			Username: "other",
			Email:    "mika@example.com",
			Password: "some-password",
		})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("duplicate_username", func(t *testing.T) {
		_, err := service.Register(context.Background(), user.RegisterInput{
			Username: "mika",
			Email:    "other@example.com",
			Password: "some-password",
		})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("weak_password", func(t *testing.T) {
		_, err := service.Register(context.Background(), user.RegisterInput{
			Username: "short",
			Email:    "short@example.com",
			Password: "abc",
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestService_Login verifies credential checks and the anti-enumeration response.
*/
func TestService_Login(t *testing.T) {
	service, _, _ := newTestService()
	registerTestUser(t, service)

	t.Run("by_username", func(t *testing.T) {
		session, err := service.Login(context.Background(), user.LoginInput{
			Login:    "mika",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, session.AccessToken)
		assert.Equal(t, "mika", session.User.Username)
	})

	t.Run("by_email", func(t *testing.T) {
		_, err := service.Login(context.Background(), user.LoginInput{
			Login:    "mika@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)
	})

	// Unknown identity and wrong password must be indistinguishable.
	t.Run("wrong_password", func(t *testing.T) {
		_, err := service.Login(context.Background(), user.LoginInput{
			Login:    "mika",
			Password: "wrong",
		})
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
		assert.Equal(t, "Invalid login credentials", apperr.As(err).Message)
	})

	t.Run("unknown_user", func(t *testing.T) {
		_, err := service.Login(context.Background(), user.LoginInput{
			Login:    "nobody",
			Password: "whatever",
		})
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
		assert.Equal(t, "Invalid login credentials", apperr.As(err).Message)
	})
}

/*
TestService_PasswordReset verifies the full forgot-password round trip and
single-use token consumption.
*/
func TestService_PasswordReset(t *testing.T) {
	service, _, _ := newTestService()
	registerTestUser(t, service)

	// Unknown email is silently accepted.
	token, err := service.RequestPasswordReset(context.Background(), "stranger@example.com")
	require.NoError(t, err)
	assert.Empty(t, token)

	token, err = service.RequestPasswordReset(context.Background(), "mika@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, service.ResetPassword(context.Background(), token, "brand-new-pass"))

	// The old password no longer works, the new one does.
	_, err = service.Login(context.Background(), user.LoginInput{Login: "mika", Password: "correct-horse"})
	require.Error(t, err)

	_, err = service.Login(context.Background(), user.LoginInput{Login: "mika", Password: "brand-new-pass"})
	require.NoError(t, err)

	// Tokens are single-use.
	err = service.ResetPassword(context.Background(), token, "another-pass")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_UpdateProfile verifies the pointer-field patch semantics.
*/
func TestService_UpdateProfile(t *testing.T) {
	service, _, _ := newTestService()
	account := registerTestUser(t, service)

	about := "Collector of mechanical keyboards"
	updated, err := service.UpdateProfile(context.Background(), account.ID, user.UpdateProfileInput{
		About: &about,
	})
	require.NoError(t, err)
	assert.Equal(t, about, updated.About)

	badAvatar := "not-a-url"
	_, err = service.UpdateProfile(context.Background(), account.ID, user.UpdateProfileInput{
		Avatar: &badAvatar,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

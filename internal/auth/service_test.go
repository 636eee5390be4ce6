// Copyright (c) 2026 Kasane. All rights reserved.

package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasanehq/kasane/internal/platform/apperr"
	"github.com/kasanehq/kasane/internal/platform/sec"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	users map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*User{}}
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("account")
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperr.NotFound("account")
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("account")
}

func (f *fakeUserRepo) Create(_ context.Context, user *User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperr.Conflict("Username or email is already registered")
		}
	}
	f.users[user.ID] = user
	return nil
}

// staticTokens issues a predictable token string.
type staticTokens struct{}

func (staticTokens) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "token-for-" + userID, nil
}

func newTestAuth(repo UserRepository) *Service {
	return NewService(repo, staticTokens{}, slog.New(slog.DiscardHandler))
}

func TestRegister_CreatesMemberAccount(t *testing.T) {
	service := newTestAuth(newFakeUserRepo())

	user, err := service.Register(context.Background(), RegisterInput{
		Username: "Reader01",
		Email:    "Reader@Example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	assert.Len(t, user.ID, 36)
	assert.Equal(t, "reader01", user.Username, "usernames are stored lowercase")
	assert.Equal(t, "reader@example.com", user.Email)
	assert.Equal(t, sec.RoleMember, user.Role, "new accounts always start as members")
	assert.NotEqual(t, "correct-horse-battery", user.PasswordHash)
}

func TestRegister_RejectsWeakInput(t *testing.T) {
	service := newTestAuth(newFakeUserRepo())

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"short_password", RegisterInput{Username: "reader", Email: "r@example.com", Password: "short"}},
		{"bad_email", RegisterInput{Username: "reader", Email: "not-an-email", Password: "long-enough-pass"}},
		{"bad_username", RegisterInput{Username: "has spaces", Email: "r@example.com", Password: "long-enough-pass"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(context.Background(), tt.input)
			require.Error(t, err)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestLogin_IssuesTokenForValidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestAuth(repo)

	user, err := service.Register(context.Background(), RegisterInput{
		Username: "reader",
		Email:    "reader@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	// Login by username.
	result, err := service.Login(context.Background(), LoginInput{Login: "reader", Password: "correct-horse-battery"})
	require.NoError(t, err)
	assert.Equal(t, "token-for-"+user.ID, result.AccessToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Positive(t, result.ExpiresIn)

	// Login by email resolves the same account.
	result, err = service.Login(context.Background(), LoginInput{Login: "reader@example.com", Password: "correct-horse-battery"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
}

func TestLogin_UniformUnauthorizedOnFailure(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestAuth(repo)

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "reader",
		Email:    "reader@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	// Wrong password and unknown account must be indistinguishable.
	_, wrongPass := service.Login(context.Background(), LoginInput{Login: "reader", Password: "wrong"})
	_, unknown := service.Login(context.Background(), LoginInput{Login: "ghost", Password: "wrong"})

	for _, err := range []error{wrongPass, unknown} {
		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
		assert.Equal(t, "Invalid credentials", appErr.Message)
	}
}

// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package auth_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehoangduc/mangamirror/internal/auth"
	"github.com/lehoangduc/mangamirror/internal/platform/apperr"
	"github.com/lehoangduc/mangamirror/internal/platform/sec"
)

// fakeUserRepository is an in-memory UserRepository for service tests.
type fakeUserRepository struct {
	users     map[string]*auth.User // keyed by username
	createErr error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*auth.User)}
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.users[user.Username]; exists {
		return apperr.Conflict("Username or email is already registered")
	}
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

// fakeTokenProvider returns a canned token.
type fakeTokenProvider struct {
	token string
	err   error
}

func (f *fakeTokenProvider) GenerateAccessToken(string, string) (string, error) {
	return f.token, f.err
}

/*
TestService_Register verifies that registration hashes the password and
persists a trimmed user.
*/
func TestService_Register(t *testing.T) {
	repo := newFakeUserRepository()
	service := auth.NewService(repo, &fakeTokenProvider{token: "tok"})

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "  reader  ",
		Email:    " reader@example.com ",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "reader", user.Username)
	assert.Equal(t, "reader@example.com", user.Email)

	// Stored hash must verify against the original password, never equal it.
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("correct-horse", user.PasswordHash))
}

/*
TestService_Register_Duplicate verifies the conflict from the storage layer
passes through unchanged.
*/
func TestService_Register_Duplicate(t *testing.T) {
	repo := newFakeUserRepository()
	service := auth.NewService(repo, &fakeTokenProvider{token: "tok"})

	input := auth.RegisterInput{Username: "reader", Email: "reader@example.com", Password: "password123"}

	_, err := service.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), input)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
}

/*
TestService_Login verifies credential checking and token issuance.
*/
func TestService_Login(t *testing.T) {
	repo := newFakeUserRepository()
	service := auth.NewService(repo, &fakeTokenProvider{token: "session-token"})

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "reader",
		Email:    "reader@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Username: "reader",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, "session-token", session.Token)
	assert.Equal(t, "reader", session.User.Username)
}

/*
TestService_Login_Failures verifies that unknown users and wrong passwords
yield the same generic unauthorized error.
*/
func TestService_Login_Failures(t *testing.T) {
	repo := newFakeUserRepository()
	service := auth.NewService(repo, &fakeTokenProvider{token: "tok"})

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "reader",
		Email:    "reader@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown_user", "nobody", "password123"},
		{"wrong_password", "reader", "wrong-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := service.Login(context.Background(), auth.LoginInput{
				Username: tt.username,
				Password: tt.password,
			})
			assert.Nil(t, session)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
			assert.Equal(t, "Invalid username or password", ae.Message)
		})
	}
}

// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

/*
Package auth implements account registration, login, and the session token
lifecycle.

Architecture:

  - Service: Orchestrates business logic (Register, Login, CurrentUser).
  - Repository: Abstracted storage interface backed by Postgres.
  - Security: bcrypt password hashing and HS256-signed JWTs via platform/sec.

Sessions are stateless: the signed token is the only session artifact, so
logout is purely a client-side concern.
*/
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/lehoangduc/mangamirror/internal/platform/apperr"
	"github.com/lehoangduc/mangamirror/internal/platform/sec"
	"github.com/lehoangduc/mangamirror/pkg/uuid"
)

// TokenProvider defines the contract for generating session tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	GenerateAccessToken(userID, username string) (string, error)
}

// Service implements user authentication use cases.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register validates, hashes, and persists a brand new user account.
//
// A duplicate username or email returns a client-safe Conflict error; the
// database unique constraints enforce this atomically.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hashedPassword,
	}

	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	Token string
	User  *User
}

// Login validates user credentials and issues a signed session token.
//
// Every failure path returns the same generic Unauthorized message so
// nothing leaks about whether the username exists.
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.userRepository.FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	// bcrypt compares in constant time to prevent timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	token, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginSession{Token: token, User: user}, nil
}

// CurrentUser returns the profile of the authenticated user.
func (service *Service) CurrentUser(ctx context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(ctx, userID)
}

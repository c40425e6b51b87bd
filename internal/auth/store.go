// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package auth

import "context"

// UserRepository is the storage contract for accounts.
type UserRepository interface {
	// Create persists a new user. A duplicate username or email surfaces as
	// a CONFLICT application error.
	Create(ctx context.Context, user *User) error

	// FindByUsername returns the user with the given username, or NOT_FOUND.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByID returns the user with the given ID, or NOT_FOUND.
	FindByID(ctx context.Context, id string) (*User, error)
}

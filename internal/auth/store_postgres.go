// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lehoangduc/mangamirror/internal/platform/apperr"
	"github.com/lehoangduc/mangamirror/internal/platform/dberr"
)

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates the PostgreSQL implementation of [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Create persists a new user record.
//
// The unique constraints on username and email are the single source of
// truth for duplicates; a violation maps to CONFLICT so registration races
// cannot slip through a pre-check.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Username or email is already registered")
		}
		return dberr.Wrap(err, "create_user")
	}

	return nil
}

// FindByUsername retrieves a user record by their unique username.
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	const query = `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE username = $1`

	return repository.scanOne(repository.pool.QueryRow(ctx, query, username))
}

// FindByID retrieves a user record by primary key.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	const query = `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE id = $1`

	return repository.scanOne(repository.pool.QueryRow(ctx, query, id))
}

func (repository *PostgresUserRepository) scanOne(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "find_user")
	}
	return user, nil
}

// Copyright (c) 2026 Kasane. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasanehq/kasane/internal/platform/apperr"
	"github.com/kasanehq/kasane/internal/platform/database/schema"
	"github.com/kasanehq/kasane/internal/platform/dberr"
)

// # PostgreSQL Repository

// userRepository implements the [UserRepository] interface using pgx.
type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a PostgreSQL backed user store.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

// userColumns is the shared projection for account lookups.
func userColumns() string {
	return strings.Join(schema.UserAccount.Columns(), ", ")
}

// scanUser maps one projected row into the domain entity.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.DisplayName,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)
	return user, err
}

/*
FindByID returns the account with the given primary key.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *User: The hydrated account entity
  - error: apperr.NotFound if absent or soft-deleted
*/
func (repository *userRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL",
		userColumns(), schema.UserAccount.Table, schema.UserAccount.ID, schema.UserAccount.DeletedAt)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("account")
		}
		return nil, fmt.Errorf("postgres: failed to find account by id: %w", err)
	}

	return user, nil
}

/*
FindByUsername returns the account with the given username.

Description: Usernames are stored lowercase; the lookup folds case so logins
are case-insensitive.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: The hydrated account entity
  - error: apperr.NotFound if the username is unclaimed
*/
func (repository *userRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = LOWER($1) AND %s IS NULL",
		userColumns(), schema.UserAccount.Table, schema.UserAccount.Username, schema.UserAccount.DeletedAt)

	user, err := scanUser(repository.pool.QueryRow(context, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("account")
		}
		return nil, fmt.Errorf("postgres: failed to find account by username: %w", err)
	}

	return user, nil
}

/*
FindByEmail returns the account registered under the given email.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: The hydrated account entity
  - error: apperr.NotFound if no account uses this email
*/
func (repository *userRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = LOWER($1) AND %s IS NULL",
		userColumns(), schema.UserAccount.Table, schema.UserAccount.Email, schema.UserAccount.DeletedAt)

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("account")
		}
		return nil, fmt.Errorf("postgres: failed to find account by email: %w", err)
	}

	return user, nil
}

/*
Create persists a brand-new account.

Parameters:
  - context: context.Context
  - user: *User (Entity with ID, hash, and role already set)

Returns:
  - error: apperr.Conflict when username or email is taken
*/
func (repository *userRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, LOWER($2), LOWER($3), $4, $5, $6)
	`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.Password, schema.UserAccount.Role, schema.UserAccount.DisplayName,
	)

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.DisplayName,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Username or email is already registered")
		}
		return fmt.Errorf("postgres: failed to create account: %w", err)
	}

	return nil
}

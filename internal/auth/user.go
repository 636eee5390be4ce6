// Copyright (c) 2026 Kasane. All rights reserved.

/*
Package auth implements account identity for the Kasane platform.

It owns the [User] entity, credential verification (bcrypt), and access
token issuance. Authorization decisions (role checks on routes) live in the
middleware package; this package only establishes who the caller is.
*/
package auth

import (
	"time"

	"github.com/kasanehq/kasane/internal/platform/sec"
)

// User represents a registered account.
//
// # Rules
//   - Username is unique and URL-safe.
//   - Email is unique and validated.
//   - PasswordHash is generated via bcrypt exclusively by the [Service].
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	DisplayName  string       `json:"display_name,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	DeletedAt    *time.Time   `json:"-"`
}

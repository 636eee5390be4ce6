// Copyright (c) 2026 Kasane. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kasanehq/kasane/internal/platform/apperr"
	"github.com/kasanehq/kasane/internal/platform/constants"
	"github.com/kasanehq/kasane/internal/platform/sec"
	"github.com/kasanehq/kasane/internal/platform/validate"
	"github.com/kasanehq/kasane/pkg/uuid"
)

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// # Service Layer

// Service implements account authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing or login
// logic must be reviewed carefully.
type Service struct {
	userRepo UserRepository
	tokens   TokenProvider
	logger   *slog.Logger
}

// NewService constructs a new auth [Service] with its dependencies.
func NewService(userRepo UserRepository, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

/*
Register validates, hashes, and persists a brand new account.

Description: New accounts always start as members; uploader and admin roles
are granted out-of-band. Passwords are bcrypt-hashed before anything touches
storage.

Parameters:
  - context: context.Context
  - input: RegisterInput (User-provided registration details)

Returns:
  - *User: The newly created account
  - error: Validation errors, or apperr.Conflict on a taken username/email
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Credential shape validation
	validator := &validate.Validator{}
	validator.Required("username", input.Username).MinLen("username", input.Username, 3).MaxLen("username", input.Username, 32)
	validator.Slug("username", strings.ToLower(input.Username))
	validator.Required("email", input.Email).Email("email", input.Email)
	validator.Required("password", input.Password).MinLen("password", input.Password, 8).MaxLen("password", input.Password, 72)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Prevent storing plain-text passwords.
	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(), // Time-sortable ID to prevent PG index fragmentation.
		Username:     strings.ToLower(input.Username),
		Email:        strings.ToLower(input.Email),
		PasswordHash: hash,
		DisplayName:  input.DisplayName,
		Role:         sec.RoleMember, // Rule: default role is always member.
	}

	if err := service.userRepo.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("account_registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Username or email.
	Password string
}

// LoginResult carries the issued token and the authenticated account.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"` // Seconds until expiry.
	User        *User  `json:"user"`
}

/*
Login authenticates credentials and issues an RS256 access token.

Description: Accepts username or email as the login. Failed lookups and
failed password checks both report the same Unauthorized error so the
response does not reveal which accounts exist.

Parameters:
  - context: context.Context
  - input: LoginInput (Login and password)

Returns:
  - *LoginResult: Signed token plus account data
  - error: apperr.Unauthorized on any credential failure
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {

	// Lookup strategy: emails carry "@", usernames never do.
	var user *User
	var err error
	if strings.Contains(input.Login, "@") {
		user, err = service.userRepo.FindByEmail(context, input.Login)
	} else {
		user, err = service.userRepo.FindByUsername(context, input.Login)
	}

	// Uniform failure path; do not leak account existence.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		service.logger.Warn("login_failed", slog.String("user_id", user.ID))
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	token, err := service.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_token_issue_failed: %w", err)
	}

	service.logger.Info("login_succeeded",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return &LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(constants.AccessTokenTTL.Seconds()),
		User:        user,
	}, nil
}

/*
Me resolves the authenticated account from its token subject.

Parameters:
  - context: context.Context
  - userID: string (UUID from the verified token)

Returns:
  - *User: The current account
  - error: apperr.NotFound if the account was deleted after token issuance
*/
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.userRepo.FindByID(context, userID)
}

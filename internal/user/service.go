// Copyright (c) 2026 Wishare. All rights reserved.

package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wisharehq/wishare/internal/platform/apperr"
	"github.com/wisharehq/wishare/internal/platform/sec"
	"github.com/wisharehq/wishare/internal/platform/validate"
)

// TokenProvider defines the contract for generating signed access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID int64, username string, timeToLive time.Duration) (string, error)
}

// Service implements identity use cases.
//
// Any change to hashing, registration, or login logic is security-sensitive.
type Service struct {
	accounts      Repository
	resetTokens   ResetTokenRepository
	tokenProvider TokenProvider
	logger        *slog.Logger
}

// NewService constructs a new identity [Service] with its dependencies.
func NewService(accounts Repository, resetTokens ResetTokenRepository, tokenProvider TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		accounts:      accounts,
		resetTokens:   resetTokens,
		tokenProvider: tokenProvider,
		logger:        logger,
	}
}

// # Registration

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	About    string
	Avatar   string
}

// Register validates, hashes, and persists a brand-new account.
//
// Returns Conflict if the username or email is already taken.
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).MinLen(FieldUsername, input.Username, 2).MaxLen(FieldUsername, input.Username, 30)
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password).MinLen(FieldPassword, input.Password, 8)
	if input.Avatar != "" {
		validator.URL(FieldAvatar, input.Avatar)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Uniqueness pre-checks return client-safe conflicts; the database unique
	// constraints remain the source of truth under concurrency.
	if _, err := service.accounts.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}
	if _, err := service.accounts.FindByUsername(context, input.Username); err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("user_service_hash_failed: %w", err)
	}

	account := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		About:        input.About,
		AvatarURL:    input.Avatar,
	}

	if err := service.accounts.Create(context, account); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered", slog.Int64("user_id", account.ID))
	return account, nil
}

// # Authentication

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Username or email.
	Password string
}

// LoginSession represents a successfully established login.
type LoginSession struct {
	AccessToken string
	ExpiresIn   time.Duration
	User        *User
}

// Login validates credentials and issues a signed access token.
//
// Both unknown-identity and wrong-password failures return the same generic
// Unauthorized message to prevent account enumeration.
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	account, err := service.accounts.FindByEmail(context, input.Login)
	if err != nil {
		account, err = service.accounts.FindByUsername(context, input.Login)
	}
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(account.ID, account.Username, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("user_service_token_generation_failed: %w", err)
	}

	service.logger.Info("user_logged_in", slog.Int64("user_id", account.ID))

	return &LoginSession{
		AccessToken: accessToken,
		ExpiresIn:   AccessTokenTTL,
		User:        account,
	}, nil
}

// # Profiles

// GetByID returns the full account record for the given ID.
func (service *Service) GetByID(context context.Context, id int64) (*User, error) {
	return service.accounts.FindByID(context, id)
}

// GetProfile returns the public projection of the account with the given username.
func (service *Service) GetProfile(context context.Context, username string) (*Profile, error) {
	account, err := service.accounts.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}
	return account.Profile(), nil
}

// UpdateProfileInput carries the optional profile patch fields.
type UpdateProfileInput struct {
	About  *string
	Avatar *string
}

// UpdateProfile applies a partial update to the caller's own profile.
func (service *Service) UpdateProfile(context context.Context, userID int64, input UpdateProfileInput) (*User, error) {
	account, err := service.accounts.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.About != nil {
		account.About = *input.About
	}
	if input.Avatar != nil {
		validator := &validate.Validator{}
		if *input.Avatar != "" {
			validator.URL(FieldAvatar, *input.Avatar)
		}
		if err := validator.Err(); err != nil {
			return nil, err
		}
		account.AvatarURL = *input.Avatar
	}

	if err := service.accounts.UpdateProfile(context, account); err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", slog.Int64("user_id", userID))
	return account, nil
}

// # Password Recovery

// RequestPasswordReset initiates the forgot-password flow.
//
// The returned token would normally be delivered by email; it is never
// revealed in the HTTP response. An unknown email is NOT an error, to
// prevent account enumeration.
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	account, err := service.accounts.FindByEmail(context, email)
	if err != nil {
		return "", nil
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("user_service_generate_reset_token_failed: %w", err)
	}

	// Only the digest is stored; a leaked token store is not a credential store.
	if err := service.resetTokens.Set(context, sec.HashToken(token), account.ID, ResetTokenTTL); err != nil {
		return "", fmt.Errorf("user_service_save_reset_token_failed: %w", err)
	}

	return token, nil
}

// ResetPassword completes the forgot-password flow.
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	validator := &validate.Validator{}
	validator.Required(FieldPassword, newPassword).MinLen(FieldPassword, newPassword, 8)
	if err := validator.Err(); err != nil {
		return err
	}

	userID, err := service.resetTokens.Get(context, sec.HashToken(token))
	if err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("user_service_reset_password_hash_failed: %w", err)
	}

	if err := service.accounts.UpdatePassword(context, userID, hashedPassword); err != nil {
		return err
	}

	// Consumed tokens are single-use.
	_ = service.resetTokens.Delete(context, sec.HashToken(token))

	service.logger.Warn("user_password_reset", slog.Int64("user_id", userID))
	return nil
}

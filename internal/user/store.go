// Copyright (c) 2026 Wishare. All rights reserved.

package user

import (
	"context"
	"time"
)

// # Account Data Access

// Repository defines the data access contract for user accounts.
type Repository interface {
	// FindByID returns the account with the given ID.
	FindByID(context context.Context, id int64) (*User, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(context context.Context, username string) (*User, error)

	// FindByEmail returns the account with the given email.
	FindByEmail(context context.Context, email string) (*User, error)

	// Create persists a brand-new account and fills in its store-assigned
	// ID and timestamps.
	Create(context context.Context, user *User) error

	// UpdateProfile persists changes to the mutable profile fields
	// (about, avatar) and refreshes UpdatedAt.
	UpdateProfile(context context.Context, user *User) error

	// UpdatePassword replaces only the account's password hash.
	UpdatePassword(context context.Context, userID int64, newHash string) error
}

// # Volatile Data Access

// ResetTokenRepository defines the contract for storing volatile password
// reset tokens.
type ResetTokenRepository interface {
	// Set stores a reset token mapped to a user ID with the given TTL.
	Set(context context.Context, token string, userID int64, ttl time.Duration) error

	// Get returns the user ID a token maps to, or NotFound if absent/expired.
	Get(context context.Context, token string) (int64, error)

	// Delete removes a consumed token.
	Delete(context context.Context, token string) error
}

// Copyright (c) 2026 Wishare. All rights reserved.

/*
Package user implements the identity layer of the Wishare platform.

It handles account registration with secure password hashing, JWT login, the
password-reset flow (volatile tokens in Redis), and the public profile
projection that other domains embed (a wish's owner, an offer's contributor).

# Architecture

  - Service: Orchestrates business logic (Register, Login, profile updates).
  - Repository: Abstracted interfaces for Postgres (accounts) and Redis (reset tokens).
  - Security: Bcrypt password hashing and RSA-signed JWTs via the sec package.
*/
package user

import "time"

// # Domain Entities

// User represents a registered member of the Wishare platform.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	About        string    `json:"about,omitempty"`
	AvatarURL    string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the public, JSON-safe projection of a user.
//
// It is what other domains embed when they expose a user reference
// (wish owners, offer contributors). Email never appears here.
type Profile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	About     string    `json:"about,omitempty"`
	AvatarURL string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile converts a full account record into its public projection.
func (u *User) Profile() *Profile {
	return &Profile{
		ID:        u.ID,
		Username:  u.Username,
		About:     u.About,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

// # Field Identifiers

// Global field names for validation in the identity domain.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldAbout    = "about"
	FieldAvatar   = "avatar"
	FieldLogin    = "login"
	FieldToken    = "token"
)

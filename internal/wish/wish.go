// Copyright (c) 2026 Wishare. All rights reserved.

/*
Package wish manages the wishlist entries at the heart of the Wishare platform.

A wish is a gift idea with a funding target: friends discover it through the
public feeds and chip in toward its price via the offers subsystem. Wishes can
also be copied into the viewer's own list, which drives the popularity feed.

# Core Responsibility

  - Lifecycle: Create, read, update, and delete wish records.
  - Ownership: Only the owner may modify or delete a wish.
  - Popularity: Tracks how often a wish has been copied by other users.
  - Funding: Exposes the raised-amount hook consumed by the offers subsystem.

Monetary values are carried as int64 minor currency units throughout.
*/
package wish

import (
	"time"

	"github.com/wisharehq/wishare/internal/platform/apperr"
	"github.com/wisharehq/wishare/internal/user"
)

// # Business Rule Errors

var (
	// ErrNotFound is returned when the requested wish does not exist.
	ErrNotFound = apperr.NotFound("Wish")

	// ErrNotOwner is returned when a caller tries to modify a wish they do not own.
	ErrNotOwner = apperr.Forbidden("You can only change your own wishes")

	// ErrPriceLocked is returned when a price change is attempted on a wish
	// that already has contributions. The target is frozen the moment money
	// arrives so contributors know what they funded.
	ErrPriceLocked = apperr.Conflict("Cannot change price: this wish already has contributions")
)

// # Core Entities

// Wish represents a single wishlist entry with a funding target.
type Wish struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Link        string    `json:"link,omitempty"`
	Image       string    `json:"image,omitempty"`
	Price       int64     `json:"price"`  // Funding target, minor currency units.
	Raised      int64     `json:"raised"` // Cumulative contributions, set only via SetRaised.
	Copied      int       `json:"copied"` // Times duplicated by other users.
	OwnerID     int64     `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Owner is the public profile of the creating user. Populated on the
	// relation-expanded read paths; nil on lightweight batch lookups.
	Owner *user.Profile `json:"owner,omitempty"`

	// Offers are the contributions recorded against this wish. They are
	// owned by the offers subsystem and read-only here.
	Offers []*Offer `json:"offers"`
}

// Offer is the read-only projection of a contribution embedded in a wish.
//
// The full entity lives in the offers subsystem; this view exists so a wish
// can be rendered with its funding history in one response.
type Offer struct {
	ID        int64         `json:"id"`
	Amount    int64         `json:"amount"`
	Hidden    bool          `json:"hidden"`
	User      *user.Profile `json:"user,omitempty"` // Omitted when the contributor chose to stay hidden.
	CreatedAt time.Time     `json:"created_at"`
}

// # Operation Inputs

// CreateInput carries the caller-supplied fields for a new wish.
//
// It doubles as the explicit allow-list of copyable fields: the copy
// operation rebuilds one of these from the source record, so identity and
// derived fields (id, timestamps, raised, copied, owner, offers) can never
// leak into a duplicate.
type CreateInput struct {
	Title       string
	Description string
	Link        string
	Image       string
	Price       int64
}

// UpdateInput carries the optional patch fields for a partial update.
// Nil fields are left untouched.
type UpdateInput struct {
	Title       *string
	Description *string
	Link        *string
	Image       *string
	Price       *int64
}

// # Field Identifiers

// Global field names for validation.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldLink        = "link"
	FieldImage       = "image"
	FieldPrice       = "price"
	FieldRaised      = "raised"
)

// Field length limits.
const (
	MaxTitleLen       = 250
	MaxDescriptionLen = 1024
)

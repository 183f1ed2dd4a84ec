// Copyright (c) 2026 Wishare. All rights reserved.

// Package offer manages contributions toward wish funding targets.
//
// Every accepted offer moves the target wish's raised amount forward through
// the wish service's funding hook — offers never write wish rows directly.
package offer

import (
	"time"

	"github.com/wisharehq/wishare/internal/platform/apperr"
	"github.com/wisharehq/wishare/internal/user"
)

var (
	// ErrNotFound is returned when the requested offer does not exist.
	ErrNotFound = apperr.NotFound("Offer")

	// ErrOwnWish is returned when a user tries to contribute to their own wish.
	ErrOwnWish = apperr.Conflict("You cannot make an offer on your own wish")

	// ErrOverfunded is returned when an amount would push a wish past its
	// funding target.
	ErrOverfunded = apperr.Conflict("Offer exceeds the remaining amount for this wish")
)

// Offer represents a single contribution toward a wish.
type Offer struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	UserID    int64     `json:"-"`
	Amount    int64     `json:"amount"` // Minor currency units.
	Hidden    bool      `json:"hidden"` // Contributor chose to stay anonymous.
	CreatedAt time.Time `json:"created_at"`

	// User is the contributor's public profile; omitted when Hidden.
	User *user.Profile `json:"user,omitempty"`
}

// CreateInput carries the caller-supplied fields for a new offer.
type CreateInput struct {
	ItemID int64
	Amount int64
	Hidden bool
}

// Global field names for validation.
const (
	FieldItemID = "item_id"
	FieldAmount = "amount"
)

// Copyright (c) 2026 Wishare. All rights reserved.

package offer

import "context"

// Repository defines the data access contract for offer records.
type Repository interface {
	// FindByID retrieves one offer with its contributor profile attached.
	// Returns ErrNotFound if missing.
	FindByID(context context.Context, id int64) (*Offer, error)

	// FindAll returns one page of offers, newest first, along with the total
	// record count for pagination metadata.
	FindAll(context context.Context, limit, offset int) ([]*Offer, int, error)

	// Create persists a new offer and fills in its store-assigned fields.
	Create(context context.Context, offer *Offer) error
}

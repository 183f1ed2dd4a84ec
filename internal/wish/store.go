// Copyright (c) 2026 Wishare. All rights reserved.

package wish

import "context"

// # Wish Data Access

// Repository defines the data access contract for wish records.
//
// Two implementations exist: the Postgres-backed [PostgresRepository] used in
// production and the [MemoryRepository] used to exercise transactional
// semantics in tests.
type Repository interface {

	/*
		FindByID retrieves one wish with its owner profile and offers expanded.

		Parameters:
		  - context: context.Context
		  - id: int64 record ID

		Returns:
		  - *Wish: Hydrated entity with Owner and Offers populated
		  - error: ErrNotFound if missing, or retrieval failures
	*/
	FindByID(context context.Context, id int64) (*Wish, error)

	/*
		FindLatest returns up to limit wishes ordered by creation time descending,
		each with owner and offers expanded.

		Parameters:
		  - context: context.Context
		  - limit: int result cap

		Returns:
		  - []*Wish: Possibly empty slice, never nil
		  - error: Retrieval failures
	*/
	FindLatest(context context.Context, limit int) ([]*Wish, error)

	/*
		FindTop returns up to limit wishes ordered by copy count descending,
		each with owner and offers expanded.

		Parameters:
		  - context: context.Context
		  - limit: int result cap

		Returns:
		  - []*Wish: Possibly empty slice, never nil
		  - error: Retrieval failures
	*/
	FindTop(context context.Context, limit int) ([]*Wish, error)

	/*
		FindManyByIDs returns the bare records matching the given IDs.

		Description: Lightweight batch path — no owner or offers expansion.
		Missing IDs are silently skipped; order is unspecified.

		Parameters:
		  - context: context.Context
		  - ids: []int64 (non-empty; the service short-circuits empty input)

		Returns:
		  - []*Wish: Matching records
		  - error: Retrieval failures
	*/
	FindManyByIDs(context context.Context, ids []int64) ([]*Wish, error)

	/*
		Create persists a new wish and fills in its store-assigned ID and
		timestamps. Raised and Copied always start at zero.

		Parameters:
		  - context: context.Context
		  - wish: *Wish (Title/Description/Link/Image/Price/OwnerID set)

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, wish *Wish) error

	/*
		UpdatePartial applies the non-nil fields of patch to the record.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - patch: UpdateInput (nil fields untouched)

		Returns:
		  - error: ErrNotFound if the record is gone, or persistence failures
	*/
	UpdatePartial(context context.Context, id int64, patch UpdateInput) error

	/*
		SetRaised unconditionally sets the cumulative raised amount.

		Description: Absolute set, not an increment. The offers subsystem is
		responsible for computing the correct cumulative value.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - amount: int64 minor currency units

		Returns:
		  - error: ErrNotFound if the record is gone, or persistence failures
	*/
	SetRaised(context context.Context, id int64, amount int64) error

	/*
		Delete permanently removes the record.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - error: ErrNotFound if the record is gone, or persistence failures
	*/
	Delete(context context.Context, id int64) error

	/*
		Copy atomically duplicates a wish for a new owner.

		Description: Within one store transaction: re-reads the source row,
		increments its copy counter, creates a brand-new record owned by
		newOwnerID carrying only the copyable fields (fresh record starts with
		raised = 0, copied = 0), and re-reads the new record with relations
		expanded. Any failure rolls the whole unit back — the counter increment
		and the new record either both happen or neither does.

		Parameters:
		  - context: context.Context
		  - sourceID: int64 the wish being duplicated
		  - newOwnerID: int64 the acting user

		Returns:
		  - *Wish: The newly created duplicate, with Owner and Offers expanded
		  - error: ErrNotFound if the source vanished, or persistence failures
	*/
	Copy(context context.Context, sourceID int64, newOwnerID int64) (*Wish, error)
}

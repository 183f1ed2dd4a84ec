// Copyright (c) 2026 Wishare. All rights reserved.

package wish

import (
	"context"
	"log/slog"

	"github.com/wisharehq/wishare/internal/platform/constants"
	"github.com/wisharehq/wishare/internal/platform/validate"
)

// Service implements the wish use cases: lifecycle, feeds, copying, and the
// raised-amount hook consumed by the offers subsystem.
type Service struct {
	wishes Repository
	logger *slog.Logger
}

// NewService constructs a wish [Service] with its dependencies.
func NewService(wishes Repository, logger *slog.Logger) *Service {
	return &Service{
		wishes: wishes,
		logger: logger,
	}
}

// # Lifecycle

// Create validates and persists a new wish owned by ownerID.
func (service *Service) Create(context context.Context, input CreateInput, ownerID int64) (*Wish, error) {
	if err := validateFields(input.Title, input.Description, input.Link, input.Image, input.Price); err != nil {
		return nil, err
	}

	wish := &Wish{
		Title:       input.Title,
		Description: input.Description,
		Link:        input.Link,
		Image:       input.Image,
		Price:       input.Price,
		OwnerID:     ownerID,
	}

	if err := service.wishes.Create(context, wish); err != nil {
		return nil, err
	}

	service.logger.Info("wish_created",
		slog.Int64("wish_id", wish.ID),
		slog.Int64("owner_id", ownerID),
	)

	// Re-read so the caller gets the owner profile expanded.
	return service.wishes.FindByID(context, wish.ID)
}

// FindByID retrieves one wish with owner and offers expanded.
func (service *Service) FindByID(context context.Context, id int64) (*Wish, error) {
	return service.wishes.FindByID(context, id)
}

// Update applies a partial patch to a wish on behalf of requestingUserID.
//
// Returns ErrNotOwner when the caller does not own the wish, and
// ErrPriceLocked when a price change is attempted after contributions have
// been recorded.
func (service *Service) Update(context context.Context, wishID int64, patch UpdateInput, requestingUserID int64) (*Wish, error) {
	current, err := service.wishes.FindByID(context, wishID)
	if err != nil {
		return nil, err
	}
	if current.OwnerID != requestingUserID {
		return nil, ErrNotOwner
	}
	if patch.Price != nil && current.Raised > 0 {
		return nil, ErrPriceLocked
	}

	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	if err := service.wishes.UpdatePartial(context, wishID, patch); err != nil {
		return nil, err
	}

	service.logger.Info("wish_updated",
		slog.Int64("wish_id", wishID),
		slog.Int64("user_id", requestingUserID),
	)

	return service.wishes.FindByID(context, wishID)
}

// Remove deletes a wish on behalf of requestingUserID and returns the
// last-known-good snapshot.
func (service *Service) Remove(context context.Context, wishID int64, requestingUserID int64) (*Wish, error) {
	current, err := service.wishes.FindByID(context, wishID)
	if err != nil {
		return nil, err
	}
	if current.OwnerID != requestingUserID {
		return nil, ErrNotOwner
	}

	if err := service.wishes.Delete(context, wishID); err != nil {
		return nil, err
	}

	service.logger.Info("wish_removed",
		slog.Int64("wish_id", wishID),
		slog.Int64("user_id", requestingUserID),
	)

	return current, nil
}

// # Feeds

// FindLatest returns the newest wishes for the discovery feed.
func (service *Service) FindLatest(context context.Context) ([]*Wish, error) {
	return service.wishes.FindLatest(context, constants.LatestWishesLimit)
}

// FindTop returns the most-copied wishes for the popularity feed.
func (service *Service) FindTop(context context.Context) ([]*Wish, error) {
	return service.wishes.FindTop(context, constants.TopWishesLimit)
}

// FindManyByIDs returns the bare records matching ids.
//
// An empty input yields an empty slice without touching the store.
func (service *Service) FindManyByIDs(context context.Context, ids []int64) ([]*Wish, error) {
	if len(ids) == 0 {
		return []*Wish{}, nil
	}
	return service.wishes.FindManyByIDs(context, ids)
}

// # Copying

// Copy duplicates wishID into the list of requestingUserID.
//
// The duplicate carries only the copyable fields and starts unfunded; the
// source's copy counter is bumped in the same atomic unit.
func (service *Service) Copy(context context.Context, wishID int64, requestingUserID int64) (*Wish, error) {
	// The existence pre-check turns a vanished source into a clean NotFound
	// before the transactional machinery starts.
	if _, err := service.wishes.FindByID(context, wishID); err != nil {
		return nil, err
	}

	duplicate, err := service.wishes.Copy(context, wishID, requestingUserID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("wish_copied",
		slog.Int64("source_wish_id", wishID),
		slog.Int64("new_wish_id", duplicate.ID),
		slog.Int64("user_id", requestingUserID),
	)

	return duplicate, nil
}

// # Funding Hook

// UpdateRaised sets the cumulative raised amount on a wish.
//
// This is a trusted internal entry point for the offers subsystem: it carries
// no ownership check and is never exposed over HTTP.
func (service *Service) UpdateRaised(context context.Context, id int64, amount int64) (*Wish, error) {
	validator := &validate.Validator{}
	validator.NonNegative(FieldRaised, amount)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.wishes.SetRaised(context, id, amount); err != nil {
		return nil, err
	}

	service.logger.Info("wish_raised_updated",
		slog.Int64("wish_id", id),
		slog.Int64("raised", amount),
	)

	return service.wishes.FindByID(context, id)
}

// # Validation

func validateFields(title, description, link, image string, price int64) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, MaxTitleLen)
	validator.MaxLen(FieldDescription, description, MaxDescriptionLen)
	if link != "" {
		validator.URL(FieldLink, link)
	}
	if image != "" {
		validator.URL(FieldImage, image)
	}
	validator.NonNegative(FieldPrice, price)
	return validator.Err()
}

func validatePatch(patch UpdateInput) error {
	validator := &validate.Validator{}
	if patch.Title != nil {
		validator.Required(FieldTitle, *patch.Title).MaxLen(FieldTitle, *patch.Title, MaxTitleLen)
	}
	if patch.Description != nil {
		validator.MaxLen(FieldDescription, *patch.Description, MaxDescriptionLen)
	}
	if patch.Link != nil && *patch.Link != "" {
		validator.URL(FieldLink, *patch.Link)
	}
	if patch.Image != nil && *patch.Image != "" {
		validator.URL(FieldImage, *patch.Image)
	}
	if patch.Price != nil {
		validator.NonNegative(FieldPrice, *patch.Price)
	}
	return validator.Err()
}

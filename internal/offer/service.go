// Copyright (c) 2026 Wishare. All rights reserved.

package offer

import (
	"context"
	"log/slog"

	"github.com/wisharehq/wishare/internal/platform/validate"
	"github.com/wisharehq/wishare/internal/wish"
	"github.com/wisharehq/wishare/pkg/pagination"
)

// WishFunder is the slice of the wish service the offers subsystem needs:
// target lookup and the trusted raised-amount hook.
type WishFunder interface {
	FindByID(context context.Context, id int64) (*wish.Wish, error)
	UpdateRaised(context context.Context, id int64, amount int64) (*wish.Wish, error)
}

// Service implements the contribution use cases.
type Service struct {
	offers Repository
	wishes WishFunder
	logger *slog.Logger
}

// NewService constructs an offer [Service] with its dependencies.
func NewService(offers Repository, wishes WishFunder, logger *slog.Logger) *Service {
	return &Service{
		offers: offers,
		wishes: wishes,
		logger: logger,
	}
}

// Create validates and records a contribution toward a wish, then moves the
// wish's raised amount forward by the contributed amount.
//
// Rejected cases: contributing to your own wish, and amounts that would push
// the wish past its funding target.
func (service *Service) Create(context context.Context, input CreateInput, userID int64) (*Offer, error) {
	validator := &validate.Validator{}
	validator.Positive(FieldItemID, input.ItemID)
	validator.Positive(FieldAmount, input.Amount)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	target, err := service.wishes.FindByID(context, input.ItemID)
	if err != nil {
		return nil, err
	}
	if target.OwnerID == userID {
		return nil, ErrOwnWish
	}
	if target.Raised+input.Amount > target.Price {
		return nil, ErrOverfunded
	}

	offer := &Offer{
		ItemID: input.ItemID,
		UserID: userID,
		Amount: input.Amount,
		Hidden: input.Hidden,
	}

	if err := service.offers.Create(context, offer); err != nil {
		return nil, err
	}

	// The raised amount is an absolute cumulative value, recomputed here and
	// pushed through the wish service's internal hook.
	if _, err := service.wishes.UpdateRaised(context, input.ItemID, target.Raised+input.Amount); err != nil {
		return nil, err
	}

	service.logger.Info("offer_created",
		slog.Int64("offer_id", offer.ID),
		slog.Int64("wish_id", input.ItemID),
		slog.Int64("user_id", userID),
		slog.Int64("amount", input.Amount),
	)

	return service.offers.FindByID(context, offer.ID)
}

// FindByID retrieves one offer.
func (service *Service) FindByID(context context.Context, id int64) (*Offer, error) {
	return service.offers.FindByID(context, id)
}

// FindAll returns one page of offers with pagination metadata.
func (service *Service) FindAll(context context.Context, params pagination.Params) ([]*Offer, pagination.Meta, error) {
	offers, total, err := service.offers.FindAll(context, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return offers, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// Copyright (c) 2026 Wishare. All rights reserved.

package offer_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisharehq/wishare/internal/offer"
	"github.com/wisharehq/wishare/internal/platform/apperr"
	"github.com/wisharehq/wishare/internal/user"
	"github.com/wisharehq/wishare/internal/wish"
	"github.com/wisharehq/wishare/pkg/pagination"
)

// memoryOfferRepo is a minimal in-memory [offer.Repository] for service tests.
type memoryOfferRepo struct {
	mu     sync.Mutex
	nextID int64
	offers map[int64]*offer.Offer
}

func newMemoryOfferRepo() *memoryOfferRepo {
	return &memoryOfferRepo{offers: make(map[int64]*offer.Offer)}
}

func (r *memoryOfferRepo) FindByID(_ context.Context, id int64) (*offer.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offers[id]
	if !ok {
		return nil, offer.ErrNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *memoryOfferRepo) FindAll(_ context.Context, limit, offset int) ([]*offer.Offer, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*offer.Offer, 0, len(r.offers))
	for _, o := range r.offers {
		clone := *o
		all = append(all, &clone)
	}
	total := len(all)
	if offset >= len(all) {
		return []*offer.Offer{}, total, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func (r *memoryOfferRepo) Create(_ context.Context, o *offer.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	o.ID = r.nextID
	o.CreatedAt = time.Now()
	stored := *o
	r.offers[o.ID] = &stored
	return nil
}

type fixture struct {
	service *offer.Service
	wishes  *wish.Service
	repo    *wish.MemoryRepository
}

func newFixture() *fixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	wishRepo := wish.NewMemoryRepository()
	wishRepo.RegisterOwner(&user.Profile{ID: 1, Username: "owner"})
	wishRepo.RegisterOwner(&user.Profile{ID: 2, Username: "friend"})

	wishService := wish.NewService(wishRepo, logger)
	offerService := offer.NewService(newMemoryOfferRepo(), wishService, logger)

	return &fixture{service: offerService, wishes: wishService, repo: wishRepo}
}

func (f *fixture) createWish(t *testing.T, price int64) *wish.Wish {
	t.Helper()
	created, err := f.wishes.Create(context.Background(), wish.CreateInput{
		Title: "Test wish",
		Price: price,
	}, 1)
	require.NoError(t, err)
	return created
}

/*
TestService_Create verifies the happy path moves the wish's raised amount.
*/
func TestService_Create(t *testing.T) {
	f := newFixture()
	target := f.createWish(t, 10000)

	created, err := f.service.Create(context.Background(), offer.CreateInput{
		ItemID: target.ID,
		Amount: 4000,
	}, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), created.Amount)
	assert.Equal(t, target.ID, created.ItemID)

	reread, err := f.wishes.FindByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), reread.Raised)

	// A second offer accumulates.
	_, err = f.service.Create(context.Background(), offer.CreateInput{
		ItemID: target.ID,
		Amount: 3000,
	}, 2)
	require.NoError(t, err)

	reread, err = f.wishes.FindByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7000), reread.Raised)
}

/*
TestService_Create_OwnWish verifies self-contribution is rejected.
*/
func TestService_Create_OwnWish(t *testing.T) {
	f := newFixture()
	target := f.createWish(t, 10000)

	_, err := f.service.Create(context.Background(), offer.CreateInput{
		ItemID: target.ID,
		Amount: 1000,
	}, 1)
	assert.ErrorIs(t, err, offer.ErrOwnWish)

	reread, err := f.wishes.FindByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Zero(t, reread.Raised)
}

/*
TestService_Create_Overfunded verifies amounts past the target are rejected.
*/
func TestService_Create_Overfunded(t *testing.T) {
	f := newFixture()
	target := f.createWish(t, 5000)

	_, err := f.service.Create(context.Background(), offer.CreateInput{
		ItemID: target.ID,
		Amount: 6000,
	}, 2)
	assert.ErrorIs(t, err, offer.ErrOverfunded)

	// Filling exactly to the target is allowed.
	_, err = f.service.Create(context.Background(), offer.CreateInput{
		ItemID: target.ID,
		Amount: 5000,
	}, 2)
	require.NoError(t, err)

	// Nothing fits any more.
	_, err = f.service.Create(context.Background(), offer.CreateInput{
		ItemID: target.ID,
		Amount: 1,
	}, 2)
	assert.ErrorIs(t, err, offer.ErrOverfunded)
}

/*
TestService_Create_Validation verifies field-level rejection.
*/
func TestService_Create_Validation(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name  string
		input offer.CreateInput
	}{
		{"zero_amount", offer.CreateInput{ItemID: 1, Amount: 0}},
		{"negative_amount", offer.CreateInput{ItemID: 1, Amount: -50}},
		{"missing_item", offer.CreateInput{Amount: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Create(context.Background(), tt.input, 2)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestService_Create_MissingWish verifies offers on vanished wishes.
*/
func TestService_Create_MissingWish(t *testing.T) {
	f := newFixture()

	_, err := f.service.Create(context.Background(), offer.CreateInput{
		ItemID: 404,
		Amount: 100,
	}, 2)
	assert.ErrorIs(t, err, wish.ErrNotFound)
}

/*
TestService_FindAll verifies pagination metadata.
*/
func TestService_FindAll(t *testing.T) {
	f := newFixture()
	target := f.createWish(t, 100000)

	for i := 0; i < 5; i++ {
		_, err := f.service.Create(context.Background(), offer.CreateInput{
			ItemID: target.ID,
			Amount: 100,
		}, 2)
		require.NoError(t, err)
	}

	offers, meta, err := f.service.FindAll(context.Background(), pagination.Params{Page: 1, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, offers, 3)
	assert.Equal(t, 5, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)

	offers, _, err = f.service.FindAll(context.Background(), pagination.Params{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, offers, 2)
}

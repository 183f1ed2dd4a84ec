// Copyright (c) 2026 Wishare. All rights reserved.

package wish_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisharehq/wishare/internal/platform/apperr"
	"github.com/wisharehq/wishare/internal/wish"
	"github.com/wisharehq/wishare/pkg/pointer"
)

func newTestService(repo wish.Repository) *wish.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return wish.NewService(repo, logger)
}

// recordingRepo counts batch lookups to prove short-circuit behavior.
type recordingRepo struct {
	wish.Repository
	findManyCalls int
}

func (r *recordingRepo) FindManyByIDs(ctx context.Context, ids []int64) ([]*wish.Wish, error) {
	r.findManyCalls++
	return r.Repository.FindManyByIDs(ctx, ids)
}

/*
TestService_Create verifies validation and store-assigned defaults.
*/
func TestService_Create(t *testing.T) {
	repo := newRepoWithOwners(1)
	service := newTestService(repo)

	created, err := service.Create(context.Background(), wish.CreateInput{
		Title: "Noise-cancelling headphones",
		Link:  "https://shop.example.com/headphones",
		Price: 25000,
	}, 1)
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Zero(t, created.Raised)
	assert.Zero(t, created.Copied)
	require.NotNil(t, created.Owner)
	assert.Equal(t, int64(1), created.Owner.ID)
}

/*
TestService_Create_Validation verifies field-level rejection.
*/
func TestService_Create_Validation(t *testing.T) {
	service := newTestService(newRepoWithOwners(1))

	tests := []struct {
		name  string
		input wish.CreateInput
		field string
	}{
		{"missing_title", wish.CreateInput{Price: 100}, "title"},
		{"negative_price", wish.CreateInput{Title: "Socks", Price: -5}, "price"},
		{"bad_link", wish.CreateInput{Title: "Socks", Link: "not-a-url"}, "link"},
		{"bad_image", wish.CreateInput{Title: "Socks", Image: "::nope"}, "image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), tt.input, 1)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}
}

/*
TestService_Update verifies ownership enforcement and patch application.
*/
func TestService_Update(t *testing.T) {
	repo := newRepoWithOwners(1, 2)
	service := newTestService(repo)
	created := mustCreate(t, repo, 1, "Board game", 3000)

	t.Run("owner_can_patch", func(t *testing.T) {
		updated, err := service.Update(context.Background(), created.ID,
			wish.UpdateInput{Title: pointer.To("Better board game")}, 1)
		require.NoError(t, err)
		assert.Equal(t, "Better board game", updated.Title)
		assert.Equal(t, int64(3000), updated.Price)
	})

	t.Run("non_owner_rejected", func(t *testing.T) {
		_, err := service.Update(context.Background(), created.ID,
			wish.UpdateInput{Title: pointer.To("Hijacked")}, 2)
		assert.ErrorIs(t, err, wish.ErrNotOwner)
	})

	t.Run("missing_wish", func(t *testing.T) {
		_, err := service.Update(context.Background(), 999,
			wish.UpdateInput{Title: pointer.To("Ghost")}, 1)
		assert.ErrorIs(t, err, wish.ErrNotFound)
	})
}

/*
TestService_Update_PriceLock verifies the price freeze once money arrives.
*/
func TestService_Update_PriceLock(t *testing.T) {
	repo := newRepoWithOwners(1)
	service := newTestService(repo)
	created := mustCreate(t, repo, 1, "Telescope", 60000)

	// Price changes are fine while nothing has been raised.
	_, err := service.Update(context.Background(), created.ID,
		wish.UpdateInput{Price: pointer.To(int64(55000))}, 1)
	require.NoError(t, err)

	_, err = service.UpdateRaised(context.Background(), created.ID, 1000)
	require.NoError(t, err)

	// Any price field in the patch is now rejected.
	_, err = service.Update(context.Background(), created.ID,
		wish.UpdateInput{Price: pointer.To(int64(70000))}, 1)
	assert.ErrorIs(t, err, wish.ErrPriceLocked)

	// Non-price fields still go through.
	updated, err := service.Update(context.Background(), created.ID,
		wish.UpdateInput{Description: pointer.To("Sees very far")}, 1)
	require.NoError(t, err)
	assert.Equal(t, "Sees very far", updated.Description)
	assert.Equal(t, int64(55000), updated.Price)
}

/*
TestService_Remove verifies ownership enforcement and the returned snapshot.
*/
func TestService_Remove(t *testing.T) {
	repo := newRepoWithOwners(1, 2)
	service := newTestService(repo)
	created := mustCreate(t, repo, 1, "Drone", 40000)

	_, err := service.Remove(context.Background(), created.ID, 2)
	assert.ErrorIs(t, err, wish.ErrNotOwner)

	snapshot, err := service.Remove(context.Background(), created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Drone", snapshot.Title)

	_, err = service.FindByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, wish.ErrNotFound)
}

/*
TestService_Copy verifies the duplicate returned from the atomic unit.
*/
func TestService_Copy(t *testing.T) {
	repo := newRepoWithOwners(1, 2)
	service := newTestService(repo)
	source := mustCreate(t, repo, 1, "Record player", 20000)

	duplicate, err := service.Copy(context.Background(), source.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "Record player", duplicate.Title)
	assert.Equal(t, int64(2), duplicate.OwnerID)
	assert.Zero(t, duplicate.Raised)

	_, err = service.Copy(context.Background(), 999, 2)
	assert.ErrorIs(t, err, wish.ErrNotFound)
}

/*
TestService_FindManyByIDs verifies the empty-input short-circuit never
reaches the store.
*/
func TestService_FindManyByIDs(t *testing.T) {
	repo := newRepoWithOwners(1)
	recorder := &recordingRepo{Repository: repo}
	service := newTestService(recorder)

	a := mustCreate(t, repo, 1, "A", 100)
	b := mustCreate(t, repo, 1, "B", 100)

	empty, err := service.FindManyByIDs(context.Background(), []int64{})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
	assert.Zero(t, recorder.findManyCalls, "empty input must not touch the store")

	found, err := service.FindManyByIDs(context.Background(), []int64{a.ID, b.ID})
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, 1, recorder.findManyCalls)
}

/*
TestService_UpdateRaised verifies the internal funding hook.
*/
func TestService_UpdateRaised(t *testing.T) {
	repo := newRepoWithOwners(1)
	service := newTestService(repo)
	created := mustCreate(t, repo, 1, "Guitar", 30000)

	updated, err := service.UpdateRaised(context.Background(), created.ID, 12000)
	require.NoError(t, err)
	assert.Equal(t, int64(12000), updated.Raised)

	// Absolute set, not an increment.
	updated, err = service.UpdateRaised(context.Background(), created.ID, 5000)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), updated.Raised)

	_, err = service.UpdateRaised(context.Background(), 999, 100)
	assert.ErrorIs(t, err, wish.ErrNotFound)

	_, err = service.UpdateRaised(context.Background(), created.ID, -1)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_Feeds verifies feed ordering through the service layer.
*/
func TestService_Feeds(t *testing.T) {
	repo := newRepoWithOwners(1, 2)
	service := newTestService(repo)

	older := mustCreate(t, repo, 1, "Older", 100)
	newer := mustCreate(t, repo, 1, "Newer", 100)

	_, err := service.Copy(context.Background(), older.ID, 2)
	require.NoError(t, err)

	latest, err := service.FindLatest(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, latest)
	// The copy is the most recent record of all.
	assert.Equal(t, "Older", latest[0].Title)
	assert.NotEqual(t, newer.ID, latest[0].ID)

	top, err := service.FindTop(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, top)
	assert.Equal(t, older.ID, top[0].ID)
	assert.Equal(t, 1, top[0].Copied)
}

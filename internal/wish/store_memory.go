// Copyright (c) 2026 Wishare. All rights reserved.

package wish

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/wisharehq/wishare/internal/user"
)

// MemoryRepository is an in-memory [Repository] for tests and local tinkering.
//
// It honors the same contract as the Postgres store, including the
// both-or-neither semantics of Copy: a failure injected via FailNextCreate
// leaves the source's copy counter untouched.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	wishes map[int64]*Wish
	owners map[int64]*user.Profile

	// FailNextCreate, when set, makes the next create attempt fail with this
	// error and is then cleared.
	FailNextCreate error
}

// NewMemoryRepository creates an empty in-memory wish repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		wishes: make(map[int64]*Wish),
		owners: make(map[int64]*user.Profile),
	}
}

// RegisterOwner makes a user profile available for relation expansion.
func (repository *MemoryRepository) RegisterOwner(profile *user.Profile) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.owners[profile.ID] = profile
}

// AddOffer attaches an offer projection to a stored wish.
func (repository *MemoryRepository) AddOffer(wishID int64, offer *Offer) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	w, ok := repository.wishes[wishID]
	if !ok {
		return ErrNotFound
	}
	w.Offers = append(w.Offers, offer)
	return nil
}

func (repository *MemoryRepository) FindByID(_ context.Context, id int64) (*Wish, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	w, ok := repository.wishes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return repository.cloneExpanded(w), nil
}

func (repository *MemoryRepository) FindLatest(_ context.Context, limit int) ([]*Wish, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	all := repository.sortedLocked(func(a, b *Wish) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return repository.capLocked(all, limit), nil
}

func (repository *MemoryRepository) FindTop(_ context.Context, limit int) ([]*Wish, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	all := repository.sortedLocked(func(a, b *Wish) bool {
		if a.Copied != b.Copied {
			return a.Copied > b.Copied
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return repository.capLocked(all, limit), nil
}

func (repository *MemoryRepository) FindManyByIDs(_ context.Context, ids []int64) ([]*Wish, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	wishes := []*Wish{}
	for _, id := range ids {
		if w, ok := repository.wishes[id]; ok {
			// Bare batch path: no relation expansion.
			clone := *w
			clone.Owner = nil
			clone.Offers = []*Offer{}
			wishes = append(wishes, &clone)
		}
	}
	return wishes, nil
}

func (repository *MemoryRepository) Create(_ context.Context, wish *Wish) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return repository.createLocked(wish)
}

func (repository *MemoryRepository) UpdatePartial(_ context.Context, id int64, patch UpdateInput) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	w, ok := repository.wishes[id]
	if !ok {
		return ErrNotFound
	}

	if patch.Title != nil {
		w.Title = *patch.Title
	}
	if patch.Description != nil {
		w.Description = *patch.Description
	}
	if patch.Link != nil {
		w.Link = *patch.Link
	}
	if patch.Image != nil {
		w.Image = *patch.Image
	}
	if patch.Price != nil {
		w.Price = *patch.Price
	}
	w.UpdatedAt = time.Now()
	return nil
}

func (repository *MemoryRepository) SetRaised(_ context.Context, id int64, amount int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	w, ok := repository.wishes[id]
	if !ok {
		return ErrNotFound
	}
	w.Raised = amount
	w.UpdatedAt = time.Now()
	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.wishes[id]; !ok {
		return ErrNotFound
	}
	delete(repository.wishes, id)
	return nil
}

func (repository *MemoryRepository) Copy(_ context.Context, sourceID int64, newOwnerID int64) (*Wish, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	source, ok := repository.wishes[sourceID]
	if !ok {
		return nil, ErrNotFound
	}

	source.Copied++
	source.UpdatedAt = time.Now()

	duplicate := &Wish{
		Title:       source.Title,
		Description: source.Description,
		Link:        source.Link,
		Image:       source.Image,
		Price:       source.Price,
		OwnerID:     newOwnerID,
	}
	if err := repository.createLocked(duplicate); err != nil {
		// Roll the counter bump back so the unit stays atomic.
		source.Copied--
		return nil, err
	}

	return repository.cloneExpanded(duplicate), nil
}

// createLocked assigns identity and timestamps. Callers hold the mutex.
func (repository *MemoryRepository) createLocked(wish *Wish) error {
	if err := repository.FailNextCreate; err != nil {
		repository.FailNextCreate = nil
		return err
	}

	repository.nextID++
	wish.ID = repository.nextID
	wish.Raised = 0
	wish.Copied = 0
	wish.CreatedAt = time.Now()
	wish.UpdatedAt = wish.CreatedAt
	wish.Offers = []*Offer{}

	stored := *wish
	repository.wishes[wish.ID] = &stored
	return nil
}

func (repository *MemoryRepository) sortedLocked(less func(a, b *Wish) bool) []*Wish {
	all := make([]*Wish, 0, len(repository.wishes))
	for _, w := range repository.wishes {
		all = append(all, w)
	}
	sort.Slice(all, func(i, j int) bool { return less(all[i], all[j]) })
	return all
}

func (repository *MemoryRepository) capLocked(all []*Wish, limit int) []*Wish {
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	out := make([]*Wish, 0, len(all))
	for _, w := range all {
		out = append(out, repository.cloneExpanded(w))
	}
	return out
}

// cloneExpanded returns an isolated copy with relations attached.
func (repository *MemoryRepository) cloneExpanded(w *Wish) *Wish {
	clone := *w
	clone.Owner = repository.owners[w.OwnerID]
	clone.Offers = append([]*Offer{}, w.Offers...)
	return &clone
}

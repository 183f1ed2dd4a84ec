// Copyright (c) 2026 Wishare. All rights reserved.

package wish

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wisharehq/wishare/internal/platform/dberr"
	"github.com/wisharehq/wishare/internal/user"
)

// wrapErr classifies a database error, promoting missing rows to the
// wish-specific [ErrNotFound].
func wrapErr(err error, action string) error {
	err = dberr.Wrap(err, action)
	if errors.Is(err, dberr.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// querier is the subset of pgx operations shared by *pgxpool.Pool and pgx.Tx.
// Read helpers accept it so the same hydration code runs inside and outside
// the copy transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository implements [Repository] backed by PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres-backed wish repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// wishWithOwnerQuery selects a wish row joined with its owner's public profile.
const wishWithOwnerQuery = `
	SELECT w.id, w.title, w.description, w.link, w.image, w.price, w.raised,
	       w.copied, w.ownerid, w.createdat, w.updatedat,
	       u.id, u.username, u.about, u.avatarurl, u.createdat
	FROM wishes w
	JOIN users u ON u.id = w.ownerid
`

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Wish, error) {
	return findOneExpanded(context, repository.db, id)
}

func (repository *PostgresRepository) FindLatest(context context.Context, limit int) ([]*Wish, error) {
	query := wishWithOwnerQuery + ` ORDER BY w.createdat DESC LIMIT $1`
	return findManyExpanded(context, repository.db, "find_latest_wishes", query, limit)
}

func (repository *PostgresRepository) FindTop(context context.Context, limit int) ([]*Wish, error) {
	query := wishWithOwnerQuery + ` ORDER BY w.copied DESC, w.createdat DESC LIMIT $1`
	return findManyExpanded(context, repository.db, "find_top_wishes", query, limit)
}

func (repository *PostgresRepository) FindManyByIDs(context context.Context, ids []int64) ([]*Wish, error) {
	query := `
		SELECT id, title, description, link, image, price, raised,
		       copied, ownerid, createdat, updatedat
		FROM wishes
		WHERE id = ANY($1)
	`

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return nil, wrapErr(err, "find_wishes_by_ids")
	}
	defer rows.Close()

	wishes := []*Wish{}
	for rows.Next() {
		w := &Wish{Offers: []*Offer{}}
		if err := rows.Scan(
			&w.ID, &w.Title, &w.Description, &w.Link, &w.Image, &w.Price, &w.Raised,
			&w.Copied, &w.OwnerID, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, wrapErr(err, "scan_wish")
		}
		wishes = append(wishes, w)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "find_wishes_by_ids")
	}

	return wishes, nil
}

func (repository *PostgresRepository) Create(context context.Context, wish *Wish) error {
	return createWish(context, repository.db, wish)
}

func (repository *PostgresRepository) UpdatePartial(context context.Context, id int64, patch UpdateInput) error {
	assignments := []string{}
	args := []any{id}

	appendSet := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		appendSet("title", *patch.Title)
	}
	if patch.Description != nil {
		appendSet("description", *patch.Description)
	}
	if patch.Link != nil {
		appendSet("link", *patch.Link)
	}
	if patch.Image != nil {
		appendSet("image", *patch.Image)
	}
	if patch.Price != nil {
		appendSet("price", *patch.Price)
	}

	// A patch with no recognized fields is a no-op, not an error.
	if len(assignments) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`UPDATE wishes SET %s, updatedat = NOW() WHERE id = $1`,
		strings.Join(assignments, ", "),
	)

	cmd, err := repository.db.Exec(context, query, args...)
	if err != nil {
		return wrapErr(err, "update_wish")
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) SetRaised(context context.Context, id int64, amount int64) error {
	query := `UPDATE wishes SET raised = $2, updatedat = NOW() WHERE id = $1`

	cmd, err := repository.db.Exec(context, query, id, amount)
	if err != nil {
		return wrapErr(err, "set_wish_raised")
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	cmd, err := repository.db.Exec(context, `DELETE FROM wishes WHERE id = $1`, id)
	if err != nil {
		return wrapErr(err, "delete_wish")
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Copy(context context.Context, sourceID int64, newOwnerID int64) (*Wish, error) {

	// Establish the transactional boundary: the counter increment and the
	// new record must land together or not at all.
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return nil, wrapErr(err, "begin_copy_tx")
	}
	// Rollback is a no-op after a successful commit; this releases the
	// transaction on every exit path.
	defer transaction.Rollback(context)

	// Step 1: Re-read the source row under a row lock. Only the copyable
	// fields are pulled — identity and derived state stay behind.
	source := CreateInput{}
	err = transaction.QueryRow(context,
		`SELECT title, description, link, image, price FROM wishes WHERE id = $1 FOR UPDATE`,
		sourceID,
	).Scan(&source.Title, &source.Description, &source.Link, &source.Image, &source.Price)
	if err != nil {
		return nil, wrapErr(err, "copy_reread_source")
	}

	// Step 2: Atomic popularity bump on the source.
	if _, err := transaction.Exec(context,
		`UPDATE wishes SET copied = copied + 1, updatedat = NOW() WHERE id = $1`,
		sourceID,
	); err != nil {
		return nil, wrapErr(err, "copy_increment_counter")
	}

	// Step 3: Create the duplicate through the normal create path; it starts
	// with raised = 0 and copied = 0 like any fresh wish.
	duplicate := &Wish{
		Title:       source.Title,
		Description: source.Description,
		Link:        source.Link,
		Image:       source.Image,
		Price:       source.Price,
		OwnerID:     newOwnerID,
	}
	if err := createWish(context, transaction, duplicate); err != nil {
		return nil, err
	}

	// Step 4: Re-read the duplicate with relations expanded for the caller.
	created, err := findOneExpanded(context, transaction, duplicate.ID)
	if err != nil {
		return nil, err
	}

	// Persist the atomic changeset.
	if err := transaction.Commit(context); err != nil {
		return nil, wrapErr(err, "commit_copy_tx")
	}

	return created, nil
}

// # Shared Hydration Helpers

// createWish inserts a new wish row and fills in store-assigned fields.
// It runs against the pool or inside the copy transaction.
func createWish(context context.Context, q querier, wish *Wish) error {
	query := `
		INSERT INTO wishes (title, description, link, image, price, raised, copied, ownerid, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, 0, 0, $6, NOW(), NOW())
		RETURNING id, raised, copied, createdat, updatedat
	`

	err := q.QueryRow(context, query,
		wish.Title, wish.Description, wish.Link, wish.Image, wish.Price, wish.OwnerID,
	).Scan(&wish.ID, &wish.Raised, &wish.Copied, &wish.CreatedAt, &wish.UpdatedAt)

	return wrapErr(err, "create_wish")
}

// findOneExpanded loads a single wish with owner and offers attached.
func findOneExpanded(ctx context.Context, q querier, id int64) (*Wish, error) {
	w := &Wish{Owner: &user.Profile{}, Offers: []*Offer{}}

	err := q.QueryRow(ctx, wishWithOwnerQuery+` WHERE w.id = $1`, id).Scan(
		&w.ID, &w.Title, &w.Description, &w.Link, &w.Image, &w.Price, &w.Raised,
		&w.Copied, &w.OwnerID, &w.CreatedAt, &w.UpdatedAt,
		&w.Owner.ID, &w.Owner.Username, &w.Owner.About, &w.Owner.AvatarURL, &w.Owner.CreatedAt,
	)
	if err != nil {
		return nil, wrapErr(err, "find_wish_by_id")
	}

	if err := attachOffers(ctx, q, []*Wish{w}); err != nil {
		return nil, err
	}

	return w, nil
}

// findManyExpanded runs a wish+owner list query and attaches offers in one
// follow-up round trip.
func findManyExpanded(ctx context.Context, q querier, action, query string, args ...any) ([]*Wish, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(err, action)
	}
	defer rows.Close()

	wishes := []*Wish{}
	for rows.Next() {
		w := &Wish{Owner: &user.Profile{}, Offers: []*Offer{}}
		if err := rows.Scan(
			&w.ID, &w.Title, &w.Description, &w.Link, &w.Image, &w.Price, &w.Raised,
			&w.Copied, &w.OwnerID, &w.CreatedAt, &w.UpdatedAt,
			&w.Owner.ID, &w.Owner.Username, &w.Owner.About, &w.Owner.AvatarURL, &w.Owner.CreatedAt,
		); err != nil {
			return nil, wrapErr(err, "scan_wish")
		}
		wishes = append(wishes, w)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, action)
	}

	if err := attachOffers(ctx, q, wishes); err != nil {
		return nil, err
	}

	return wishes, nil
}

// attachOffers hydrates the offers relation for a batch of wishes.
// Hidden offers keep their amount visible but drop the contributor profile.
func attachOffers(ctx context.Context, q querier, wishes []*Wish) error {
	if len(wishes) == 0 {
		return nil
	}

	byID := make(map[int64]*Wish, len(wishes))
	ids := make([]int64, 0, len(wishes))
	for _, w := range wishes {
		byID[w.ID] = w
		ids = append(ids, w.ID)
	}

	query := `
		SELECT o.id, o.itemid, o.amount, o.hidden, o.createdat,
		       u.id, u.username, u.about, u.avatarurl, u.createdat
		FROM offers o
		JOIN users u ON u.id = o.userid
		WHERE o.itemid = ANY($1)
		ORDER BY o.createdat ASC
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return wrapErr(err, "load_wish_offers")
	}
	defer rows.Close()

	for rows.Next() {
		offer := &Offer{}
		contributor := &user.Profile{}
		var itemID int64

		if err := rows.Scan(
			&offer.ID, &itemID, &offer.Amount, &offer.Hidden, &offer.CreatedAt,
			&contributor.ID, &contributor.Username, &contributor.About,
			&contributor.AvatarURL, &contributor.CreatedAt,
		); err != nil {
			return wrapErr(err, "scan_wish_offer")
		}

		if !offer.Hidden {
			offer.User = contributor
		}

		if w, ok := byID[itemID]; ok {
			w.Offers = append(w.Offers, offer)
		}
	}

	return wrapErr(rows.Err(), "load_wish_offers")
}

// Copyright (c) 2026 Wishare. All rights reserved.

package offer

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wisharehq/wishare/internal/platform/dberr"
	"github.com/wisharehq/wishare/internal/user"
)

// PostgresRepository implements [Repository] backed by PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres-backed offer repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const offerWithUserQuery = `
	SELECT o.id, o.itemid, o.userid, o.amount, o.hidden, o.createdat,
	       u.id, u.username, u.about, u.avatarurl, u.createdat
	FROM offers o
	JOIN users u ON u.id = o.userid
`

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Offer, error) {
	offer := &Offer{User: &user.Profile{}}

	err := repository.db.QueryRow(context, offerWithUserQuery+` WHERE o.id = $1`, id).Scan(
		&offer.ID, &offer.ItemID, &offer.UserID, &offer.Amount, &offer.Hidden, &offer.CreatedAt,
		&offer.User.ID, &offer.User.Username, &offer.User.About,
		&offer.User.AvatarURL, &offer.User.CreatedAt,
	)
	if err != nil {
		err = dberr.Wrap(err, "find_offer_by_id")
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if offer.Hidden {
		offer.User = nil
	}

	return offer, nil
}

func (repository *PostgresRepository) FindAll(context context.Context, limit, offset int) ([]*Offer, int, error) {
	var total int
	if err := repository.db.QueryRow(context, `SELECT COUNT(*) FROM offers`).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_offers")
	}

	query := offerWithUserQuery + ` ORDER BY o.createdat DESC LIMIT $1 OFFSET $2`

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "find_all_offers")
	}
	defer rows.Close()

	offers := []*Offer{}
	for rows.Next() {
		offer := &Offer{User: &user.Profile{}}
		if err := rows.Scan(
			&offer.ID, &offer.ItemID, &offer.UserID, &offer.Amount, &offer.Hidden, &offer.CreatedAt,
			&offer.User.ID, &offer.User.Username, &offer.User.About,
			&offer.User.AvatarURL, &offer.User.CreatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_offer")
		}
		if offer.Hidden {
			offer.User = nil
		}
		offers = append(offers, offer)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "find_all_offers")
	}

	return offers, total, nil
}

func (repository *PostgresRepository) Create(context context.Context, offer *Offer) error {
	query := `
		INSERT INTO offers (itemid, userid, amount, hidden, createdat)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, createdat
	`

	err := repository.db.QueryRow(context, query,
		offer.ItemID, offer.UserID, offer.Amount, offer.Hidden,
	).Scan(&offer.ID, &offer.CreatedAt)

	return dberr.Wrap(err, "create_offer")
}

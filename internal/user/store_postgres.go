// Copyright (c) 2026 Wishare. All rights reserved.

package user

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wisharehq/wishare/internal/platform/dberr"
)

// PostgresRepository implements [Repository] backed by PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres-backed account repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, username, email, passwordhash, about, avatarurl, createdat, updatedat`

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return repository.scanOne(context, query, "find_user_by_id", id)
}

func (repository *PostgresRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return repository.scanOne(context, query, "find_user_by_username", username)
}

func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return repository.scanOne(context, query, "find_user_by_email", email)
}

func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	query := `
		INSERT INTO users (username, email, passwordhash, about, avatarurl, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, createdat, updatedat
	`

	err := repository.db.QueryRow(context, query,
		user.Username, user.Email, user.PasswordHash, user.About, user.AvatarURL,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, "create_user")
}

func (repository *PostgresRepository) UpdateProfile(context context.Context, user *User) error {
	query := `
		UPDATE users
		SET about = $2, avatarurl = $3, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`

	err := repository.db.QueryRow(context, query, user.ID, user.About, user.AvatarURL).Scan(&user.UpdatedAt)
	return dberr.Wrap(err, "update_user_profile")
}

func (repository *PostgresRepository) UpdatePassword(context context.Context, userID int64, newHash string) error {
	query := `UPDATE users SET passwordhash = $2, updatedat = NOW() WHERE id = $1`

	cmd, err := repository.db.Exec(context, query, userID, newHash)
	if err != nil {
		return dberr.Wrap(err, "update_user_password")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// scanOne executes a single-row account query and hydrates the entity.
func (repository *PostgresRepository) scanOne(context context.Context, query, action string, args ...any) (*User, error) {
	u := &User{}

	err := repository.db.QueryRow(context, query, args...).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.About, &u.AvatarURL,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	return u, nil
}

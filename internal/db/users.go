package db

import (
	"context"

	"github.com/thoughtcloud/thoughtcloud/internal/model"
)

func (db *Postgres) CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error) {
	query := `
		INSERT INTO users (username, password_hash, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, username, password_hash, created_at
	`
	var user model.User
	err := db.Pool.QueryRow(ctx, query, username, passwordHash).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`
	var user model.User
	err := db.Pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	var user model.User
	err := db.Pool.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

package db

import (
	"context"

	"github.com/thoughtcloud/thoughtcloud/internal/model"
)

const postColumns = `
	p.id, p.title, p.content, p.image_file, p.author_id, u.username, p.created_at
`

func scanPost(row interface{ Scan(dest ...any) error }) (*model.Post, error) {
	var post model.Post
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.ImageFileRef,
		&post.AuthorID,
		&post.AuthorUsername,
		&post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (db *Postgres) CreatePost(ctx context.Context, title, content, imageRef string, authorID int64) (*model.Post, error) {
	query := `
		INSERT INTO posts (title, content, image_file, author_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id
	`
	var id int64
	if err := db.Pool.QueryRow(ctx, query, title, content, imageRef, authorID).Scan(&id); err != nil {
		return nil, err
	}
	return db.GetPost(ctx, id)
}

func (db *Postgres) GetPost(ctx context.Context, postID int64) (*model.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`
	return scanPost(db.Pool.QueryRow(ctx, query, postID))
}

func (db *Postgres) ListPosts(ctx context.Context) ([]model.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at ASC, p.id ASC
	`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func (db *Postgres) UpdatePost(ctx context.Context, postID int64, title, content, imageRef string) (*model.Post, error) {
	query := `
		UPDATE posts
		SET title = $2, content = $3, image_file = $4
		WHERE id = $1
	`
	if _, err := db.Pool.Exec(ctx, query, postID, title, content, imageRef); err != nil {
		return nil, err
	}
	return db.GetPost(ctx, postID)
}

func (db *Postgres) DeletePost(ctx context.Context, postID int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	return err
}

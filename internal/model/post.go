package model

import "time"

// Post is the stored record. ImageFileRef is the opaque media file name,
// empty when the post has no image. AuthorUsername is populated by queries
// that join the author relation.
type Post struct {
	ID             int64
	Title          string
	Content        string
	ImageFileRef   string
	AuthorID       int64
	AuthorUsername string
	CreatedAt      time.Time
}

// PostView is the response shape: the post plus its resolved author and the
// derived image URL (null when the post has no image).
type PostView struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	ImageURL  *string    `json:"imageUrl"`
	AuthorID  int64      `json:"authorId"`
	CreatedAt time.Time  `json:"createdAt"`
	Author    PostAuthor `json:"author"`
}

type PostAuthor struct {
	Username string `json:"username"`
}

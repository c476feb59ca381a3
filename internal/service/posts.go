package service

import (
	"context"
	"errors"
	"strings"

	"github.com/thoughtcloud/thoughtcloud/internal/db"
	"github.com/thoughtcloud/thoughtcloud/internal/model"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// PostStore is the persistence surface PostService needs. Missing rows are
// reported as pgx.ErrNoRows (see db.IsNoRows).
type PostStore interface {
	CreatePost(ctx context.Context, title, content, imageRef string, authorID int64) (*model.Post, error)
	GetPost(ctx context.Context, postID int64) (*model.Post, error)
	ListPosts(ctx context.Context) ([]model.Post, error)
	UpdatePost(ctx context.Context, postID int64, title, content, imageRef string) (*model.Post, error)
	DeletePost(ctx context.Context, postID int64) error
}

// PostService owns the post lifecycle and the ownership rule: a post may be
// mutated only by its author. Update and Delete share the same predicate, and
// existence is always decided before ownership so a missing post reports
// NotFound, never Forbidden.
type PostService struct {
	posts PostStore
	media *MediaService
}

func NewPostService(posts PostStore, media *MediaService) *PostService {
	return &PostService{posts: posts, media: media}
}

func (s *PostService) Create(ctx context.Context, authorID int64, title, content string, upload *Upload) (*model.PostView, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, ErrInvalidInput
	}

	imageRef := ""
	if upload != nil {
		ref, err := s.media.Attach(ctx, upload)
		if err != nil {
			return nil, err
		}
		imageRef = ref
	}

	post, err := s.posts.CreatePost(ctx, title, content, imageRef, authorID)
	if err != nil {
		// The file write and the insert are not transactional; drop the
		// staged file so a failed insert does not leave an orphan.
		s.media.Release(ctx, imageRef)
		return nil, err
	}

	return s.view(post), nil
}

func (s *PostService) List(ctx context.Context) ([]model.PostView, error) {
	posts, err := s.posts.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]model.PostView, 0, len(posts))
	for i := range posts {
		views = append(views, *s.view(&posts[i]))
	}
	return views, nil
}

func (s *PostService) Get(ctx context.Context, postID int64) (*model.PostView, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.view(post), nil
}

// Update merges: an empty title or content keeps the stored value, a new
// upload replaces the previous image file.
func (s *PostService) Update(ctx context.Context, postID, userID int64, title, content string, upload *Upload) (*model.PostView, error) {
	existing, err := s.getForMutation(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = existing.Title
	}
	content = strings.TrimSpace(content)
	if content == "" {
		content = existing.Content
	}

	imageRef := existing.ImageFileRef
	if upload != nil {
		imageRef, err = s.media.Replace(ctx, existing.ImageFileRef, upload)
		if err != nil {
			return nil, err
		}
	}

	post, err := s.posts.UpdatePost(ctx, postID, title, content, imageRef)
	if err != nil {
		return nil, err
	}
	return s.view(post), nil
}

func (s *PostService) Delete(ctx context.Context, postID, userID int64) error {
	existing, err := s.getForMutation(ctx, postID, userID)
	if err != nil {
		return err
	}

	if err := s.posts.DeletePost(ctx, postID); err != nil {
		return err
	}

	s.media.Release(ctx, existing.ImageFileRef)
	return nil
}

// getForMutation resolves the post and applies the shared ownership check,
// in that order.
func (s *PostService) getForMutation(ctx context.Context, postID, userID int64) (*model.Post, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := authorizeMutation(post, userID); err != nil {
		return nil, err
	}
	return post, nil
}

func authorizeMutation(post *model.Post, userID int64) error {
	if post.AuthorID != userID {
		return ErrForbidden
	}
	return nil
}

func (s *PostService) view(post *model.Post) *model.PostView {
	return &model.PostView{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		ImageURL:  s.media.URL(post.ImageFileRef),
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt,
		Author:    model.PostAuthor{Username: post.AuthorUsername},
	}
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"github.com/thoughtcloud/thoughtcloud/internal/config"
	"github.com/thoughtcloud/thoughtcloud/internal/model"
	"github.com/thoughtcloud/thoughtcloud/internal/service"
)

// memStore backs both the user and post store interfaces for handler tests,
// mimicking the db package's contract (pgx.ErrNoRows, pg unique violations).
type memStore struct {
	users      map[int64]*model.User
	nextUserID int64
	posts      map[int64]*model.Post
	nextPostID int64
}

func newMemStore() *memStore {
	return &memStore{
		users: map[int64]*model.User{},
		posts: map[int64]*model.Post{},
	}
}

func (s *memStore) CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	s.nextUserID++
	user := &model.User{
		ID:           s.nextUserID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *memStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *memStore) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	if u, ok := s.users[userID]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *memStore) CreatePost(ctx context.Context, title, content, imageRef string, authorID int64) (*model.Post, error) {
	author, err := s.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	s.nextPostID++
	post := &model.Post{
		ID:             s.nextPostID,
		Title:          title,
		Content:        content,
		ImageFileRef:   imageRef,
		AuthorID:       authorID,
		AuthorUsername: author.Username,
		CreatedAt:      time.Now(),
	}
	s.posts[post.ID] = post
	copied := *post
	return &copied, nil
}

func (s *memStore) GetPost(ctx context.Context, postID int64) (*model.Post, error) {
	post, ok := s.posts[postID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *post
	return &copied, nil
}

func (s *memStore) ListPosts(ctx context.Context) ([]model.Post, error) {
	posts := []model.Post{}
	for _, post := range s.posts {
		posts = append(posts, *post)
	}
	return posts, nil
}

func (s *memStore) UpdatePost(ctx context.Context, postID int64, title, content, imageRef string) (*model.Post, error) {
	post, ok := s.posts[postID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	post.Title = title
	post.Content = content
	post.ImageFileRef = imageRef
	copied := *post
	return &copied, nil
}

func (s *memStore) DeletePost(ctx context.Context, postID int64) error {
	delete(s.posts, postID)
	return nil
}

// newTestRouter wires real services over in-memory stores and a temp upload
// dir, mounted exactly as cmd/server does.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemStore()

	authSvc, err := service.NewAuthService(store, config.AuthConfig{JWTSecret: "test-secret", TokenTTL: "720h"})
	require.NoError(t, err)

	blobStore, err := service.NewLocalBlobStore(config.MediaConfig{UploadDir: t.TempDir()})
	require.NoError(t, err)
	mediaSvc := service.NewMediaService(blobStore, "http://localhost:8080")
	postSvc := service.NewPostService(store, mediaSvc)

	authHandler := NewAuthHandler(authSvc)
	postHandler := NewPostHandler(postSvc)

	r := gin.New()
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.GET("/auth/user", authHandler.Me)
	r.GET("/posts", postHandler.List)
	r.GET("/posts/:id", postHandler.Get)

	authed := r.Group("", AuthMiddleware(authSvc))
	authed.POST("/posts", postHandler.Create)
	authed.PUT("/posts/:id", postHandler.Update)
	authed.DELETE("/posts/:id", postHandler.Delete)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doPostForm(t *testing.T, r *gin.Engine, method, path, token string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, r *gin.Engine, username string) model.RegisterResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/auth/register", "", model.Credentials{
		Username: username,
		Password: "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp model.RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

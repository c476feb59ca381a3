package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thoughtcloud/thoughtcloud/internal/model"
)

// The full ownership flow: A creates a post, B cannot mutate it, A can.
func TestPostOwnershipEndToEnd(t *testing.T) {
	r := newTestRouter(t)

	alice := registerUser(t, r, "alice")
	bob := registerUser(t, r, "bob")

	w := doPostForm(t, r, http.MethodPost, "/posts", alice.Token, map[string]string{
		"title":   "alice's post",
		"content": "hello",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var post model.PostView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Equal(t, alice.ID, post.AuthorID)
	assert.Equal(t, "alice", post.Author.Username)
	assert.Nil(t, post.ImageURL)

	postPath := fmt.Sprintf("/posts/%d", post.ID)

	w = doPostForm(t, r, http.MethodPut, postPath, bob.Token, map[string]string{
		"title": "hijacked",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doPostForm(t, r, http.MethodPut, postPath, alice.Token, map[string]string{
		"title": "updated title",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated model.PostView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "updated title", updated.Title)
	assert.Equal(t, "hello", updated.Content)

	w = doJSON(t, r, http.MethodDelete, postPath, bob.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, postPath, alice.Token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, postPath, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePostRequiresToken(t *testing.T) {
	r := newTestRouter(t)

	w := doPostForm(t, r, http.MethodPost, "/posts", "", map[string]string{
		"title":   "title",
		"content": "content",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreatePostValidatesFields(t *testing.T) {
	r := newTestRouter(t)
	alice := registerUser(t, r, "alice")

	w := doPostForm(t, r, http.MethodPost, "/posts", alice.Token, map[string]string{
		"title": "no content",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMutateMissingPostIsNotFound(t *testing.T) {
	r := newTestRouter(t)
	alice := registerUser(t, r, "alice")

	w := doPostForm(t, r, http.MethodPut, "/posts/99", alice.Token, map[string]string{
		"title": "ghost",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/posts/99", alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAndGetArePublic(t *testing.T) {
	r := newTestRouter(t)
	alice := registerUser(t, r, "alice")

	w := doPostForm(t, r, http.MethodPost, "/posts", alice.Token, map[string]string{
		"title":   "public post",
		"content": "anyone can read this",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/posts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var posts []model.PostView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "public post", posts[0].Title)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/posts/%d", posts[0].ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetUnknownPostIsNotFound(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/posts/99", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/posts/not-a-number", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

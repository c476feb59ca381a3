package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thoughtcloud/thoughtcloud/internal/service"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// List godoc
// @Summary List all posts
// @Tags posts
// @Produce json
// @Success 200 {array} model.PostView
// @Failure 500 {object} model.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Get godoc
// @Summary Get a post by id
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} model.PostView
// @Failure 404 {object} model.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	postID, err := postIDParam(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	post, err := h.svc.Get(c.Request.Context(), postID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param content formData string true "Content"
// @Param image formData file false "Image (jpeg/png, max 5 MiB)"
// @Success 201 {object} model.PostView
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	upload, cleanup, err := formUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad upload"})
		return
	}
	defer cleanup()

	post, err := h.svc.Create(c.Request.Context(), user.ID, c.PostForm("title"), c.PostForm("content"), upload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// Update godoc
// @Summary Update a post
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param title formData string false "Title"
// @Param content formData string false "Content"
// @Param image formData file false "Image (jpeg/png, max 5 MiB)"
// @Success 200 {object} model.PostView
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /posts/{id} [put]
func (h *PostHandler) Update(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	postID, err := postIDParam(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	upload, cleanup, err := formUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad upload"})
		return
	}
	defer cleanup()

	post, err := h.svc.Update(c.Request.Context(), postID, user.ID, c.PostForm("title"), c.PostForm("content"), upload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Delete godoc
// @Summary Delete a post
// @Tags posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	postID, err := postIDParam(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), postID, user.ID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func postIDParam(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// formUpload extracts the optional "image" part of a multipart request.
// A request without an image part yields a nil upload, not an error.
func formUpload(c *gin.Context) (*service.Upload, func(), error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}

	upload := &service.Upload{
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Data:        f,
	}
	return upload, func() { f.Close() }, nil
}

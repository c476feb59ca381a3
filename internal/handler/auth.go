package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thoughtcloud/thoughtcloud/internal/model"
	"github.com/thoughtcloud/thoughtcloud/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.Credentials true "Username and password"
// @Success 201 {object} model.RegisterResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, token, err := h.svc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
		Token:    token,
	})
}

// Login godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.Credentials true "Username and password"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{
		Token: token,
		User:  model.AuthUser{ID: user.ID, Username: user.Username},
	})
}

// Me godoc
// @Summary Get current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AuthUser
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /auth/user [get]
//
// Me does its own header parsing instead of using the middleware: a missing
// token, an invalid token, and a vanished user each map to a distinct status.
func (h *AuthHandler) Me(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
		return
	}

	user, err := h.svc.ResolveUser(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid token"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// writeError maps service sentinels to the fixed status codes of the API.
// Duplicate usernames surface as 400, matching the original register contract.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid username or password"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": "user already exists"})
	case errors.Is(err, service.ErrUnsupportedMedia):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported media type"})
	case errors.Is(err, service.ErrTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: not your post"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}

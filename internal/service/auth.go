package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/thoughtcloud/thoughtcloud/internal/config"
	"github.com/thoughtcloud/thoughtcloud/internal/db"
	"github.com/thoughtcloud/thoughtcloud/internal/model"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrConflict           = errors.New("conflict")
	ErrMisconfigured      = errors.New("auth config invalid")

	// Verify failure modes. Callers that need to distinguish a bad
	// signature from an expired or undecodable token match on these.
	ErrBadSignature   = errors.New("invalid token signature")
	ErrExpiredToken   = errors.New("token expired")
	ErrMalformedToken = errors.New("malformed token")
)

// UserStore is the persistence surface AuthService needs. Missing rows are
// reported as pgx.ErrNoRows (see db.IsNoRows).
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
}

// AuthService issues and verifies stateless bearer tokens and owns the
// register/login flows. Tokens are HS256 JWTs carrying the user id as the
// subject; validity is purely signature + expiry, there is no revocation list.
type AuthService struct {
	users     UserStore
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(users UserStore, cfg config.AuthConfig) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	tokenTTL, err := time.ParseDuration(cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid TOKEN_TTL", ErrMisconfigured)
	}

	return &AuthService{
		users:     users,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  tokenTTL,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.CreateUser(ctx, username, string(hash))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, "", ErrConflict
		}
		return nil, "", err
	}

	token, err := s.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Issue signs a token embedding userID with the configured expiry horizon.
func (s *AuthService) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// Verify returns the embedded user id. Callers must still confirm the user
// exists before trusting the identity (see ResolveUser).
func (s *AuthService) Verify(tokenStr string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadSignature
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, ErrBadSignature
		default:
			return 0, ErrMalformedToken
		}
	}
	if !token.Valid {
		return 0, ErrMalformedToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrMalformedToken
	}
	return userID, nil
}

// ResolveUser verifies the token and re-resolves the user row. A token whose
// user no longer exists fails with ErrNotFound rather than yielding a stale
// identity.
func (s *AuthService) ResolveUser(ctx context.Context, tokenStr string) (*model.AuthUser, error) {
	userID, err := s.Verify(tokenStr)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, err
	}

	return &model.AuthUser{ID: user.ID, Username: user.Username}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

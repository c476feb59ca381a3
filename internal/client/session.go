package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/thoughtcloud/thoughtcloud/internal/model"
)

// CredentialStore persists the bearer token between sessions.
type CredentialStore interface {
	LoadToken() (string, error)
	SaveToken(token string) error
	ClearToken() error
}

// Session holds the current auth state. Login and Register replace the state
// on success and leave it untouched on failure; Restore silently logs out on
// any verification failure instead of surfacing a blocking error.
type Session struct {
	api   *Client
	creds CredentialStore

	User  *model.AuthUser
	Token string
}

func NewSession(api *Client, creds CredentialStore) *Session {
	return &Session{api: api, creds: creds}
}

func (s *Session) Login(username, password string) error {
	resp, err := s.api.Login(username, password)
	if err != nil {
		return err
	}

	s.User = &resp.User
	s.Token = resp.Token
	return s.creds.SaveToken(resp.Token)
}

func (s *Session) Register(username, password string) error {
	resp, err := s.api.Register(username, password)
	if err != nil {
		return err
	}

	s.User = &model.AuthUser{ID: resp.ID, Username: resp.Username}
	s.Token = resp.Token
	return s.creds.SaveToken(resp.Token)
}

// Restore re-derives the user from a stored token. Any failure (missing
// token, expired, tampered, user gone) leaves the session logged out.
func (s *Session) Restore() error {
	token, err := s.creds.LoadToken()
	if err != nil || token == "" {
		s.clear()
		return nil
	}

	user, err := s.api.CurrentUser(token)
	if err != nil {
		s.clear()
		return nil
	}

	s.User = user
	s.Token = token
	return nil
}

// Logout clears the session unconditionally; calling it twice is fine.
func (s *Session) Logout() {
	s.clear()
}

func (s *Session) clear() {
	s.User = nil
	s.Token = ""
	_ = s.creds.ClearToken()
}

func (s *Session) IsAuthenticated() bool {
	return s.User != nil
}

// IsAuthor is the UI-affordance mirror of the server's ownership check; the
// server re-checks independently on every mutation.
func (s *Session) IsAuthor(post *model.PostView) bool {
	return s.User != nil && post.AuthorID == s.User.ID
}

// FileCredentialStore keeps the token in a JSON file under the user config
// dir.
type FileCredentialStore struct {
	path string
}

type storedCredentials struct {
	Token string `json:"token"`
}

func NewFileCredentialStore(path string) *FileCredentialStore {
	return &FileCredentialStore{path: path}
}

func (s *FileCredentialStore) LoadToken() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}

	var creds storedCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", err
	}
	return creds.Token, nil
}

func (s *FileCredentialStore) SaveToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.Marshal(storedCredentials{Token: token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileCredentialStore) ClearToken() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

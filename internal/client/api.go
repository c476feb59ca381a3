// HTTP client for the ThoughtCloud REST API.
//
// Environment:
//   - THOUGHTCLOUD_API: API base URL (default http://localhost:8080)

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"time"

	"github.com/thoughtcloud/thoughtcloud/internal/model"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// APIError carries the status code and the server's error message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Register(username, password string) (*model.RegisterResponse, error) {
	var resp model.RegisterResponse
	if err := c.doJSON(http.MethodPost, "/auth/register", "", model.Credentials{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(username, password string) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	if err := c.doJSON(http.MethodPost, "/auth/login", "", model.Credentials{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CurrentUser(token string) (*model.AuthUser, error) {
	var resp model.AuthUser
	if err := c.doJSON(http.MethodGet, "/auth/user", token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListPosts() ([]model.PostView, error) {
	var resp []model.PostView
	if err := c.doJSON(http.MethodGet, "/posts", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetPost(postID int64) (*model.PostView, error) {
	var resp model.PostView
	if err := c.doJSON(http.MethodGet, fmt.Sprintf("/posts/%d", postID), "", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreatePost sends a multipart form; imagePath may be empty for a text-only
// post.
func (c *Client) CreatePost(token, title, content, imagePath string) (*model.PostView, error) {
	return c.sendPostForm(http.MethodPost, "/posts", token, title, content, imagePath)
}

func (c *Client) UpdatePost(token string, postID int64, title, content, imagePath string) (*model.PostView, error) {
	return c.sendPostForm(http.MethodPut, fmt.Sprintf("/posts/%d", postID), token, title, content, imagePath)
}

func (c *Client) DeletePost(token string, postID int64) error {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+fmt.Sprintf("/posts/%d", postID), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return apiError(resp)
	}
	return nil
}

func (c *Client) sendPostForm(method, path, token, title, content, imagePath string) (*model.PostView, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("title", title); err != nil {
		return nil, err
	}
	if err := w.WriteField("content", content); err != nil {
		return nil, err
	}

	if imagePath != "" {
		if err := writeImagePart(w, imagePath); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp)
	}

	var post model.PostView
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &post, nil
}

func writeImagePart(w *multipart.Writer, imagePath string) error {
	f, err := os.Open(imagePath)
	if err != nil {
		return err
	}
	defer f.Close()

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filepath.Base(imagePath)))
	header.Set("Content-Type", imageContentType(imagePath))

	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}

func imageContentType(path string) string {
	switch filepath.Ext(path) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

func (c *Client) doJSON(method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func apiError(resp *http.Response) error {
	var body model.ErrorResponse
	message := resp.Status
	data, err := io.ReadAll(resp.Body)
	if err == nil && json.Unmarshal(data, &body) == nil && body.Error != "" {
		message = body.Error
	}
	return &APIError{Status: resp.StatusCode, Message: message}
}

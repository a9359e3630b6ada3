// Package httpapi is the REST client for the note-scribe server. It
// implements the lifecycle Repository so the controller never sees HTTP.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"note-scribe/internal/lifecycle"
)

// AssetUploader sends raw image payloads straight to the asset host,
// bypassing the note-scribe server.
type AssetUploader interface {
	Upload(ctx context.Context, payload string) (string, error)
}

// User is the wire representation of an account.
type User struct {
	ID        string `json:"_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type wireNote struct {
	ID              string    `json:"_id"`
	UserID          string    `json:"userId"`
	Title           string    `json:"title"`
	Content         string    `json:"noteContent"`
	IsFavorite      bool      `json:"isFavorite"`
	IsVoiceRecorded bool      `json:"noteIsRecorded"`
	Images          []string  `json:"images"`
	CreatedAt       time.Time `json:"creationDate"`
}

type envelope struct {
	Success     bool       `json:"success"`
	Message     string     `json:"message"`
	User        *User      `json:"user"`
	Notes       []wireNote `json:"notes"`
	Note        *wireNote  `json:"note"`
	UpdatedNote *wireNote  `json:"updatedNote"`
}

// Client talks to the server over its JSON surface. The session cookie set
// by log-in is carried automatically by the underlying cookie jar.
type Client struct {
	baseURL  string
	http     *http.Client
	uploader AssetUploader
	log      *slog.Logger
}

// New creates a client for the given server base URL.
func New(baseURL string, uploader AssetUploader, log *slog.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
		uploader: uploader,
		log:      log,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: encode request: %v", lifecycle.ErrRepository, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", lifecycle.ErrRepository, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", lifecycle.ErrRepository, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error("failed to close response body", "error", cerr)
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", lifecycle.ErrRepository, err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("%w: decode response: %v", lifecycle.ErrRepository, err)
		}
	}

	if resp.StatusCode >= 400 {
		return nil, statusError(resp.StatusCode, env.Message)
	}

	return &env, nil
}

// statusError maps HTTP status codes to the lifecycle error taxonomy.
func statusError(status int, message string) error {
	if message == "" {
		message = http.StatusText(status)
	}
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", lifecycle.ErrValidation, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", lifecycle.ErrNotFound, message)
	case http.StatusBadGateway:
		// The server answers 502 when the asset host rejected an upload.
		return fmt.Errorf("%w: %s", lifecycle.ErrUpload, message)
	default:
		return fmt.Errorf("%w: server returned %d: %s", lifecycle.ErrRepository, status, message)
	}
}

func toLifecycleNote(w wireNote) lifecycle.Note {
	return lifecycle.Note{
		ID:              w.ID,
		OwnerID:         w.UserID,
		Title:           w.Title,
		Body:            w.Content,
		IsFavorite:      w.IsFavorite,
		IsVoiceRecorded: w.IsVoiceRecorded,
		Images:          w.Images,
		CreatedAt:       w.CreatedAt,
	}
}

func toWireFields(fields lifecycle.NoteFields) map[string]any {
	images := fields.Images
	if images == nil {
		images = []string{}
	}
	return map[string]any{
		"userId":         fields.OwnerID,
		"title":          fields.Title,
		"noteContent":    fields.Body,
		"isFavorite":     fields.IsFavorite,
		"noteIsRecorded": fields.IsVoiceRecorded,
		"images":         images,
	}
}

// SignUp registers a new account and establishes a session.
func (c *Client) SignUp(ctx context.Context, username, email, password string) (*User, error) {
	env, err := c.do(ctx, http.MethodPost, "/sign-up", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// LogIn establishes a session; the cookie jar keeps the token.
func (c *Client) LogIn(ctx context.Context, email, password string) (*User, error) {
	env, err := c.do(ctx, http.MethodPost, "/log-in", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// LogOut drops the session on the server and in the jar.
func (c *Client) LogOut(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/log-out", nil)
	return err
}

// FetchUser returns the account behind the current session cookie.
func (c *Client) FetchUser(ctx context.Context) (*User, error) {
	env, err := c.do(ctx, http.MethodGet, "/fetch-user", nil)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// ListForOwner implements lifecycle.Repository.
func (c *Client) ListForOwner(ctx context.Context, ownerID string, scope lifecycle.Scope) ([]lifecycle.Note, error) {
	path := "/notes"
	if scope == lifecycle.ScopeFavorites {
		path = "/favorite"
	}
	path += "?userId=" + url.QueryEscape(ownerID)

	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	out := make([]lifecycle.Note, 0, len(env.Notes))
	for _, w := range env.Notes {
		out = append(out, toLifecycleNote(w))
	}
	return out, nil
}

// Create implements lifecycle.Repository.
func (c *Client) Create(ctx context.Context, fields lifecycle.NoteFields) (*lifecycle.Note, error) {
	env, err := c.do(ctx, http.MethodPost, "/notes", toWireFields(fields))
	if err != nil {
		return nil, err
	}
	if env.Note == nil {
		return nil, fmt.Errorf("%w: response missing note", lifecycle.ErrRepository)
	}
	n := toLifecycleNote(*env.Note)
	return &n, nil
}

// Update implements lifecycle.Repository.
func (c *Client) Update(ctx context.Context, id string, fields lifecycle.NoteFields) (*lifecycle.Note, error) {
	env, err := c.do(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), toWireFields(fields))
	if err != nil {
		return nil, err
	}
	if env.UpdatedNote == nil {
		return nil, fmt.Errorf("%w: response missing updated note", lifecycle.ErrRepository)
	}
	n := toLifecycleNote(*env.UpdatedNote)
	return &n, nil
}

// Delete implements lifecycle.Repository.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil)
	return err
}

// UploadAsset implements lifecycle.Repository by delegating to the asset
// host client.
func (c *Client) UploadAsset(ctx context.Context, payload string) (string, error) {
	if c.uploader == nil {
		return "", fmt.Errorf("%w: no asset uploader configured", lifecycle.ErrUpload)
	}
	hosted, err := c.uploader.Upload(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", lifecycle.ErrUpload, err)
	}
	return hosted, nil
}

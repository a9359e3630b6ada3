// Package cloudinary uploads inline image payloads to the configured
// asset host and returns stable retrieval URLs.
package cloudinary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"note-scribe/internal/config"

	"github.com/oklog/ulid/v2"
)

// ErrEmptyPayload is returned when an upload is attempted with no data.
var ErrEmptyPayload = errors.New("upload payload is empty")

// Uploader implements notes.Uploader against an unsigned upload endpoint.
type Uploader struct {
	endpoint string
	folder   string
	client   *http.Client
	log      *slog.Logger
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// New creates an uploader from config. The endpoint is the full unsigned
// upload URL of the asset host.
func New(cfg config.Config, log *slog.Logger) *Uploader {
	return &Uploader{
		endpoint: cfg.UploadURL,
		folder:   cfg.UploadFolder,
		client: &http.Client{
			Timeout: time.Duration(cfg.UploadTimeoutSec) * time.Second,
		},
		log: log,
	}
}

// Upload sends one raw payload (a data URI or base64 image) and returns its
// hosted URL. Uploads are retryable; each call gets a fresh public id.
func (u *Uploader) Upload(ctx context.Context, payload string) (string, error) {
	if strings.TrimSpace(payload) == "" {
		return "", ErrEmptyPayload
	}

	form := url.Values{}
	form.Set("file", payload)
	form.Set("folder", u.folder)
	form.Set("public_id", ulid.Make().String())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			u.log.Error("failed to close upload response body", "error", cerr)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read upload response: %w", err)
	}

	var parsed uploadResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := parsed.Error.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("upload rejected: %s", msg)
	}

	hosted := parsed.SecureURL
	if hosted == "" {
		hosted = parsed.URL
	}
	if hosted == "" {
		return "", errors.New("upload response missing asset url")
	}

	return hosted, nil
}

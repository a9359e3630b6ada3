package cloudinary

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"note-scribe/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var silentLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestUploader(endpoint string) *Uploader {
	return New(config.Config{
		UploadURL:        endpoint,
		UploadFolder:     "notes",
		UploadTimeoutSec: 5,
	}, silentLogger)
}

func TestUploaderUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "data:image/png;base64,AAAA", r.PostFormValue("file"))
		assert.Equal(t, "notes", r.PostFormValue("folder"))
		assert.NotEmpty(t, r.PostFormValue("public_id"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://cdn.example.com/notes/abc.png"}`))
	}))
	defer srv.Close()

	u := newTestUploader(srv.URL)

	hosted, err := u.Upload(context.Background(), "data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/notes/abc.png", hosted)
}

func TestUploaderFreshPublicIDPerCall(t *testing.T) {
	seen := make(map[string]struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		seen[r.PostFormValue("public_id")] = struct{}{}
		_, _ = w.Write([]byte(`{"secure_url":"https://cdn.example.com/x.png"}`))
	}))
	defer srv.Close()

	u := newTestUploader(srv.URL)

	for range 3 {
		_, err := u.Upload(context.Background(), "payload")
		require.NoError(t, err)
	}

	assert.Len(t, seen, 3, "every upload gets its own public id")
}

func TestUploaderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid image file"}}`))
	}))
	defer srv.Close()

	u := newTestUploader(srv.URL)

	_, err := u.Upload(context.Background(), "not-an-image")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid image file")
}

func TestUploaderEmptyPayload(t *testing.T) {
	u := newTestUploader("http://127.0.0.1:0")

	_, err := u.Upload(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

func TestUploaderMissingAssetURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	u := newTestUploader(srv.URL)

	_, err := u.Upload(context.Background(), "payload")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing asset url")
}

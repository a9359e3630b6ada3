package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"note-scribe/internal/lifecycle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var silentLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, nil, silentLogger)
	require.NoError(t, err)
	return c, srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write([]byte(body))
	require.NoError(t, err)
}

func TestClientListForOwner(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/notes":
			assert.Equal(t, "u1", r.URL.Query().Get("userId"))
			writeJSON(t, w, http.StatusOK, `{"success":true,"notes":[
				{"_id":"n1","userId":"u1","title":"A","noteContent":"hello","isFavorite":true,
				 "noteIsRecorded":false,"images":["https://cdn.example.com/a.png"],
				 "creationDate":"2025-03-01T12:00:00Z"}]}`)
		case "/favorite":
			writeJSON(t, w, http.StatusOK, `{"success":true,"notes":[]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	got, err := c.ListForOwner(context.Background(), "u1", lifecycle.ScopeAll)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "n1", got[0].ID)
	assert.Equal(t, "u1", got[0].OwnerID)
	assert.Equal(t, "hello", got[0].Body)
	assert.True(t, got[0].IsFavorite)
	assert.Equal(t, 2025, got[0].CreatedAt.Year())

	favs, err := c.ListForOwner(context.Background(), "u1", lifecycle.ScopeFavorites)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestClientCreate(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/notes", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "u1", body["userId"])
		assert.Equal(t, "A", body["title"])
		assert.Equal(t, "hello", body["noteContent"])
		assert.Equal(t, []any{}, body["images"], "nil images marshal as an empty array")

		writeJSON(t, w, http.StatusCreated, `{"success":true,"note":
			{"_id":"n1","userId":"u1","title":"A","noteContent":"hello",
			 "creationDate":"2025-03-01T12:00:00Z"}}`)
	}))

	note, err := c.Create(context.Background(), lifecycle.NoteFields{
		OwnerID: "u1",
		Title:   "A",
		Body:    "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "n1", note.ID)
	assert.Equal(t, "A", note.Title)
}

func TestClientUpdate(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/notes/n1", r.URL.Path)
		writeJSON(t, w, http.StatusOK, `{"success":true,"updatedNote":
			{"_id":"n1","userId":"u1","title":"B","noteContent":"edited",
			 "creationDate":"2025-03-01T12:00:00Z"}}`)
	}))

	note, err := c.Update(context.Background(), "n1", lifecycle.NoteFields{
		OwnerID: "u1",
		Title:   "B",
		Body:    "edited",
	})
	require.NoError(t, err)
	assert.Equal(t, "B", note.Title)
	assert.Equal(t, "edited", note.Body)
}

func TestClientDelete(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/notes/n1", r.URL.Path)
		writeJSON(t, w, http.StatusOK, `{"success":true,"message":"note deleted"}`)
	}))

	assert.NoError(t, c.Delete(context.Background(), "n1"))
}

func TestClientErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"bad request", http.StatusBadRequest, `{"success":false,"message":"title is required"}`, lifecycle.ErrValidation},
		{"not found", http.StatusNotFound, `{"success":false,"message":"note not found"}`, lifecycle.ErrNotFound},
		{"server error", http.StatusInternalServerError, `{"success":false,"message":"boom"}`, lifecycle.ErrRepository},
		{"upload rejected upstream", http.StatusBadGateway, `{"success":false,"message":"failed to upload images"}`, lifecycle.ErrUpload},
		{"empty body", http.StatusServiceUnavailable, ``, lifecycle.ErrRepository},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(t, w, tt.status, tt.body)
			}))

			err := c.Delete(context.Background(), "n1")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClientSessionCookieRoundTrip(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/log-in":
			http.SetCookie(w, &http.Cookie{Name: "token", Value: "jwt-value", Path: "/"})
			writeJSON(t, w, http.StatusOK, `{"success":true,"user":{"_id":"u1","email":"a@b.c"}}`)
		case "/fetch-user":
			cookie, err := r.Cookie("token")
			require.NoError(t, err, "session cookie must be sent back")
			assert.Equal(t, "jwt-value", cookie.Value)
			writeJSON(t, w, http.StatusOK, `{"success":true,"user":{"_id":"u1","email":"a@b.c"}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	user, err := c.LogIn(context.Background(), "a@b.c", "Password123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)

	fetched, err := c.FetchUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "a@b.c", fetched.Email)
}

type stubUploader struct {
	url string
	err error
}

func (s stubUploader) Upload(context.Context, string) (string, error) {
	return s.url, s.err
}

func TestClientUploadAsset(t *testing.T) {
	t.Run("delegates to the asset uploader", func(t *testing.T) {
		c, err := New("http://unused", stubUploader{url: "https://cdn.example.com/a.png"}, silentLogger)
		require.NoError(t, err)

		hosted, err := c.UploadAsset(context.Background(), "raw")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/a.png", hosted)
	})

	t.Run("without an uploader", func(t *testing.T) {
		c, err := New("http://unused", nil, silentLogger)
		require.NoError(t, err)

		_, err = c.UploadAsset(context.Background(), "raw")
		assert.ErrorIs(t, err, lifecycle.ErrUpload)
	})
}

//go:build !short

package mongo

import (
	"context"
	"testing"
	"time"

	"note-scribe/internal/services/notes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func getTestNoteStruct(userID bson.ObjectID, title string, favorite bool) *notes.Note {
	return &notes.Note{
		ID:         bson.NewObjectID(),
		UserID:     userID,
		Title:      title,
		Content:    "some content",
		IsFavorite: favorite,
		Images:     []string{},
	}
}

func TestNotesRepoCreateAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping MongoDB integration test")
	}

	ctx := context.Background()
	_, db, cleanup := setupTestDB(t)
	defer cleanup()

	repo, err := NewNotesRepo(ctx, db)
	require.NoError(t, err)

	userID := bson.NewObjectID()

	first := getTestNoteStruct(userID, "first", false)
	require.NoError(t, repo.Create(ctx, first))
	assert.False(t, first.CreatedAt.IsZero(), "Create must stamp CreatedAt")

	// Force distinct timestamps so ordering is deterministic.
	second := getTestNoteStruct(userID, "second", true)
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, repo.Create(ctx, second))

	// A different user's note must not leak into the listing.
	other := getTestNoteStruct(bson.NewObjectID(), "other", false)
	require.NoError(t, repo.Create(ctx, other))

	all, err := repo.ListByOwner(ctx, userID, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "second", all[0].Title, "newest first")
	assert.Equal(t, "first", all[1].Title)

	favorites, err := repo.ListByOwner(ctx, userID, true)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "second", favorites[0].Title)
}

func TestNotesRepoUpdate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping MongoDB integration test")
	}

	ctx := context.Background()
	_, db, cleanup := setupTestDB(t)
	defer cleanup()

	repo, err := NewNotesRepo(ctx, db)
	require.NoError(t, err)

	note := getTestNoteStruct(bson.NewObjectID(), "before", false)
	require.NoError(t, repo.Create(ctx, note))

	updated, err := repo.Update(ctx, note.ID, notes.NoteFields{
		Title:      "after",
		Content:    "new content",
		IsFavorite: true,
		Images:     []string{"https://cdn.example.com/a.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "new content", updated.Content)
	assert.True(t, updated.IsFavorite)
	assert.Equal(t, []string{"https://cdn.example.com/a.png"}, updated.Images)
	assert.Equal(t, note.CreatedAt.Unix(), updated.CreatedAt.Unix(), "CreatedAt is immutable")

	_, err = repo.Update(ctx, bson.NewObjectID(), notes.NoteFields{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, notes.ErrNoteNotFound)
}

func TestNotesRepoDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping MongoDB integration test")
	}

	ctx := context.Background()
	_, db, cleanup := setupTestDB(t)
	defer cleanup()

	repo, err := NewNotesRepo(ctx, db)
	require.NoError(t, err)

	note := getTestNoteStruct(bson.NewObjectID(), "doomed", false)
	require.NoError(t, repo.Create(ctx, note))

	require.NoError(t, repo.Delete(ctx, note.ID))

	err = repo.Delete(ctx, note.ID)
	assert.ErrorIs(t, err, notes.ErrNoteNotFound)

	remaining, err := repo.ListByOwner(ctx, note.UserID, false)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

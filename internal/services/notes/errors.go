package notes

import "errors"

// ErrNoteNotFound - note not found in the store.
var ErrNoteNotFound = errors.New("note not found")

// ErrTitleRequired is returned when the title is empty after trimming.
var ErrTitleRequired = errors.New("title is required")

// ErrContentRequired is returned when the note content is empty after trimming.
var ErrContentRequired = errors.New("note content is required")

// ErrUploadFailed is returned when any image upload fails; the whole save is
// aborted and nothing is persisted.
var ErrUploadFailed = errors.New("failed to upload images")

// ErrCreateNote is returned when note creation fails.
var ErrCreateNote = errors.New("failed to create note")

// ErrUpdateNote is returned when note update fails.
var ErrUpdateNote = errors.New("failed to update note")

// ErrDeleteNote is returned when note deletion fails.
var ErrDeleteNote = errors.New("failed to delete note")

// ErrListNotes is returned when notes listing fails.
var ErrListNotes = errors.New("failed to list notes")

// ErrCreateNotesRepo is returned when notes repository creation fails.
var ErrCreateNotesRepo = errors.New("failed to create notes repository")

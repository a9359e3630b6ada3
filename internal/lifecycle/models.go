package lifecycle

import "time"

// Scope selects whether the active view covers all notes or only favorites.
type Scope int

const (
	ScopeAll Scope = iota
	ScopeFavorites
)

// SortDirection orders the derived view by creation time.
// Descending (newest first) matches the default presentation.
type SortDirection int

const (
	Descending SortDirection = iota
	Ascending
)

// Note is the client-side representation of a persisted note.
// ID and CreatedAt are assigned by the store and immutable thereafter.
type Note struct {
	ID              string
	OwnerID         string
	Title           string
	Body            string
	IsFavorite      bool
	IsVoiceRecorded bool
	Images          []string
	CreatedAt       time.Time
}

// NoteFields carries the editable fields of a note to the repository.
type NoteFields struct {
	OwnerID         string
	Title           string
	Body            string
	IsFavorite      bool
	IsVoiceRecorded bool
	Images          []string
}

// Draft is the transient working copy of a note being edited.
// NoteID is empty for a new, unsaved note. A draft is never persisted
// directly; only its validated fields are sent to the repository.
type Draft struct {
	NoteID          string
	Title           string
	Body            string
	IsFavorite      bool
	IsVoiceRecorded bool
	Images          []string
}

func (d *Draft) clone() Draft {
	cp := *d
	cp.Images = append([]string(nil), d.Images...)
	return cp
}

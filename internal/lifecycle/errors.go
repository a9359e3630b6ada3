package lifecycle

import "errors"

// ErrValidation is returned for bad or missing input. Always recoverable;
// no state is mutated and no repository call is made.
var ErrValidation = errors.New("validation failed")

// ErrNotFound is returned when the target note id is absent.
var ErrNotFound = errors.New("note not found")

// ErrUpload is returned when an asset upload fails. The whole save is
// aborted and the draft is preserved.
var ErrUpload = errors.New("asset upload failed")

// ErrRepository is returned for store or transport failures. Unexpected
// errors are folded into it so a failure never crashes the session.
var ErrRepository = errors.New("repository failure")

// ErrImageIndex is returned when an image index is out of bounds.
var ErrImageIndex = errors.New("image index out of bounds")

// ErrNoDraft is returned when a draft operation is issued with no open draft.
var ErrNoDraft = errors.New("no draft is open")

// ErrCapabilityUnavailable is returned when an injected capability
// (speech capture, clipboard, share sink) was not provided.
var ErrCapabilityUnavailable = errors.New("capability unavailable")

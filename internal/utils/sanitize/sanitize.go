package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict is a cached bluemonday policy that removes all HTML tags and attributes.
// It's safe for concurrent use as bluemonday.Policy is read-only after build.
// WARNING: Never call mutating helpers (e.g. AddAttr, AllowElements) on this policy
// after initialization as it would create a data race.
var strict = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true) // Prevents word concatenation
	return p
}()

// Strip removes all HTML from arbitrary user input while preserving readability.
//
// All note titles and content must pass through the sanitizer before hitting
// the store. Repositories assume already-sanitized input.
func Strip(s string) string {
	return strict.Sanitize(s)
}

// Clean strips HTML and normalizes whitespace for clean storage.
//
// It performs the following steps:
//  1. Strips all HTML tags while preserving spacing
//  2. Trims leading/trailing whitespace
//  3. Unescapes HTML entities for clean plaintext
//  4. Collapses runs of spaces while preserving newlines
//  5. Normalizes non-breaking spaces to regular spaces
func Clean(s string) string {
	sanitized := strict.Sanitize(s)
	sanitized = strings.TrimSpace(sanitized)

	// Unescape entities first so &#13; and friends become single chars
	sanitized = html.UnescapeString(sanitized)

	// Non-breaking spaces hurt substring search; normalize them
	sanitized = strings.ReplaceAll(sanitized, " ", " ")

	lines := strings.Split(sanitized, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	sanitized = strings.Join(lines, "\n")

	return sanitized
}

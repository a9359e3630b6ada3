package lifecycle

import (
	"slices"
	"strings"
)

// DeriveView returns collection filtered by a case-insensitive substring
// match against title or body and ordered by CreatedAt. It is a pure
// function of its inputs: equal inputs yield equal results, and ties in
// CreatedAt keep their original relative order (stable sort).
func DeriveView(collection []Note, query string, dir SortDirection) []Note {
	q := strings.ToLower(query)

	view := make([]Note, 0, len(collection))
	for _, n := range collection {
		if q == "" ||
			strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Body), q) {
			view = append(view, n)
		}
	}

	slices.SortStableFunc(view, func(a, b Note) int {
		if dir == Ascending {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return view
}

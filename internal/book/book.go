package book

import (
	"errors"
)

// ErrNotFound is returned when no book matches the given id.
var ErrNotFound = errors.New("book not found")

// Book represents one catalog entry.
type Book struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	PublishedYear *int   `json:"published_year"`
}

// Fields holds every writable column of a book. Create and Update both take
// the full set; Update overwrites all of them.
type Fields struct {
	Title         string
	Author        string
	ISBN          string
	PublishedYear *int
}

// Filter narrows a search. Empty values impose no constraint.
type Filter struct {
	Title  string
	Author string
	ISBN   string
}

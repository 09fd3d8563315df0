// Package bookmark holds the bookmark entity and the request payloads
// accepted by the bookmark endpoints.
//
// A Bookmark is a flat record: id, title, url, description and rating.
// The id is assigned by the database on insert and never changes afterwards.
package bookmark

// Bookmark is a row of the bookmarks table, as stored.
//
// Text fields hold exactly what the client sent. They are sanitized on the
// way out (see Response), never on the way in.
type Bookmark struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	URL         string `json:"url" db:"url"`
	Description string `json:"description" db:"description"`
	Rating      int    `json:"rating" db:"rating"`
}

// NewBookmark is a validated, normalized record ready to be inserted.
// It has no ID because the store assigns one.
type NewBookmark struct {
	Title       string
	URL         string
	Description string
	Rating      int
}

// Response is the externally safe representation of a Bookmark.
//
// Title, URL and Description have been passed through the sanitizer.
// ID and Rating are copied unchanged.
type Response struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Rating      int    `json:"rating"`
}

// MinRating and MaxRating bound the accepted rating, inclusive.
const (
	MinRating = 0
	MaxRating = 5
)

package bookmark

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ------------------------------------------------------------

// ListBookmarksRequest is the (empty) payload of GET /bookmarks.
type ListBookmarksRequest struct{}

func (r *ListBookmarksRequest) Validate() error {
	return nil
}

// ParamsOnly tells the binder to skip the request body.
func (r *ListBookmarksRequest) ParamsOnly() bool {
	return true
}

// ------------------------------------------------------------

// BookmarkIDRequest carries the :id path parameter of single-bookmark routes.
//
// A non-numeric id never reaches Validate: the binder rejects it with 400.
type BookmarkIDRequest struct {
	ID int64 `param:"id" validate:"min=1"`
}

func (r *BookmarkIDRequest) Validate() error {
	return validate.Struct(r)
}

func (r *BookmarkIDRequest) ParamsOnly() bool {
	return true
}

// UpdateBookmarkRequest is the payload of PATCH /bookmarks/:id.
//
// Updates are accepted but not applied, so any body is ignored.
type UpdateBookmarkRequest struct {
	BookmarkIDRequest
}

// ------------------------------------------------------------

// CreateBookmarkRequest is the payload of POST /bookmarks.
//
// Fields are deliberately loose: pointers tell "absent/null" apart from
// empty, and Rating keeps whatever JSON value the client sent so the error
// message can echo it back verbatim.
type CreateBookmarkRequest struct {
	Title       *string `json:"title"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	Rating      any     `json:"rating"`
}

// Validate checks the payload in a fixed order and returns the first failure:
//
//  1. title, url, rating must be present (title must also be non-blank)
//  2. rating must be an integer in [MinRating, MaxRating]
//  3. url must start with http:// or https://
//
// The returned error is always a *ValidationError.
func (r *CreateBookmarkRequest) Validate() error {
	if r.Title == nil || strings.TrimSpace(*r.Title) == "" {
		return missingField("title")
	}
	if r.URL == nil {
		return missingField("url")
	}
	if r.Rating == nil {
		return missingField("rating")
	}

	if _, ok := parseRating(r.Rating); !ok {
		return invalidRating(r.Rating)
	}

	if !strings.HasPrefix(*r.URL, "http://") && !strings.HasPrefix(*r.URL, "https://") {
		return invalidURL(*r.URL)
	}

	return nil
}

// NewBookmark returns the normalized record for a payload that passed Validate.
// A missing description becomes the empty string.
func (r *CreateBookmarkRequest) NewBookmark() NewBookmark {
	rating, _ := parseRating(r.Rating)

	nb := NewBookmark{
		Title:  *r.Title,
		URL:    *r.URL,
		Rating: rating,
	}
	if r.Description != nil {
		nb.Description = *r.Description
	}
	return nb
}

// parseRating accepts only JSON numbers with no fractional part inside the
// allowed range. Strings such as "5" are rejected, like any other non-number.
func parseRating(v any) (int, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < MinRating || f > MaxRating {
		return 0, false
	}
	return int(f), true
}

// formatValue renders a received JSON value the way the client wrote it:
// strings bare, numbers without exponent noise, objects/arrays as JSON.
func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case bool, int, int64:
		return fmt.Sprint(val)
	case nil:
		return "null"
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

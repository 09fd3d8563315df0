package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/deppfellow/bookmarks/internal/config"
	"github.com/deppfellow/bookmarks/internal/errs"
	"github.com/deppfellow/bookmarks/internal/handler"
	"github.com/deppfellow/bookmarks/internal/model/bookmark"
	"github.com/deppfellow/bookmarks/internal/repository"
	"github.com/deppfellow/bookmarks/internal/sanitize"
	"github.com/deppfellow/bookmarks/internal/server"
	"github.com/deppfellow/bookmarks/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory service.BookmarkStore.
type memoryStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]bookmark.Bookmark
	err    error
}

func newMemoryStore(seed ...bookmark.Bookmark) *memoryStore {
	s := &memoryStore{rows: map[int64]bookmark.Bookmark{}}
	for _, b := range seed {
		s.rows[b.ID] = b
		if b.ID > s.nextID {
			s.nextID = b.ID
		}
	}
	return s
}

func (s *memoryStore) ListAll(_ context.Context) ([]bookmark.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	out := make([]bookmark.Bookmark, 0, len(s.rows))
	for _, b := range s.rows {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memoryStore) GetByID(_ context.Context, id int64) (*bookmark.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	b, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (s *memoryStore) Insert(_ context.Context, nb bookmark.NewBookmark) (*bookmark.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	s.nextID++
	b := bookmark.Bookmark{
		ID:          s.nextID,
		Title:       nb.Title,
		URL:         nb.URL,
		Description: nb.Description,
		Rating:      nb.Rating,
	}
	s.rows[b.ID] = b
	return &b, nil
}

func (s *memoryStore) DeleteByID(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}

	if _, ok := s.rows[id]; !ok {
		return 0, nil
	}
	delete(s.rows, id)
	return 1, nil
}

func fixtures() []bookmark.Bookmark {
	return []bookmark.Bookmark{
		{ID: 1, Title: "Thinkful", URL: "https://www.thinkful.com", Description: "Think outside the classroom", Rating: 5},
		{ID: 2, Title: "Google", URL: "https://www.google.com", Description: "Where we find everything else", Rating: 4},
		{ID: 3, Title: "MDN", URL: "https://developer.mozilla.org", Description: "The only place to find web documentation", Rating: 5},
	}
}

func newTestRouter(t *testing.T, store *memoryStore) *echo.Echo {
	t.Helper()

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			CORSAllowedOrigins: []string{"*"},
		},
		Observability: config.DefaultObservabilityConfig(),
	}

	logger := zerolog.Nop()
	srv := &server.Server{Config: cfg, Logger: &logger}

	bookmarkService := service.NewBookmarkService(store, sanitize.NewPolicy())
	handlers := &handler.Handlers{
		Health:   handler.NewHealthHandler(srv),
		OpenAPI:  handler.NewOpenAPIHandler(srv),
		Bookmark: handler.NewBookmarkHandler(srv, bookmarkService),
	}

	return NewRouter(srv, handlers)
}

func do(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.Response {
	t.Helper()

	var res errs.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotNil(t, res.Error)
	return res
}

func TestListBookmarks(t *testing.T) {
	t.Run("empty store returns an empty array", func(t *testing.T) {
		e := newTestRouter(t, newMemoryStore())

		rec := do(t, e, http.MethodGet, "/bookmarks", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("returns every bookmark", func(t *testing.T) {
		e := newTestRouter(t, newMemoryStore(fixtures()...))

		rec := do(t, e, http.MethodGet, "/bookmarks", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got []bookmark.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 3)
		assert.Equal(t, "Thinkful", got[0].Title)
		assert.Equal(t, int64(3), got[2].ID)
	})

	t.Run("store failure is a generic 500", func(t *testing.T) {
		store := newMemoryStore()
		store.err = errors.New("connection refused")
		e := newTestRouter(t, store)

		rec := do(t, e, http.MethodGet, "/bookmarks", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		res := decodeError(t, rec)
		assert.Equal(t, "Internal Server Error", res.Message)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestGetBookmark(t *testing.T) {
	t.Run("existing id", func(t *testing.T) {
		e := newTestRouter(t, newMemoryStore(fixtures()...))

		rec := do(t, e, http.MethodGet, "/bookmarks/2", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got bookmark.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, bookmark.Response{
			ID:          2,
			Title:       "Google",
			URL:         "https://www.google.com",
			Description: "Where we find everything else",
			Rating:      4,
		}, got)
	})

	t.Run("missing id is a 404 with message", func(t *testing.T) {
		e := newTestRouter(t, newMemoryStore())

		rec := do(t, e, http.MethodGet, "/bookmarks/2", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		res := decodeError(t, rec)
		assert.Equal(t, "bookmark id 2 does not exist", res.Message)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("non-numeric id is a 400", func(t *testing.T) {
		e := newTestRouter(t, newMemoryStore(fixtures()...))

		rec := do(t, e, http.MethodGet, "/bookmarks/abc", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("zero id is a 400", func(t *testing.T) {
		e := newTestRouter(t, newMemoryStore(fixtures()...))

		rec := do(t, e, http.MethodGet, "/bookmarks/0", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		res := decodeError(t, rec)
		require.Len(t, res.Error.Errors, 1)
		assert.Equal(t, "id", res.Error.Errors[0].Field)
	})
}

func TestCreateBookmark(t *testing.T) {
	t.Run("stores and echoes the bookmark", func(t *testing.T) {
		store := newMemoryStore()
		e := newTestRouter(t, store)

		rec := do(t, e, http.MethodPost, "/bookmarks",
			`{"title":"New title","url":"http://www.newplace.com","description":"New desc...","rating":5}`)

		require.Equal(t, http.StatusCreated, rec.Code)

		var got bookmark.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.NotZero(t, got.ID)
		assert.Equal(t, "New title", got.Title)
		assert.Equal(t, "http://www.newplace.com", got.URL)
		assert.Equal(t, "New desc...", got.Description)
		assert.Equal(t, 5, got.Rating)
		assert.Equal(t, "/bookmarks/1", rec.Header().Get(echo.HeaderLocation))

		fetched := do(t, e, http.MethodGet, rec.Header().Get(echo.HeaderLocation), "")
		require.Equal(t, http.StatusOK, fetched.Code)
		assert.JSONEq(t, rec.Body.String(), fetched.Body.String())
	})

	t.Run("description defaults to empty", func(t *testing.T) {
		e := newTestRouter(t, newMemoryStore())

		rec := do(t, e, http.MethodPost, "/bookmarks", `{"title":"t","url":"https://x.io","rating":0}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		var got bookmark.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "", got.Description)
		assert.Equal(t, 0, got.Rating)
	})

	tests := []struct {
		name    string
		body    string
		code    string
		message string
		field   string
	}{
		{
			name:    "missing title",
			body:    `{"url":"https://x.io","rating":1}`,
			code:    "MISSING_FIELD",
			message: "Missing 'title' in request body",
			field:   "title",
		},
		{
			name:    "title checked before url and rating",
			body:    `{}`,
			code:    "MISSING_FIELD",
			message: "Missing 'title' in request body",
			field:   "title",
		},
		{
			name:    "missing url",
			body:    `{"title":"t","rating":1}`,
			code:    "MISSING_FIELD",
			message: "Missing 'url' in request body",
			field:   "url",
		},
		{
			name:    "null rating",
			body:    `{"title":"t","url":"https://x.io","rating":null}`,
			code:    "MISSING_FIELD",
			message: "Missing 'rating' in request body",
			field:   "rating",
		},
		{
			name:    "rating as word",
			body:    `{"title":"t","url":"https://x.io","rating":"five"}`,
			code:    "INVALID_RATING",
			message: "Rating must be a number between 0 and 5, received five",
			field:   "rating",
		},
		{
			name:    "rating out of range",
			body:    `{"title":"t","url":"https://x.io","rating":6}`,
			code:    "INVALID_RATING",
			message: "Rating must be a number between 0 and 5, received 6",
			field:   "rating",
		},
		{
			name:    "rating checked before url",
			body:    `{"title":"t","url":"ftp://x.io","rating":-1}`,
			code:    "INVALID_RATING",
			message: "Rating must be a number between 0 and 5, received -1",
			field:   "rating",
		},
		{
			name:    "bad url scheme",
			body:    `{"title":"t","url":"htp://x.io","rating":3}`,
			code:    "INVALID_URL",
			message: "URL must begin with http(s)://",
			field:   "url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			e := newTestRouter(t, store)

			rec := do(t, e, http.MethodPost, "/bookmarks", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			res := decodeError(t, rec)
			assert.Equal(t, tt.message, res.Error.Message)
			assert.Equal(t, tt.code, res.Error.Code)
			require.Len(t, res.Error.Errors, 1)
			assert.Equal(t, tt.field, res.Error.Errors[0].Field)
			assert.Empty(t, store.rows)
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		e := newTestRouter(t, newMemoryStore())

		rec := do(t, e, http.MethodPost, "/bookmarks", `{"title":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateBookmarkSanitizesOnRead(t *testing.T) {
	store := newMemoryStore()
	e := newTestRouter(t, store)

	title := `Naughty naughty very naughty <script>alert("xss");</script>`
	description := `Bad image <img src="https://url.to.file.which/does-not.exist" onerror="alert(document.cookie);">. But not <strong>all</strong> bad.`

	body, err := json.Marshal(map[string]any{
		"title":       title,
		"url":         "https://url.to.file.which/does-not.exist",
		"description": description,
		"rating":      1,
	})
	require.NoError(t, err)

	rec := do(t, e, http.MethodPost, "/bookmarks", string(body))
	require.Equal(t, http.StatusCreated, rec.Code)

	// stored untouched
	assert.Equal(t, title, store.rows[1].Title)

	rec = do(t, e, http.MethodGet, "/bookmarks/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got bookmark.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, `Naughty naughty very naughty &lt;script&gt;alert(&#34;xss&#34;);&lt;/script&gt;`, got.Title)
	assert.Equal(t, `Bad image <img src="https://url.to.file.which/does-not.exist">. But not <strong>all</strong> bad.`, got.Description)
}

func TestDeleteBookmark(t *testing.T) {
	store := newMemoryStore(fixtures()...)
	e := newTestRouter(t, store)

	rec := do(t, e, http.MethodDelete, "/bookmarks/2", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/bookmarks", "")
	var got []bookmark.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)

	rec = do(t, e, http.MethodDelete, "/bookmarks/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "bookmark id 2 does not exist", decodeError(t, rec).Message)
}

func TestUpdateBookmark(t *testing.T) {
	t.Run("accepted without changes", func(t *testing.T) {
		store := newMemoryStore(fixtures()...)
		e := newTestRouter(t, store)

		rec := do(t, e, http.MethodPatch, "/bookmarks/1", `{"title":"changed"}`)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "Thinkful", store.rows[1].Title)
	})

	t.Run("any body is ignored", func(t *testing.T) {
		e := newTestRouter(t, newMemoryStore(fixtures()...))

		rec := do(t, e, http.MethodPatch, "/bookmarks/1", `not json`)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing id", func(t *testing.T) {
		e := newTestRouter(t, newMemoryStore())

		rec := do(t, e, http.MethodPatch, "/bookmarks/9", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSystemRoutes(t *testing.T) {
	e := newTestRouter(t, newMemoryStore())

	t.Run("unknown route", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/nope", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Route not found", decodeError(t, rec).Message)
	})

	t.Run("status without database", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/status", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"unhealthy"`)
	})

	t.Run("docs page", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/docs", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
		assert.Contains(t, rec.Body.String(), "/static/openapi.json")
	})

	t.Run("openapi document", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/static/openapi.json", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		assert.Contains(t, doc["paths"], "/bookmarks/{id}")
	})

	t.Run("request id is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/bookmarks", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
	})
}

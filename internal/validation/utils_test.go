package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/bookmarks/internal/errs"
	"github.com/deppfellow/bookmarks/internal/middleware"
	"github.com/deppfellow/bookmarks/internal/model/bookmark"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method, body string, params map[string]string) echo.Context {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	c := echo.New().NewContext(req, httptest.NewRecorder())
	for name, value := range params {
		c.SetParamNames(name)
		c.SetParamValues(value)
	}
	return c
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	return httpErr
}

func TestBindAndValidateCreate(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		c := newContext(http.MethodPost, `{"title":"t","url":"https://a.io","rating":2}`, nil)
		req := &bookmark.CreateBookmarkRequest{}

		require.NoError(t, BindAndValidate(c, req))
		assert.Equal(t, "t", *req.Title)
	})

	t.Run("bookmark validation error keeps its kind", func(t *testing.T) {
		c := newContext(http.MethodPost, `{"title":"t","url":"https://a.io","rating":"five"}`, nil)

		httpErr := asHTTPError(t, BindAndValidate(c, &bookmark.CreateBookmarkRequest{}))

		assert.Equal(t, "INVALID_RATING", httpErr.Code)
		assert.Equal(t, "Rating must be a number between 0 and 5, received five", httpErr.Message)
		assert.True(t, httpErr.Override)
		assert.Equal(t, []errs.FieldError{{Field: "rating", Error: httpErr.Message}}, httpErr.Errors)
	})

	t.Run("malformed body", func(t *testing.T) {
		c := newContext(http.MethodPost, `{"title":`, nil)

		httpErr := asHTTPError(t, BindAndValidate(c, &bookmark.CreateBookmarkRequest{}))

		assert.Equal(t, "BAD_REQUEST", httpErr.Code)
		assert.NotEmpty(t, httpErr.Message)
	})
}

func TestBindAndValidateParams(t *testing.T) {
	t.Run("id bound from path", func(t *testing.T) {
		c := newContext(http.MethodGet, "", map[string]string{"id": "42"})
		req := &bookmark.BookmarkIDRequest{}

		require.NoError(t, BindAndValidate(c, req))
		assert.Equal(t, int64(42), req.ID)
	})

	t.Run("body ignored for params-only payloads", func(t *testing.T) {
		c := newContext(http.MethodPatch, `garbage`, map[string]string{"id": "1"})
		req := &bookmark.UpdateBookmarkRequest{}

		require.NoError(t, BindAndValidate(c, req))
		assert.Equal(t, int64(1), req.ID)
	})

	t.Run("id below one", func(t *testing.T) {
		c := newContext(http.MethodGet, "", map[string]string{"id": "0"})

		httpErr := asHTTPError(t, BindAndValidate(c, &bookmark.BookmarkIDRequest{}))

		assert.Equal(t, "Validation failed", httpErr.Message)
		assert.Equal(t, []errs.FieldError{{Field: "id", Error: "must be at least 1"}}, httpErr.Errors)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		c := newContext(http.MethodGet, "", map[string]string{"id": "abc"})

		asHTTPError(t, BindAndValidate(c, &bookmark.BookmarkIDRequest{}))
	})
}

func TestBindAndValidateLogsRejectedValue(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		kind  string
		field string
		value string
		msg   string
	}{
		{
			name:  "rating",
			body:  `{"title":"t","url":"https://a.io","rating":"five"}`,
			kind:  "INVALID_RATING",
			field: "rating",
			value: "five",
			msg:   "Rating must be a number between 0 and 5, received five",
		},
		{
			name:  "url",
			body:  `{"title":"t","url":"ftp://x.io","rating":1}`,
			kind:  "INVALID_URL",
			field: "url",
			value: "ftp://x.io",
			msg:   "URL must begin with http(s)://",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := zerolog.New(&buf)
			c := newContext(http.MethodPost, tt.body, nil)
			c.Set(middleware.LoggerKey, &l)

			require.Error(t, BindAndValidate(c, &bookmark.CreateBookmarkRequest{}))

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "error", entry["level"])
			assert.Equal(t, tt.kind, entry["kind"])
			assert.Equal(t, tt.field, entry["field"])
			assert.Equal(t, tt.value, entry["value"])
			assert.Equal(t, tt.msg, entry["message"])
		})
	}
}

func TestBindAndValidateMissingFieldLogged(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	c := newContext(http.MethodPost, `{"url":"https://a.io","rating":1}`, nil)
	c.Set(middleware.LoggerKey, &l)

	require.Error(t, BindAndValidate(c, &bookmark.CreateBookmarkRequest{}))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "MISSING_FIELD", entry["kind"])
	assert.Equal(t, "title", entry["field"])
	assert.Nil(t, entry["value"])
}

type failing struct{}

func (failing) Validate() error { return errors.New("nope") }

func TestBindAndValidateOtherErrors(t *testing.T) {
	c := newContext(http.MethodPost, `{}`, nil)

	httpErr := asHTTPError(t, BindAndValidate(c, &failing{}))

	assert.Equal(t, "Validation failed: nope", httpErr.Message)
}

package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/bookmarks/internal/errs"
	"github.com/deppfellow/bookmarks/internal/middleware"
	"github.com/deppfellow/bookmarks/internal/model/bookmark"
	"github.com/deppfellow/bookmarks/internal/repository"
	"github.com/deppfellow/bookmarks/internal/sanitize"
	"github.com/deppfellow/bookmarks/internal/sqlerr"
	"github.com/labstack/echo/v4"
)

// BookmarkStore is the persistence the service needs.
// *repository.BookmarkRepository satisfies it.
type BookmarkStore interface {
	ListAll(ctx context.Context) ([]bookmark.Bookmark, error)
	GetByID(ctx context.Context, id int64) (*bookmark.Bookmark, error)
	Insert(ctx context.Context, nb bookmark.NewBookmark) (*bookmark.Bookmark, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

// BookmarkService validates nothing itself: payloads arrive validated from
// the handler. It talks to the store and serializes what comes back.
type BookmarkService struct {
	store     BookmarkStore
	sanitizer sanitize.Sanitizer
}

func NewBookmarkService(store BookmarkStore, sanitizer sanitize.Sanitizer) *BookmarkService {
	return &BookmarkService{
		store:     store,
		sanitizer: sanitizer,
	}
}

// List returns every bookmark, serialized. Never nil.
func (s *BookmarkService) List(c echo.Context) ([]bookmark.Response, error) {
	logger := middleware.GetLogger(c)

	bookmarks, err := s.store.ListAll(c.Request().Context())
	if err != nil {
		logger.Error().Err(err).Msg("failed to list bookmarks")
		return nil, sqlerr.HandleError(err)
	}

	out := make([]bookmark.Response, 0, len(bookmarks))
	for _, b := range bookmarks {
		out = append(out, s.serialize(b))
	}

	return out, nil
}

// Get returns one bookmark or a 404.
func (s *BookmarkService) Get(c echo.Context, id int64) (*bookmark.Response, error) {
	logger := middleware.GetLogger(c)

	b, err := s.store.GetByID(c.Request().Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			logger.Error().Int64("bookmark_id", id).Msg("bookmark not found")
			return nil, notFound(id)
		}
		logger.Error().Err(err).Int64("bookmark_id", id).Msg("failed to get bookmark")
		return nil, sqlerr.HandleError(err)
	}

	res := s.serialize(*b)
	return &res, nil
}

// Create stores nb and returns the serialized row, id included.
func (s *BookmarkService) Create(c echo.Context, nb bookmark.NewBookmark) (*bookmark.Response, error) {
	logger := middleware.GetLogger(c)

	b, err := s.store.Insert(c.Request().Context(), nb)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create bookmark")
		return nil, sqlerr.HandleError(err)
	}

	logger.Info().Int64("bookmark_id", b.ID).Msg("bookmark created")

	res := s.serialize(*b)
	return &res, nil
}

// Delete removes the bookmark. An id that matched no row is a 404, so a
// second delete of the same id fails instead of silently succeeding.
func (s *BookmarkService) Delete(c echo.Context, id int64) error {
	logger := middleware.GetLogger(c)

	n, err := s.store.DeleteByID(c.Request().Context(), id)
	if err != nil {
		logger.Error().Err(err).Int64("bookmark_id", id).Msg("failed to delete bookmark")
		return sqlerr.HandleError(err)
	}

	if n == 0 {
		logger.Error().Int64("bookmark_id", id).Msg("bookmark not found")
		return notFound(id)
	}

	logger.Info().Int64("bookmark_id", id).Msg("bookmark deleted")
	return nil
}

// Update only checks that the bookmark exists. Field changes are not
// supported yet; the request is accepted and nothing is written.
func (s *BookmarkService) Update(c echo.Context, id int64) error {
	logger := middleware.GetLogger(c)

	if _, err := s.Get(c, id); err != nil {
		return err
	}

	logger.Warn().Int64("bookmark_id", id).Msg("bookmark update is a no-op")
	return nil
}

func (s *BookmarkService) serialize(b bookmark.Bookmark) bookmark.Response {
	return bookmark.Response{
		ID:          b.ID,
		Title:       s.sanitizer.Sanitize(b.Title),
		URL:         s.sanitizer.Sanitize(b.URL),
		Description: s.sanitizer.Sanitize(b.Description),
		Rating:      b.Rating,
	}
}

func notFound(id int64) *errs.HTTPError {
	return errs.NewNotFoundError(fmt.Sprintf("bookmark id %d does not exist", id), true, nil)
}

package handler

import (
	"fmt"

	"github.com/deppfellow/bookmarks/internal/model/bookmark"
	"github.com/deppfellow/bookmarks/internal/server"
	"github.com/deppfellow/bookmarks/internal/service"
	"github.com/labstack/echo/v4"
)

// BookmarkHandler serves the /bookmarks routes.
type BookmarkHandler struct {
	Handler
	bookmarkService *service.BookmarkService
}

func NewBookmarkHandler(s *server.Server, bookmarkService *service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{
		Handler:         NewHandler(s),
		bookmarkService: bookmarkService,
	}
}

func (h *BookmarkHandler) ListBookmarks(c echo.Context, _ *bookmark.ListBookmarksRequest) ([]bookmark.Response, error) {
	return h.bookmarkService.List(c)
}

func (h *BookmarkHandler) GetBookmark(c echo.Context, req *bookmark.BookmarkIDRequest) (*bookmark.Response, error) {
	return h.bookmarkService.Get(c, req.ID)
}

// CreateBookmark answers 201 with the stored bookmark and points Location
// at it.
func (h *BookmarkHandler) CreateBookmark(c echo.Context, req *bookmark.CreateBookmarkRequest) (*bookmark.Response, error) {
	res, err := h.bookmarkService.Create(c, req.NewBookmark())
	if err != nil {
		return nil, err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/bookmarks/%d", res.ID))
	return res, nil
}

func (h *BookmarkHandler) DeleteBookmark(c echo.Context, req *bookmark.BookmarkIDRequest) error {
	return h.bookmarkService.Delete(c, req.ID)
}

func (h *BookmarkHandler) UpdateBookmark(c echo.Context, req *bookmark.UpdateBookmarkRequest) error {
	return h.bookmarkService.Update(c, req.ID)
}

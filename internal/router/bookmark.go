package router

import (
	"net/http"

	"github.com/deppfellow/bookmarks/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerBookmarkRoutes(r *echo.Echo, h *handler.Handlers) {
	b := h.Bookmark
	bookmarks := r.Group("/bookmarks")

	bookmarks.GET("", handler.Handle(b.Handler, b.ListBookmarks, http.StatusOK))
	bookmarks.POST("", handler.Handle(b.Handler, b.CreateBookmark, http.StatusCreated))

	bookmarks.GET("/:id", handler.Handle(b.Handler, b.GetBookmark, http.StatusOK))
	bookmarks.DELETE("/:id", handler.HandleNoContent(b.Handler, b.DeleteBookmark, http.StatusNoContent))
	bookmarks.PATCH("/:id", handler.HandleNoContent(b.Handler, b.UpdateBookmark, http.StatusNoContent))
}

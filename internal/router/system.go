package router

import (
	"github.com/deppfellow/bookmarks/internal/handler"
	"github.com/deppfellow/bookmarks/static"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes adds the endpoints that are not about bookmarks:
// health, the docs page and its static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.StaticFS("/static", static.Files)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}

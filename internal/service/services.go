package service

import (
	"github.com/deppfellow/bookmarks/internal/repository"
	"github.com/deppfellow/bookmarks/internal/sanitize"
	"github.com/deppfellow/bookmarks/internal/server"
)

// Services is a container for all service instances handed to the handlers.
type Services struct {
	Bookmark *BookmarkService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	bookmarkService := NewBookmarkService(repos.Bookmark, sanitize.NewPolicy())

	return &Services{
		Bookmark: bookmarkService,
	}, nil
}

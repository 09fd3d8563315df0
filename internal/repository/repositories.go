package repository

import (
	"github.com/deppfellow/bookmarks/internal/server"
)

// Repositories is a container for all repository instances, built once at
// start-up and handed to the service layer.
type Repositories struct {
	Bookmark *BookmarkRepository
}

// NewRepositories binds every repository to the shared database pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Bookmark: NewBookmarkRepository(s.DB.Pool),
	}
}

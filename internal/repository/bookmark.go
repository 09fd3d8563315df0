package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/bookmarks/internal/model/bookmark"
	"github.com/jackc/pgx/v5"
)

const bookmarkColumns = "id, title, url, description, rating"

// BookmarkRepository runs the four bookmark queries against a single table.
type BookmarkRepository struct {
	db DBTX
}

// NewBookmarkRepository returns a repository bound to db.
func NewBookmarkRepository(db DBTX) *BookmarkRepository {
	if db == nil {
		panic("nil DBTX passed to NewBookmarkRepository")
	}
	return &BookmarkRepository{db: db}
}

func scanBookmark(row pgx.CollectableRow) (bookmark.Bookmark, error) {
	var b bookmark.Bookmark
	err := row.Scan(&b.ID, &b.Title, &b.URL, &b.Description, &b.Rating)
	return b, err
}

// ListAll returns every bookmark, ordered by id. The slice is empty, not
// nil, when the table is empty.
func (r *BookmarkRepository) ListAll(ctx context.Context) ([]bookmark.Bookmark, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookmarkColumns+` FROM bookmarks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	bookmarks, err := pgx.CollectRows(rows, scanBookmark)
	if err != nil {
		return nil, fmt.Errorf("failed to scan bookmarks: %w", err)
	}
	if bookmarks == nil {
		bookmarks = []bookmark.Bookmark{}
	}

	return bookmarks, nil
}

// GetByID returns the bookmark with the given id, or ErrNotFound.
func (r *BookmarkRepository) GetByID(ctx context.Context, id int64) (*bookmark.Bookmark, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookmarkColumns+` FROM bookmarks WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark %d: %w", id, err)
	}

	b, err := pgx.CollectOneRow(rows, scanBookmark)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan bookmark %d: %w", id, err)
	}

	return &b, nil
}

// Insert persists nb and returns the stored row with its new id.
func (r *BookmarkRepository) Insert(ctx context.Context, nb bookmark.NewBookmark) (*bookmark.Bookmark, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO bookmarks (title, url, description, rating)
		VALUES ($1, $2, $3, $4)
		RETURNING `+bookmarkColumns,
		nb.Title, nb.URL, nb.Description, nb.Rating,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert bookmark: %w", err)
	}

	b, err := pgx.CollectOneRow(rows, scanBookmark)
	if err != nil {
		return nil, fmt.Errorf("failed to insert bookmark: %w", err)
	}

	return &b, nil
}

// DeleteByID removes the bookmark and reports how many rows went away:
// 1 when it existed, 0 when it did not.
func (r *BookmarkRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookmarks WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookmark %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

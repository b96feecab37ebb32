package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nvoss/linkstash/internal/domain"
)

// BookmarkRepository handles bookmark data access
type BookmarkRepository struct {
	db *DB
}

// NewBookmarkRepository creates a new bookmark repository
func NewBookmarkRepository(db *DB) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

const bookmarkColumns = `id, user_id, workspace_id, folder_id, url, title, description, notes,
	is_private, is_favorite, is_archived, favicon_url, image_url, site_name, author, published_at,
	created_at, updated_at`

func scanBookmark(row pgx.Row) (*domain.Bookmark, error) {
	var b domain.Bookmark
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.WorkspaceID,
		&b.FolderID,
		&b.URL,
		&b.Title,
		&b.Description,
		&b.Notes,
		&b.IsPrivate,
		&b.IsFavorite,
		&b.IsArchived,
		&b.Metadata.FaviconURL,
		&b.Metadata.ImageURL,
		&b.Metadata.SiteName,
		&b.Metadata.Author,
		&b.Metadata.PublishedAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create creates a new bookmark
func (r *BookmarkRepository) Create(ctx context.Context, bookmark *domain.Bookmark) error {
	query := `
		INSERT INTO bookmarks (` + bookmarkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		bookmark.ID,
		bookmark.UserID,
		bookmark.WorkspaceID,
		bookmark.FolderID,
		bookmark.URL,
		bookmark.Title,
		bookmark.Description,
		bookmark.Notes,
		bookmark.IsPrivate,
		bookmark.IsFavorite,
		bookmark.IsArchived,
		bookmark.Metadata.FaviconURL,
		bookmark.Metadata.ImageURL,
		bookmark.Metadata.SiteName,
		bookmark.Metadata.Author,
		bookmark.Metadata.PublishedAt,
		bookmark.CreatedAt,
		bookmark.UpdatedAt,
	)
	if err != nil {
		return conflictOn(fmt.Errorf("failed to create bookmark: %w", err), "bookmark already exists")
	}

	return nil
}

// GetByID retrieves a bookmark by ID
func (r *BookmarkRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bookmark, error) {
	query := `SELECT ` + bookmarkColumns + ` FROM bookmarks WHERE id = $1`

	bookmark, err := scanBookmark(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}

	return bookmark, nil
}

// Update updates a bookmark
func (r *BookmarkRepository) Update(ctx context.Context, bookmark *domain.Bookmark) error {
	query := `
		UPDATE bookmarks
		SET folder_id = $2,
		    title = $3,
		    description = $4,
		    notes = $5,
		    is_private = $6,
		    is_favorite = $7,
		    is_archived = $8,
		    updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.Pool.Exec(ctx, query,
		bookmark.ID,
		bookmark.FolderID,
		bookmark.Title,
		bookmark.Description,
		bookmark.Notes,
		bookmark.IsPrivate,
		bookmark.IsFavorite,
		bookmark.IsArchived,
	)
	if err != nil {
		return fmt.Errorf("failed to update bookmark: %w", err)
	}

	return nil
}

// listBookmarksQuery builds the SELECT for a bookmark listing. WorkspaceID
// absent means the user's personal scope; archived bookmarks are excluded
// unless requested; "shared" restricts to workspace-scoped non-private
// rows; other members' private rows never appear in a workspace listing.
func listBookmarksQuery(userID uuid.UUID, filter domain.BookmarkFilter) (string, []any) {
	query := `SELECT ` + bookmarkColumns + ` FROM bookmarks WHERE 1=1`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	switch {
	case filter.WorkspaceID != nil:
		query += ` AND workspace_id = ` + arg(*filter.WorkspaceID)
		query += ` AND (is_private = FALSE OR user_id = ` + arg(userID) + `)`
	case filter.Filter == domain.FilterShared:
		// Shared without an explicit workspace spans every workspace
		// the user belongs to.
		query += ` AND workspace_id IN (
			SELECT workspace_id FROM workspace_members WHERE user_id = ` + arg(userID) + `
		)`
	default:
		query += ` AND workspace_id IS NULL AND user_id = ` + arg(userID)
	}

	if filter.FolderID != nil {
		query += ` AND folder_id = ` + arg(*filter.FolderID)
	}

	if filter.IsPrivate != nil {
		query += ` AND is_private = ` + arg(*filter.IsPrivate)
	}

	if !filter.IncludeArchived {
		query += ` AND is_archived = FALSE`
	}

	switch filter.Filter {
	case domain.FilterFavorites:
		query += ` AND is_favorite = TRUE`
	case domain.FilterShared:
		query += ` AND workspace_id IS NOT NULL AND is_private = FALSE`
	}

	query += ` ORDER BY created_at DESC`
	query += ` LIMIT ` + arg(filter.Limit)
	query += ` OFFSET ` + arg(filter.Offset)

	return query, args
}

// List retrieves bookmarks matching the filter
func (r *BookmarkRepository) List(ctx context.Context, userID uuid.UUID, filter domain.BookmarkFilter) ([]domain.Bookmark, error) {
	query, args := listBookmarksQuery(userID, filter)

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []domain.Bookmark
	for rows.Next() {
		bookmark, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, *bookmark)
	}

	return bookmarks, nil
}

// SetTags replaces the bookmark's tag links
func (r *BookmarkRepository) SetTags(ctx context.Context, bookmarkID uuid.UUID, tagIDs []uuid.UUID) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM bookmark_tags WHERE bookmark_id = $1`, bookmarkID); err != nil {
		return fmt.Errorf("failed to clear bookmark tags: %w", err)
	}

	for _, tagID := range tagIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO bookmark_tags (bookmark_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, bookmarkID, tagID)
		if err != nil {
			return fmt.Errorf("failed to link tag: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListTagsFor retrieves the tags of each given bookmark
func (r *BookmarkRepository) ListTagsFor(ctx context.Context, bookmarkIDs []uuid.UUID) (map[uuid.UUID][]domain.Tag, error) {
	if len(bookmarkIDs) == 0 {
		return map[uuid.UUID][]domain.Tag{}, nil
	}

	query := `
		SELECT bt.bookmark_id, t.id, t.user_id, t.name, t.created_at
		FROM bookmark_tags bt
		INNER JOIN tags t ON t.id = bt.tag_id
		WHERE bt.bookmark_id = ANY($1)
		ORDER BY t.name ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, bookmarkIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmark tags: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]domain.Tag)
	for rows.Next() {
		var bookmarkID uuid.UUID
		var tag domain.Tag
		if err := rows.Scan(&bookmarkID, &tag.ID, &tag.UserID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark tag: %w", err)
		}
		result[bookmarkID] = append(result[bookmarkID], tag)
	}

	return result, nil
}

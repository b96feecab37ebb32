package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nvoss/linkstash/internal/domain"
	"github.com/nvoss/linkstash/internal/security"
)

// TagRepository handles tag data access
type TagRepository struct {
	db *DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *DB) *TagRepository {
	return &TagRepository{db: db}
}

// GetOrCreate upserts a tag by case-insensitive name within one
// transaction: attempt the insert, and when the unique index on
// (user_id, lower(name)) reports an existing row, re-fetch it. The name
// is stored trimmed so whitespace variants collide on the index; the
// casing of the first write is what gets stored.
func (r *TagRepository) GetOrCreate(ctx context.Context, userID uuid.UUID, name string) (*domain.Tag, bool, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag := domain.Tag{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now(),
	}

	created := true
	err = tx.QueryRow(ctx, `
		INSERT INTO tags (id, user_id, name, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, lower(name)) DO NOTHING
		RETURNING id
	`, tag.ID, tag.UserID, tag.Name, tag.CreatedAt).Scan(&tag.ID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, false, fmt.Errorf("failed to upsert tag: %w", err)
		}
		// Insert lost to an existing row; re-fetch it within the same
		// transaction.
		created = false
		err = tx.QueryRow(ctx, `
			SELECT id, user_id, name, created_at
			FROM tags
			WHERE user_id = $1 AND lower(name) = $2
		`, userID, security.NormalizeTagName(name)).Scan(
			&tag.ID,
			&tag.UserID,
			&tag.Name,
			&tag.CreatedAt,
		)
		if err != nil {
			return nil, false, fmt.Errorf("failed to fetch tag: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &tag, created, nil
}

// listTagsQuery builds the SELECT for a tag listing with usage counts.
// The name match is a case-insensitive substring (ILIKE with the term
// wrapped in wildcards); counts are restricted to a workspace when one
// is given; ordering is alphabetical.
func listTagsQuery(userID uuid.UUID, query domain.TagQuery) (string, []any) {
	sql := `
		SELECT t.id, t.user_id, t.name, t.created_at, COUNT(b.id) AS bookmark_count
		FROM tags t
		LEFT JOIN bookmark_tags bt ON bt.tag_id = t.id
		LEFT JOIN bookmarks b ON b.id = bt.bookmark_id AND b.is_archived = FALSE
	`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if query.WorkspaceID != nil {
		sql = `
		SELECT t.id, t.user_id, t.name, t.created_at, COUNT(b.id) AS bookmark_count
		FROM tags t
		LEFT JOIN bookmark_tags bt ON bt.tag_id = t.id
		LEFT JOIN bookmarks b ON b.id = bt.bookmark_id AND b.is_archived = FALSE AND b.workspace_id = ` + arg(*query.WorkspaceID) + `
	`
	}

	sql += ` WHERE t.user_id = ` + arg(userID)

	if query.Query != "" {
		sql += ` AND t.name ILIKE ` + arg("%"+query.Query+"%")
	}

	sql += `
		GROUP BY t.id
		ORDER BY t.name ASC
		LIMIT ` + arg(query.Limit)

	return sql, args
}

// ListWithCounts retrieves the user's tags with bookmark usage counts
func (r *TagRepository) ListWithCounts(ctx context.Context, userID uuid.UUID, query domain.TagQuery) ([]domain.TagWithCount, error) {
	sql, args := listTagsQuery(userID, query)

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.TagWithCount
	for rows.Next() {
		var t domain.TagWithCount
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt, &t.BookmarkCount); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}

	return tags, nil
}

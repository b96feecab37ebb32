package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nvoss/linkstash/internal/domain"
)

// FolderRepository handles folder data access
type FolderRepository struct {
	db *DB
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(db *DB) *FolderRepository {
	return &FolderRepository{db: db}
}

// Create creates a new folder. Inserting a second default folder for a
// scope violates the partial unique index and comes back as a conflict.
func (r *FolderRepository) Create(ctx context.Context, folder *domain.Folder) error {
	query := `
		INSERT INTO folders (id, user_id, workspace_id, parent_id, name, description, color, icon, sort_order, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		folder.ID,
		folder.UserID,
		folder.WorkspaceID,
		folder.ParentID,
		folder.Name,
		folder.Description,
		folder.Color,
		folder.Icon,
		folder.SortOrder,
		folder.IsDefault,
		folder.CreatedAt,
		folder.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflict("default folder already exists for scope")
		}
		return fmt.Errorf("failed to create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *FolderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Folder, error) {
	query := `
		SELECT id, user_id, workspace_id, parent_id, name, description, color, icon, sort_order, is_default, created_at, updated_at
		FROM folders
		WHERE id = $1
	`

	var folder domain.Folder
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&folder.ID,
		&folder.UserID,
		&folder.WorkspaceID,
		&folder.ParentID,
		&folder.Name,
		&folder.Description,
		&folder.Color,
		&folder.Icon,
		&folder.SortOrder,
		&folder.IsDefault,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}

	return &folder, nil
}

// FindDefault retrieves the default folder for a scope
func (r *FolderRepository) FindDefault(ctx context.Context, scope domain.Scope) (*domain.Folder, error) {
	query := `
		SELECT id, user_id, workspace_id, parent_id, name, description, color, icon, sort_order, is_default, created_at, updated_at
		FROM folders
		WHERE is_default = TRUE
	`
	var args []any
	if scope.IsPersonal() {
		query += ` AND workspace_id IS NULL AND user_id = $1`
		args = append(args, scope.UserID)
	} else {
		query += ` AND workspace_id = $1`
		args = append(args, *scope.WorkspaceID)
	}

	var folder domain.Folder
	err := r.db.Pool.QueryRow(ctx, query, args...).Scan(
		&folder.ID,
		&folder.UserID,
		&folder.WorkspaceID,
		&folder.ParentID,
		&folder.Name,
		&folder.Description,
		&folder.Color,
		&folder.Icon,
		&folder.SortOrder,
		&folder.IsDefault,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find default folder: %w", err)
	}

	return &folder, nil
}

// ListByScope retrieves the scope's folders annotated with non-archived
// bookmark counts, default folder first, then alphabetical.
func (r *FolderRepository) ListByScope(ctx context.Context, scope domain.Scope) ([]domain.FolderWithCount, error) {
	query := `
		SELECT f.id, f.user_id, f.workspace_id, f.parent_id, f.name, f.description, f.color, f.icon, f.sort_order, f.is_default, f.created_at, f.updated_at,
		       COUNT(b.id) FILTER (WHERE b.is_archived = FALSE) AS bookmark_count
		FROM folders f
		LEFT JOIN bookmarks b ON b.folder_id = f.id
	`
	var args []any
	if scope.IsPersonal() {
		query += ` WHERE f.workspace_id IS NULL AND f.user_id = $1`
		args = append(args, scope.UserID)
	} else {
		query += ` WHERE f.workspace_id = $1`
		args = append(args, *scope.WorkspaceID)
	}
	query += `
		GROUP BY f.id
		ORDER BY f.is_default DESC, f.name ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer rows.Close()

	var folders []domain.FolderWithCount
	for rows.Next() {
		var f domain.FolderWithCount
		if err := rows.Scan(
			&f.ID,
			&f.UserID,
			&f.WorkspaceID,
			&f.ParentID,
			&f.Name,
			&f.Description,
			&f.Color,
			&f.Icon,
			&f.SortOrder,
			&f.IsDefault,
			&f.CreatedAt,
			&f.UpdatedAt,
			&f.BookmarkCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, f)
	}

	return folders, nil
}

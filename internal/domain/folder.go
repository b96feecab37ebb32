package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultFolderName is the name given to lazily created default folders
const DefaultFolderName = "General"

// Folder represents a container for bookmarks. A folder belongs either
// to a user (personal, WorkspaceID nil) or to a workspace, and may have
// a parent folder within the same scope.
type Folder struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	WorkspaceID *uuid.UUID `json:"workspace_id,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Color       string     `json:"color,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	SortOrder   int        `json:"sort_order"`
	IsDefault   bool       `json:"is_default"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Scope returns the folder's ownership scope
func (f *Folder) Scope() Scope {
	return Scope{UserID: f.UserID, WorkspaceID: f.WorkspaceID}
}

// FolderCreate represents folder creation data
type FolderCreate struct {
	Name        string     `json:"name" validate:"required,max=100"`
	Description string     `json:"description,omitempty" validate:"max=500"`
	Color       string     `json:"color,omitempty"`
	Icon        string     `json:"icon,omitempty" validate:"max=50"`
	SortOrder   int        `json:"sort_order,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	WorkspaceID *uuid.UUID `json:"workspace_id,omitempty"`
}

// FolderWithCount is a folder annotated with its live bookmark count
// (archived bookmarks excluded).
type FolderWithCount struct {
	Folder
	BookmarkCount int `json:"bookmark_count"`
}

// WorkspaceFolders groups a workspace's folders for the combined listing
type WorkspaceFolders struct {
	Workspace Workspace         `json:"workspace"`
	Folders   []FolderWithCount `json:"folders"`
}

// FolderTree is the combined folder listing across every scope the
// principal can see.
type FolderTree struct {
	Personal   []FolderWithCount  `json:"personal"`
	Workspaces []WorkspaceFolders `json:"workspaces"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxTagsPerBookmark bounds the number of tags on a single bookmark
const MaxTagsPerBookmark = 20

// BookmarkMetadata is the snapshot of page metadata captured at save time
type BookmarkMetadata struct {
	FaviconURL  string     `json:"favicon_url,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	SiteName    string     `json:"site_name,omitempty"`
	Author      string     `json:"author,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Bookmark represents a saved URL
type Bookmark struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"user_id"`
	WorkspaceID *uuid.UUID       `json:"workspace_id,omitempty"`
	FolderID    *uuid.UUID       `json:"folder_id,omitempty"`
	URL         string           `json:"url"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	IsPrivate   bool             `json:"is_private"`
	IsFavorite  bool             `json:"is_favorite"`
	IsArchived  bool             `json:"is_archived"`
	Metadata    BookmarkMetadata `json:"metadata"`
	Tags        []Tag            `json:"tags,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Scope returns the bookmark's ownership scope
func (b *Bookmark) Scope() Scope {
	return Scope{UserID: b.UserID, WorkspaceID: b.WorkspaceID}
}

// BookmarkCreate represents bookmark creation data
type BookmarkCreate struct {
	URL         string           `json:"url" validate:"required,max=2048"`
	Title       string           `json:"title" validate:"required,max=255"`
	Description string           `json:"description,omitempty" validate:"max=2000"`
	Notes       string           `json:"notes,omitempty" validate:"max=10000"`
	IsPrivate   bool             `json:"is_private,omitempty"`
	IsFavorite  bool             `json:"is_favorite,omitempty"`
	WorkspaceID *uuid.UUID       `json:"workspace_id,omitempty"`
	FolderID    *uuid.UUID       `json:"folder_id,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	Metadata    BookmarkMetadata `json:"metadata,omitempty"`
}

// BookmarkUpdate represents bookmark mutation data; nil fields are untouched
type BookmarkUpdate struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Notes       *string    `json:"notes,omitempty" validate:"omitempty,max=10000"`
	IsPrivate   *bool      `json:"is_private,omitempty"`
	IsFavorite  *bool      `json:"is_favorite,omitempty"`
	IsArchived  *bool      `json:"is_archived,omitempty"`
	FolderID    *uuid.UUID `json:"folder_id,omitempty"`
}

// Named bookmark list filters
const (
	FilterRecent    = "recent"
	FilterFavorites = "favorites"
	FilterShared    = "shared"
)

// BookmarkFilter selects and pages a bookmark listing. WorkspaceID absent
// means personal scope only; archived bookmarks are excluded unless
// IncludeArchived is set.
type BookmarkFilter struct {
	WorkspaceID     *uuid.UUID
	FolderID        *uuid.UUID
	IsPrivate       *bool
	Filter          string
	IncludeArchived bool
	Limit           int
	Offset          int
}

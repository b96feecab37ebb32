package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tag represents a user-scoped tag. Names are unique per user,
// case-insensitively.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TagWithCount is a tag annotated with its bookmark usage count
type TagWithCount struct {
	Tag
	BookmarkCount int `json:"bookmark_count"`
}

// TagQuery filters the tag listing for autocomplete/suggestion
type TagQuery struct {
	WorkspaceID *uuid.UUID
	Query       string
	Limit       int
}

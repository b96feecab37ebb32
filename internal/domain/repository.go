package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository methods return (nil, nil) when the entity does not exist;
// unique-constraint violations surface as *Error with KindConflict.

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// OrganizationRepository defines the interface for organization storage
type OrganizationRepository interface {
	// CreateWithWorkspace persists the organization, its first workspace
	// and the creator's owner membership in one transaction. An
	// organization is never observable without a workspace.
	CreateWithWorkspace(ctx context.Context, org *Organization, workspace *Workspace, owner *WorkspaceMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*Organization, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Organization, error)
}

// WorkspaceRepository defines the interface for workspace storage
type WorkspaceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Workspace, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]Workspace, error)
	GetMember(ctx context.Context, workspaceID, userID uuid.UUID) (*WorkspaceMember, error)
	// IsOrganizationMember reports whether the user belongs to any
	// workspace of the organization.
	IsOrganizationMember(ctx context.Context, organizationID, userID uuid.UUID) (bool, error)
}

// FolderRepository defines the interface for folder storage
type FolderRepository interface {
	Create(ctx context.Context, folder *Folder) error
	GetByID(ctx context.Context, id uuid.UUID) (*Folder, error)
	// FindDefault returns the folder flagged default for the scope
	FindDefault(ctx context.Context, scope Scope) (*Folder, error)
	// ListByScope returns the scope's folders with non-archived bookmark
	// counts, default folder first, then alphabetical.
	ListByScope(ctx context.Context, scope Scope) ([]FolderWithCount, error)
}

// BookmarkRepository defines the interface for bookmark storage
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *Bookmark) error
	GetByID(ctx context.Context, id uuid.UUID) (*Bookmark, error)
	Update(ctx context.Context, bookmark *Bookmark) error
	List(ctx context.Context, userID uuid.UUID, filter BookmarkFilter) ([]Bookmark, error)
	SetTags(ctx context.Context, bookmarkID uuid.UUID, tagIDs []uuid.UUID) error
	ListTagsFor(ctx context.Context, bookmarkIDs []uuid.UUID) (map[uuid.UUID][]Tag, error)
}

// TagRepository defines the interface for tag storage
type TagRepository interface {
	// GetOrCreate upserts a tag by case-insensitive name and reports
	// whether it was created or found.
	GetOrCreate(ctx context.Context, userID uuid.UUID, name string) (*Tag, bool, error)
	ListWithCounts(ctx context.Context, userID uuid.UUID, query TagQuery) ([]TagWithCount, error)
}

// InvitationRepository defines the interface for invitation storage
type InvitationRepository interface {
	Create(ctx context.Context, invitation *Invitation) error
	// Redeem atomically validates the invitation identified by tokenHash
	// against the redeeming principal, creates the membership and flips
	// the status to accepted. A concurrent second redeem observes the
	// accepted status and gets a conflict error.
	Redeem(ctx context.Context, tokenHash string, principal Principal, now time.Time) (*Invitation, error)
	ListPending(ctx context.Context, organizationID uuid.UUID, now time.Time) ([]Invitation, error)
}

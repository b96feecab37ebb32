package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization represents a tenant organization with a single owner
type Organization struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Workspace visibility values
const (
	VisibilityPrivate = "private"
	VisibilityPublic  = "public" // visible to all members of the owning organization
)

// Workspace represents a shared bookmark space inside an organization
type Workspace struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Visibility     string    `json:"visibility"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OrganizationCreate represents organization creation data. An
// organization is always created together with its first workspace.
type OrganizationCreate struct {
	Name          string `json:"name" validate:"required,max=255"`
	WorkspaceName string `json:"workspace_name" validate:"required,max=255"`
	Visibility    string `json:"visibility" validate:"omitempty,oneof=private public"`
}

// WorkspaceMember represents workspace membership
type WorkspaceMember struct {
	WorkspaceID uuid.UUID `json:"workspace_id"`
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// Role constants, strongest first
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleViewer = "viewer"
)

var roleRank = map[string]int{
	RoleViewer: 1,
	RoleMember: 2,
	RoleAdmin:  3,
	RoleOwner:  4,
}

// ValidRole reports whether role is a known workspace role
func ValidRole(role string) bool {
	_, ok := roleRank[role]
	return ok
}

// RoleAtLeast reports whether role grants at least the capabilities of min
func RoleAtLeast(role, min string) bool {
	return roleRank[role] >= roleRank[min]
}

// CanWrite reports whether the member role permits mutating workspace
// resources. Viewers are read-only.
func (m *WorkspaceMember) CanWrite() bool {
	return RoleAtLeast(m.Role, RoleMember)
}

package domain

import "github.com/google/uuid"

// Principal is the already-authenticated caller of a core operation.
// The core never re-derives identity from ambient session state.
type Principal struct {
	ID    uuid.UUID
	Email string
}

// Scope is the ownership context of a folder or bookmark: personal
// (WorkspaceID nil) or a specific workspace.
type Scope struct {
	UserID      uuid.UUID
	WorkspaceID *uuid.UUID
}

// PersonalScope returns the personal scope for a user
func PersonalScope(userID uuid.UUID) Scope {
	return Scope{UserID: userID}
}

// WorkspaceScope returns the scope for a workspace
func WorkspaceScope(userID, workspaceID uuid.UUID) Scope {
	return Scope{UserID: userID, WorkspaceID: &workspaceID}
}

// IsPersonal reports whether the scope is outside any workspace
func (s Scope) IsPersonal() bool {
	return s.WorkspaceID == nil
}

// Same reports whether two scopes refer to the same ownership context
func (s Scope) Same(other Scope) bool {
	if s.IsPersonal() != other.IsPersonal() {
		return false
	}
	if s.IsPersonal() {
		return s.UserID == other.UserID
	}
	return *s.WorkspaceID == *other.WorkspaceID
}

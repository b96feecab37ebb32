package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nvoss/linkstash/internal/domain"
)

// Action is the capability an operation needs on a resource
type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
	ActionAdmin Action = "admin"
)

// AccessService decides, for an authenticated principal, whether an
// operation on a resource is allowed. It is a pure decision layer: it
// reads membership state and never writes.
//
// Denials are classified. Resources the principal cannot see at all
// report not-found, indistinguishable from absence, so cross-tenant
// probing cannot reveal existence. A workspace the principal explicitly
// targeted and can see, but lacks the role for, reports forbidden.
type AccessService struct {
	orgRepo       domain.OrganizationRepository
	workspaceRepo domain.WorkspaceRepository
}

// NewAccessService creates a new access service
func NewAccessService(orgRepo domain.OrganizationRepository, workspaceRepo domain.WorkspaceRepository) *AccessService {
	return &AccessService{orgRepo: orgRepo, workspaceRepo: workspaceRepo}
}

// AuthorizeWorkspace checks the principal's access to a workspace and
// returns it on allow.
//
// Members get read always and write with role member or above; viewers
// are read-only. Non-members may read a public workspace when they
// belong to the owning organization. Everything else is denied: with
// not-found for reads (no existence leak), with forbidden for writes to
// a workspace the caller named explicitly.
func (s *AccessService) AuthorizeWorkspace(ctx context.Context, principal domain.Principal, workspaceID uuid.UUID, action Action) (*domain.Workspace, error) {
	workspace, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil {
		return nil, domain.NewNotFound("workspace")
	}

	member, err := s.workspaceRepo.GetMember(ctx, workspaceID, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	if member != nil {
		switch action {
		case ActionRead:
			return workspace, nil
		case ActionWrite:
			if member.CanWrite() {
				return workspace, nil
			}
			return nil, domain.NewForbidden("viewer role is read-only")
		case ActionAdmin:
			if domain.RoleAtLeast(member.Role, domain.RoleAdmin) {
				return workspace, nil
			}
			return nil, domain.NewForbidden("admin role required")
		}
	}

	// No membership row. Organization members may read public
	// workspaces of their organization; membership in a sibling
	// workspace grants nothing else.
	if action == ActionRead && workspace.Visibility == domain.VisibilityPublic {
		inOrg, err := s.workspaceRepo.IsOrganizationMember(ctx, workspace.OrganizationID, principal.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check organization membership: %w", err)
		}
		if inOrg {
			return workspace, nil
		}
	}

	if action == ActionRead {
		return nil, domain.NewNotFound("workspace")
	}
	return nil, domain.NewForbidden("not a member of this workspace")
}

// AuthorizeScope checks the principal's access to an ownership scope.
// Personal scopes belong to exactly one user.
func (s *AccessService) AuthorizeScope(ctx context.Context, principal domain.Principal, scope domain.Scope, action Action) error {
	if scope.IsPersonal() {
		if scope.UserID != principal.ID {
			return domain.NewNotFound("resource")
		}
		return nil
	}

	_, err := s.AuthorizeWorkspace(ctx, principal, *scope.WorkspaceID, action)
	return err
}

// AuthorizeFolder checks the principal's access to an existing folder.
// Foreign personal scopes already come back as not-found from
// AuthorizeScope, so a folder the principal cannot see is reported
// absent for any action.
func (s *AccessService) AuthorizeFolder(ctx context.Context, principal domain.Principal, folder *domain.Folder, action Action) error {
	if folder == nil {
		return domain.NewNotFound("folder")
	}
	return s.AuthorizeScope(ctx, principal, folder.Scope(), action)
}

// AuthorizeBookmark checks the principal's access to an existing bookmark
func (s *AccessService) AuthorizeBookmark(ctx context.Context, principal domain.Principal, bookmark *domain.Bookmark, action Action) error {
	if bookmark == nil {
		return domain.NewNotFound("bookmark")
	}
	return s.AuthorizeScope(ctx, principal, bookmark.Scope(), action)
}

// RequireOrganizationOwner checks that the principal owns the
// organization. Organization-level administration (inviting, reading
// pending invitations, destructive actions) is owner-only. A member who
// can see the organization but does not own it gets forbidden; an
// outsider gets not-found.
func (s *AccessService) RequireOrganizationOwner(ctx context.Context, principal domain.Principal, organizationID uuid.UUID) (*domain.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	if org == nil {
		return nil, domain.NewNotFound("organization")
	}

	if org.OwnerID == principal.ID {
		return org, nil
	}

	inOrg, err := s.workspaceRepo.IsOrganizationMember(ctx, organizationID, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check organization membership: %w", err)
	}
	if inOrg {
		return nil, domain.NewForbidden("organization owner required")
	}
	return nil, domain.NewNotFound("organization")
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nvoss/linkstash/internal/domain"
)

// OrganizationService handles organization and workspace operations
type OrganizationService struct {
	orgRepo       domain.OrganizationRepository
	workspaceRepo domain.WorkspaceRepository
	access        *AccessService
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(orgRepo domain.OrganizationRepository, workspaceRepo domain.WorkspaceRepository, access *AccessService) *OrganizationService {
	return &OrganizationService{orgRepo: orgRepo, workspaceRepo: workspaceRepo, access: access}
}

// OrganizationCreated is the creation payload: the organization and its
// first workspace, which always come into existence together.
type OrganizationCreated struct {
	Organization domain.Organization `json:"organization"`
	Workspace    domain.Workspace    `json:"workspace"`
}

// Create creates an organization together with its first workspace and
// makes the creator an owner-role member of that workspace.
func (s *OrganizationService) Create(ctx context.Context, principal domain.Principal, input domain.OrganizationCreate) (*OrganizationCreated, error) {
	now := time.Now()

	visibility := input.Visibility
	if visibility == "" {
		visibility = domain.VisibilityPrivate
	}

	org := domain.Organization{
		ID:        uuid.New(),
		Name:      input.Name,
		OwnerID:   principal.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	workspace := domain.Workspace{
		ID:             uuid.New(),
		OrganizationID: org.ID,
		Name:           input.WorkspaceName,
		Visibility:     visibility,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	owner := domain.WorkspaceMember{
		WorkspaceID: workspace.ID,
		UserID:      principal.ID,
		Role:        domain.RoleOwner,
		CreatedAt:   now,
	}

	if err := s.orgRepo.CreateWithWorkspace(ctx, &org, &workspace, &owner); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return &OrganizationCreated{Organization: org, Workspace: workspace}, nil
}

// GetOrganization retrieves an organization's metadata. The owner and
// members of any of its workspaces may read it; outsiders learn nothing.
func (s *OrganizationService) GetOrganization(ctx context.Context, principal domain.Principal, organizationID uuid.UUID) (*domain.Organization, error) {
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
	if !inOrg {
		return nil, domain.NewNotFound("organization")
	}

	return org, nil
}

// ListOwned retrieves the organizations the principal owns
func (s *OrganizationService) ListOwned(ctx context.Context, principal domain.Principal) ([]domain.Organization, error) {
	orgs, err := s.orgRepo.ListByOwner(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// ListWorkspaces retrieves the workspaces the principal is a member of
func (s *OrganizationService) ListWorkspaces(ctx context.Context, principal domain.Principal) ([]domain.Workspace, error) {
	workspaces, err := s.workspaceRepo.ListByUserID(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return workspaces, nil
}

// GetWorkspace retrieves a workspace with an access check
func (s *OrganizationService) GetWorkspace(ctx context.Context, principal domain.Principal, workspaceID uuid.UUID) (*domain.Workspace, error) {
	return s.access.AuthorizeWorkspace(ctx, principal, workspaceID, ActionRead)
}

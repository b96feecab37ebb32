package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nvoss/linkstash/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAccessService_AuthorizeWorkspace(t *testing.T) {
	ctx := context.Background()
	principal := domain.Principal{ID: uuid.New(), Email: "user@example.com"}
	orgID := uuid.New()
	workspaceID := uuid.New()

	workspace := &domain.Workspace{
		ID:             workspaceID,
		OrganizationID: orgID,
		Name:           "Engineering",
		Visibility:     domain.VisibilityPrivate,
	}

	t.Run("member can read and write", func(t *testing.T) {
		workspaceRepo := new(MockWorkspaceRepository)
		svc := NewAccessService(new(MockOrganizationRepository), workspaceRepo)

		workspaceRepo.On("GetByID", ctx, workspaceID).Return(workspace, nil)
		workspaceRepo.On("GetMember", ctx, workspaceID, principal.ID).
			Return(&domain.WorkspaceMember{WorkspaceID: workspaceID, UserID: principal.ID, Role: domain.RoleMember}, nil)

		got, err := svc.AuthorizeWorkspace(ctx, principal, workspaceID, ActionRead)
		assert.NoError(t, err)
		assert.Equal(t, workspace, got)

		_, err = svc.AuthorizeWorkspace(ctx, principal, workspaceID, ActionWrite)
		assert.NoError(t, err)
	})

	t.Run("viewer is read-only", func(t *testing.T) {
		workspaceRepo := new(MockWorkspaceRepository)
		svc := NewAccessService(new(MockOrganizationRepository), workspaceRepo)

		workspaceRepo.On("GetByID", ctx, workspaceID).Return(workspace, nil)
		workspaceRepo.On("GetMember", ctx, workspaceID, principal.ID).
			Return(&domain.WorkspaceMember{WorkspaceID: workspaceID, UserID: principal.ID, Role: domain.RoleViewer}, nil)

		_, err := svc.AuthorizeWorkspace(ctx, principal, workspaceID, ActionRead)
		assert.NoError(t, err)

		_, err = svc.AuthorizeWorkspace(ctx, principal, workspaceID, ActionWrite)
		assert.True(t, domain.IsForbidden(err))
	})

	t.Run("member below admin cannot administer", func(t *testing.T) {
		workspaceRepo := new(MockWorkspaceRepository)
		svc := NewAccessService(new(MockOrganizationRepository), workspaceRepo)

		workspaceRepo.On("GetByID", ctx, workspaceID).Return(workspace, nil)
		workspaceRepo.On("GetMember", ctx, workspaceID, principal.ID).
			Return(&domain.WorkspaceMember{WorkspaceID: workspaceID, UserID: principal.ID, Role: domain.RoleMember}, nil)

		_, err := svc.AuthorizeWorkspace(ctx, principal, workspaceID, ActionAdmin)
		assert.True(t, domain.IsForbidden(err))
	})

	t.Run("non-member read reports not found", func(t *testing.T) {
		workspaceRepo := new(MockWorkspaceRepository)
		svc := NewAccessService(new(MockOrganizationRepository), workspaceRepo)

		workspaceRepo.On("GetByID", ctx, workspaceID).Return(workspace, nil)
		workspaceRepo.On("GetMember", ctx, workspaceID, principal.ID).Return(nil, nil)

		_, err := svc.AuthorizeWorkspace(ctx, principal, workspaceID, ActionRead)
		assert.True(t, domain.IsNotFound(err), "read denial must be indistinguishable from absence")
	})

	t.Run("non-member write reports forbidden", func(t *testing.T) {
		workspaceRepo := new(MockWorkspaceRepository)
		svc := NewAccessService(new(MockOrganizationRepository), workspaceRepo)

		workspaceRepo.On("GetByID", ctx, workspaceID).Return(workspace, nil)
		workspaceRepo.On("GetMember", ctx, workspaceID, principal.ID).Return(nil, nil)

		_, err := svc.AuthorizeWorkspace(ctx, principal, workspaceID, ActionWrite)
		assert.True(t, domain.IsForbidden(err))
	})

	t.Run("missing workspace reports not found", func(t *testing.T) {
		workspaceRepo := new(MockWorkspaceRepository)
		svc := NewAccessService(new(MockOrganizationRepository), workspaceRepo)

		workspaceRepo.On("GetByID", ctx, workspaceID).Return(nil, nil)

		_, err := svc.AuthorizeWorkspace(ctx, principal, workspaceID, ActionWrite)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("organization member can read public workspace", func(t *testing.T) {
		public := &domain.Workspace{
			ID:             workspaceID,
			OrganizationID: orgID,
			Name:           "Announcements",
			Visibility:     domain.VisibilityPublic,
		}

		workspaceRepo := new(MockWorkspaceRepository)
		svc := NewAccessService(new(MockOrganizationRepository), workspaceRepo)

		workspaceRepo.On("GetByID", ctx, workspaceID).Return(public, nil)
		workspaceRepo.On("GetMember", ctx, workspaceID, principal.ID).Return(nil, nil)
		workspaceRepo.On("IsOrganizationMember", ctx, orgID, principal.ID).Return(true, nil)

		got, err := svc.AuthorizeWorkspace(ctx, principal, workspaceID, ActionRead)
		assert.NoError(t, err)
		assert.Equal(t, public, got)
	})

	t.Run("outsider cannot read public workspace", func(t *testing.T) {
		public := &domain.Workspace{
			ID:             workspaceID,
			OrganizationID: orgID,
			Visibility:     domain.VisibilityPublic,
		}

		workspaceRepo := new(MockWorkspaceRepository)
		svc := NewAccessService(new(MockOrganizationRepository), workspaceRepo)

		workspaceRepo.On("GetByID", ctx, workspaceID).Return(public, nil)
		workspaceRepo.On("GetMember", ctx, workspaceID, principal.ID).Return(nil, nil)
		workspaceRepo.On("IsOrganizationMember", ctx, orgID, principal.ID).Return(false, nil)

		_, err := svc.AuthorizeWorkspace(ctx, principal, workspaceID, ActionRead)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestAccessService_AuthorizeScope_Personal(t *testing.T) {
	ctx := context.Background()
	principal := domain.Principal{ID: uuid.New()}
	svc := NewAccessService(new(MockOrganizationRepository), new(MockWorkspaceRepository))

	t.Run("own scope", func(t *testing.T) {
		err := svc.AuthorizeScope(ctx, principal, domain.PersonalScope(principal.ID), ActionWrite)
		assert.NoError(t, err)
	})

	t.Run("someone else's scope", func(t *testing.T) {
		err := svc.AuthorizeScope(ctx, principal, domain.PersonalScope(uuid.New()), ActionRead)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestAccessService_AuthorizeFolder(t *testing.T) {
	ctx := context.Background()
	principal := domain.Principal{ID: uuid.New()}
	svc := NewAccessService(new(MockOrganizationRepository), new(MockWorkspaceRepository))

	t.Run("missing folder reports not found", func(t *testing.T) {
		err := svc.AuthorizeFolder(ctx, principal, nil, ActionRead)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("someone else's personal folder is absent for any action", func(t *testing.T) {
		folder := &domain.Folder{ID: uuid.New(), UserID: uuid.New()}

		for _, action := range []Action{ActionRead, ActionWrite} {
			err := svc.AuthorizeFolder(ctx, principal, folder, action)
			assert.True(t, domain.IsNotFound(err), "action %s must not reveal the folder", action)
		}
	})
}

func TestAccessService_RequireOrganizationOwner(t *testing.T) {
	ctx := context.Background()
	owner := domain.Principal{ID: uuid.New()}
	orgID := uuid.New()
	org := &domain.Organization{ID: orgID, Name: "Acme", OwnerID: owner.ID}

	t.Run("owner allowed", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		svc := NewAccessService(orgRepo, new(MockWorkspaceRepository))

		orgRepo.On("GetByID", ctx, orgID).Return(org, nil)

		got, err := svc.RequireOrganizationOwner(ctx, owner, orgID)
		assert.NoError(t, err)
		assert.Equal(t, org, got)
	})

	t.Run("member forbidden", func(t *testing.T) {
		member := domain.Principal{ID: uuid.New()}
		orgRepo := new(MockOrganizationRepository)
		workspaceRepo := new(MockWorkspaceRepository)
		svc := NewAccessService(orgRepo, workspaceRepo)

		orgRepo.On("GetByID", ctx, orgID).Return(org, nil)
		workspaceRepo.On("IsOrganizationMember", ctx, orgID, member.ID).Return(true, nil)

		_, err := svc.RequireOrganizationOwner(ctx, member, orgID)
		assert.True(t, domain.IsForbidden(err))
	})

	t.Run("outsider sees nothing", func(t *testing.T) {
		outsider := domain.Principal{ID: uuid.New()}
		orgRepo := new(MockOrganizationRepository)
		workspaceRepo := new(MockWorkspaceRepository)
		svc := NewAccessService(orgRepo, workspaceRepo)

		orgRepo.On("GetByID", ctx, orgID).Return(org, nil)
		workspaceRepo.On("IsOrganizationMember", ctx, orgID, outsider.ID).Return(false, nil)

		_, err := svc.RequireOrganizationOwner(ctx, outsider, orgID)
		assert.True(t, domain.IsNotFound(err))
	})
}

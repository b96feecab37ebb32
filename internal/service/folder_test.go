package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nvoss/linkstash/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newFolderService(folderRepo *MockFolderRepository, workspaceRepo *MockWorkspaceRepository) *FolderService {
	access := NewAccessService(new(MockOrganizationRepository), workspaceRepo)
	return NewFolderService(folderRepo, workspaceRepo, access)
}

func TestFolderService_CreateFolder(t *testing.T) {
	ctx := context.Background()
	principal := domain.Principal{ID: uuid.New()}

	t.Run("personal folder", func(t *testing.T) {
		folderRepo := new(MockFolderRepository)
		svc := newFolderService(folderRepo, new(MockWorkspaceRepository))

		folderRepo.On("Create", ctx, mock.AnythingOfType("*domain.Folder")).Return(nil)

		folder, err := svc.CreateFolder(ctx, principal, domain.FolderCreate{Name: "Reading", Color: "FF8800"})
		assert.NoError(t, err)
		assert.Equal(t, principal.ID, folder.UserID)
		assert.Nil(t, folder.WorkspaceID)
		assert.Equal(t, "#ff8800", folder.Color)
		assert.False(t, folder.IsDefault)

		folderRepo.AssertExpectations(t)
	})

	t.Run("invalid color", func(t *testing.T) {
		svc := newFolderService(new(MockFolderRepository), new(MockWorkspaceRepository))

		_, err := svc.CreateFolder(ctx, principal, domain.FolderCreate{Name: "Reading", Color: "red"})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("parent in a different scope", func(t *testing.T) {
		workspaceID := uuid.New()
		parentID := uuid.New()

		folderRepo := new(MockFolderRepository)
		workspaceRepo := new(MockWorkspaceRepository)
		svc := newFolderService(folderRepo, workspaceRepo)

		workspaceRepo.On("GetByID", ctx, workspaceID).
			Return(&domain.Workspace{ID: workspaceID, OrganizationID: uuid.New()}, nil)
		workspaceRepo.On("GetMember", ctx, workspaceID, principal.ID).
			Return(&domain.WorkspaceMember{Role: domain.RoleMember}, nil)
		// Parent lives in the caller's personal scope, not the workspace.
		folderRepo.On("GetByID", ctx, parentID).
			Return(&domain.Folder{ID: parentID, UserID: principal.ID}, nil)

		_, err := svc.CreateFolder(ctx, principal, domain.FolderCreate{
			Name:        "Nested",
			WorkspaceID: &workspaceID,
			ParentID:    &parentID,
		})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("parent invisible to caller", func(t *testing.T) {
		parentID := uuid.New()

		folderRepo := new(MockFolderRepository)
		svc := newFolderService(folderRepo, new(MockWorkspaceRepository))

		folderRepo.On("GetByID", ctx, parentID).
			Return(&domain.Folder{ID: parentID, UserID: uuid.New()}, nil)

		_, err := svc.CreateFolder(ctx, principal, domain.FolderCreate{Name: "Nested", ParentID: &parentID})
		assert.True(t, domain.IsNotFound(err), "foreign personal folders must stay invisible")
	})

	t.Run("cyclic ancestor chain rejected", func(t *testing.T) {
		a := uuid.New()
		b := uuid.New()

		folderRepo := new(MockFolderRepository)
		svc := newFolderService(folderRepo, new(MockWorkspaceRepository))

		// a -> b -> a, corrupted links
		folderRepo.On("GetByID", ctx, a).
			Return(&domain.Folder{ID: a, UserID: principal.ID, ParentID: &b}, nil)
		folderRepo.On("GetByID", ctx, b).
			Return(&domain.Folder{ID: b, UserID: principal.ID, ParentID: &a}, nil)

		_, err := svc.CreateFolder(ctx, principal, domain.FolderCreate{Name: "Nested", ParentID: &a})
		assert.True(t, domain.IsValidation(err))
	})
}

func TestFolderService_GetOrCreateDefaultFolder(t *testing.T) {
	ctx := context.Background()
	principal := domain.Principal{ID: uuid.New()}
	scope := domain.PersonalScope(principal.ID)

	t.Run("existing default returned", func(t *testing.T) {
		existing := &domain.Folder{ID: uuid.New(), UserID: principal.ID, Name: domain.DefaultFolderName, IsDefault: true}

		folderRepo := new(MockFolderRepository)
		svc := newFolderService(folderRepo, new(MockWorkspaceRepository))

		folderRepo.On("FindDefault", ctx, scope).Return(existing, nil)

		folder, err := svc.GetOrCreateDefaultFolder(ctx, principal, scope)
		assert.NoError(t, err)
		assert.Equal(t, existing, folder)
		folderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("created on first access", func(t *testing.T) {
		folderRepo := new(MockFolderRepository)
		svc := newFolderService(folderRepo, new(MockWorkspaceRepository))

		folderRepo.On("FindDefault", ctx, scope).Return(nil, nil)
		folderRepo.On("Create", ctx, mock.AnythingOfType("*domain.Folder")).Return(nil)

		folder, err := svc.GetOrCreateDefaultFolder(ctx, principal, scope)
		assert.NoError(t, err)
		assert.Equal(t, domain.DefaultFolderName, folder.Name)
		assert.True(t, folder.IsDefault)
	})

	t.Run("lost creation race converges on the winner", func(t *testing.T) {
		winner := &domain.Folder{ID: uuid.New(), UserID: principal.ID, Name: domain.DefaultFolderName, IsDefault: true}

		folderRepo := new(MockFolderRepository)
		svc := newFolderService(folderRepo, new(MockWorkspaceRepository))

		folderRepo.On("FindDefault", ctx, scope).Return(nil, nil).Once()
		folderRepo.On("Create", ctx, mock.AnythingOfType("*domain.Folder")).
			Return(domain.NewConflict("default folder already exists"))
		folderRepo.On("FindDefault", ctx, scope).Return(winner, nil).Once()

		folder, err := svc.GetOrCreateDefaultFolder(ctx, principal, scope)
		assert.NoError(t, err)
		assert.Equal(t, winner.ID, folder.ID)
	})

	t.Run("foreign personal scope reports not found", func(t *testing.T) {
		svc := newFolderService(new(MockFolderRepository), new(MockWorkspaceRepository))

		_, err := svc.GetOrCreateDefaultFolder(ctx, principal, domain.PersonalScope(uuid.New()))
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestFolderService_ListAllFolders(t *testing.T) {
	ctx := context.Background()
	principal := domain.Principal{ID: uuid.New()}
	workspace := domain.Workspace{ID: uuid.New(), Name: "Engineering"}

	folderRepo := new(MockFolderRepository)
	workspaceRepo := new(MockWorkspaceRepository)
	svc := newFolderService(folderRepo, workspaceRepo)

	personal := []domain.FolderWithCount{
		{Folder: domain.Folder{ID: uuid.New(), UserID: principal.ID, Name: "General", IsDefault: true}, BookmarkCount: 3},
	}
	shared := []domain.FolderWithCount{
		{Folder: domain.Folder{ID: uuid.New(), UserID: principal.ID, WorkspaceID: &workspace.ID, Name: "Specs"}, BookmarkCount: 1},
	}

	folderRepo.On("ListByScope", ctx, domain.PersonalScope(principal.ID)).Return(personal, nil)
	workspaceRepo.On("ListByUserID", ctx, principal.ID).Return([]domain.Workspace{workspace}, nil)
	folderRepo.On("ListByScope", ctx, domain.WorkspaceScope(principal.ID, workspace.ID)).Return(shared, nil)

	tree, err := svc.ListAllFolders(ctx, principal)
	assert.NoError(t, err)
	assert.Equal(t, personal, tree.Personal)
	assert.Len(t, tree.Workspaces, 1)
	assert.Equal(t, workspace.ID, tree.Workspaces[0].Workspace.ID)
	assert.Equal(t, shared, tree.Workspaces[0].Folders)
}

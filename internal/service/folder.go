package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nvoss/linkstash/internal/domain"
	"github.com/nvoss/linkstash/internal/security"
)

// maxFolderDepth bounds the ancestor walk when validating a parent link
const maxFolderDepth = 50

// FolderService manages the folder hierarchy: creation with tree
// validation, lazy per-scope default folders and scoped listings.
type FolderService struct {
	folderRepo    domain.FolderRepository
	workspaceRepo domain.WorkspaceRepository
	access        *AccessService
}

// NewFolderService creates a new folder service
func NewFolderService(folderRepo domain.FolderRepository, workspaceRepo domain.WorkspaceRepository, access *AccessService) *FolderService {
	return &FolderService{folderRepo: folderRepo, workspaceRepo: workspaceRepo, access: access}
}

// CreateFolder creates a folder in the personal or workspace scope named
// by the input. Cross-scope and cyclic parent links are rejected before
// any write, so a partial tree is never observable.
func (s *FolderService) CreateFolder(ctx context.Context, principal domain.Principal, input domain.FolderCreate) (*domain.Folder, error) {
	if !security.ValidateHexColor(input.Color) {
		return nil, domain.NewValidation("color must be a 6-digit hex value")
	}

	scope := domain.PersonalScope(principal.ID)
	if input.WorkspaceID != nil {
		scope = domain.WorkspaceScope(principal.ID, *input.WorkspaceID)
	}

	if err := s.access.AuthorizeScope(ctx, principal, scope, ActionWrite); err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		if err := s.validateParent(ctx, *input.ParentID, scope); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	folder := domain.Folder{
		ID:          uuid.New(),
		UserID:      principal.ID,
		WorkspaceID: input.WorkspaceID,
		ParentID:    input.ParentID,
		Name:        input.Name,
		Description: input.Description,
		Color:       security.NormalizeHexColor(input.Color),
		Icon:        input.Icon,
		SortOrder:   input.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.folderRepo.Create(ctx, &folder); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	return &folder, nil
}

// validateParent checks that the parent folder exists, lives in the same
// scope as the folder being created, and that its ancestor chain is
// sound. The new folder has a fresh ID so it cannot yet appear in any
// chain; the walk guards against corrupt parent links and over-deep
// nesting, which would otherwise make the cycle possible.
func (s *FolderService) validateParent(ctx context.Context, parentID uuid.UUID, scope domain.Scope) error {
	parent, err := s.folderRepo.GetByID(ctx, parentID)
	if err != nil {
		return fmt.Errorf("failed to get parent folder: %w", err)
	}
	if parent == nil {
		return domain.NewNotFound("parent folder")
	}
	if !parent.Scope().Same(scope) {
		// A parent in a scope the caller cannot see stays invisible.
		if parent.WorkspaceID == nil && parent.UserID != scope.UserID {
			return domain.NewNotFound("parent folder")
		}
		return domain.NewValidation("parent folder belongs to a different scope")
	}

	seen := map[uuid.UUID]bool{parent.ID: true}
	current := parent
	for depth := 0; current.ParentID != nil; depth++ {
		if depth >= maxFolderDepth {
			return domain.NewValidation("folder nesting too deep")
		}
		next, err := s.folderRepo.GetByID(ctx, *current.ParentID)
		if err != nil {
			return fmt.Errorf("failed to walk folder ancestors: %w", err)
		}
		if next == nil {
			return domain.NewValidation("parent folder has a broken ancestor chain")
		}
		if seen[next.ID] {
			return domain.NewValidation("folder hierarchy contains a cycle")
		}
		seen[next.ID] = true
		current = next
	}

	return nil
}

// GetOrCreateDefaultFolder returns the scope's default folder, creating
// it on first access. Concurrent calls converge on a single folder: the
// partial unique index makes the duplicate insert a conflict, which is
// answered by re-fetching the winner.
func (s *FolderService) GetOrCreateDefaultFolder(ctx context.Context, principal domain.Principal, scope domain.Scope) (*domain.Folder, error) {
	if err := s.access.AuthorizeScope(ctx, principal, scope, ActionWrite); err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.FindDefault(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to find default folder: %w", err)
	}
	if folder != nil {
		return folder, nil
	}

	now := time.Now()
	created := domain.Folder{
		ID:          uuid.New(),
		UserID:      scope.UserID,
		WorkspaceID: scope.WorkspaceID,
		Name:        domain.DefaultFolderName,
		IsDefault:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.folderRepo.Create(ctx, &created)
	if err == nil {
		return &created, nil
	}
	if !domain.IsConflict(err) {
		return nil, fmt.Errorf("failed to create default folder: %w", err)
	}

	// Lost the race; the winner's folder is there now.
	folder, ferr := s.folderRepo.FindDefault(ctx, scope)
	if ferr != nil {
		return nil, fmt.Errorf("failed to re-fetch default folder: %w", ferr)
	}
	if folder == nil {
		return nil, domain.NewInternal(fmt.Errorf("default folder conflict but none found"))
	}

	return folder, nil
}

// ListFolders retrieves the folders of one scope, default first then
// alphabetical, each with its live non-archived bookmark count.
func (s *FolderService) ListFolders(ctx context.Context, principal domain.Principal, scope domain.Scope) ([]domain.FolderWithCount, error) {
	if err := s.access.AuthorizeScope(ctx, principal, scope, ActionRead); err != nil {
		return nil, err
	}

	folders, err := s.folderRepo.ListByScope(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}

	return folders, nil
}

// ListAllFolders retrieves every folder the principal can see,
// partitioned into the personal scope and one group per membership
// workspace.
func (s *FolderService) ListAllFolders(ctx context.Context, principal domain.Principal) (*domain.FolderTree, error) {
	personal, err := s.folderRepo.ListByScope(ctx, domain.PersonalScope(principal.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to list personal folders: %w", err)
	}

	workspaces, err := s.workspaceRepo.ListByUserID(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	tree := domain.FolderTree{Personal: personal}
	for _, workspace := range workspaces {
		folders, err := s.folderRepo.ListByScope(ctx, domain.WorkspaceScope(principal.ID, workspace.ID))
		if err != nil {
			return nil, fmt.Errorf("failed to list workspace folders: %w", err)
		}
		tree.Workspaces = append(tree.Workspaces, domain.WorkspaceFolders{
			Workspace: workspace,
			Folders:   folders,
		})
	}

	return &tree, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nvoss/linkstash/internal/domain"
	"github.com/nvoss/linkstash/internal/security"
)

// BookmarkService creates and lists bookmarks honoring scope, folder
// assignment and tag association.
type BookmarkService struct {
	bookmarkRepo    domain.BookmarkRepository
	folderRepo      domain.FolderRepository
	access          *AccessService
	tags            *TagService
	defaultPageSize int
	maxPageSize     int
}

// NewBookmarkService creates a new bookmark service
func NewBookmarkService(
	bookmarkRepo domain.BookmarkRepository,
	folderRepo domain.FolderRepository,
	access *AccessService,
	tags *TagService,
	defaultPageSize int,
	maxPageSize int,
) *BookmarkService {
	return &BookmarkService{
		bookmarkRepo:    bookmarkRepo,
		folderRepo:      folderRepo,
		access:          access,
		tags:            tags,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// CreateBookmark creates a bookmark in the personal or workspace scope
// named by the input. The folder, if given, must belong to the same
// scope; tags are upserted case-insensitively before linking.
func (s *BookmarkService) CreateBookmark(ctx context.Context, principal domain.Principal, input domain.BookmarkCreate) (*domain.Bookmark, error) {
	if !security.ValidateBookmarkURL(input.URL) {
		return nil, domain.NewValidation("url must be an absolute http(s) URL")
	}
	if len(input.Tags) > domain.MaxTagsPerBookmark {
		return nil, domain.NewValidation("at most %d tags per bookmark", domain.MaxTagsPerBookmark)
	}

	scope := domain.PersonalScope(principal.ID)
	if input.WorkspaceID != nil {
		scope = domain.WorkspaceScope(principal.ID, *input.WorkspaceID)
	}

	if err := s.access.AuthorizeScope(ctx, principal, scope, ActionWrite); err != nil {
		return nil, err
	}

	if input.FolderID != nil {
		if err := s.validateFolderScope(ctx, principal, *input.FolderID, scope); err != nil {
			return nil, err
		}
	}

	tags, err := s.tags.ResolveTags(ctx, principal.ID, input.Tags)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	bookmark := domain.Bookmark{
		ID:          uuid.New(),
		UserID:      principal.ID,
		WorkspaceID: input.WorkspaceID,
		FolderID:    input.FolderID,
		URL:         input.URL,
		Title:       input.Title,
		Description: input.Description,
		Notes:       input.Notes,
		IsPrivate:   input.IsPrivate,
		IsFavorite:  input.IsFavorite,
		Metadata:    input.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.bookmarkRepo.Create(ctx, &bookmark); err != nil {
		return nil, fmt.Errorf("failed to create bookmark: %w", err)
	}

	if len(tags) > 0 {
		tagIDs := make([]uuid.UUID, len(tags))
		for i, tag := range tags {
			tagIDs[i] = tag.ID
		}
		if err := s.bookmarkRepo.SetTags(ctx, bookmark.ID, tagIDs); err != nil {
			return nil, fmt.Errorf("failed to link tags: %w", err)
		}
		bookmark.Tags = tags
		s.tags.InvalidateCache(ctx, principal.ID)
	}

	return &bookmark, nil
}

// validateFolderScope checks that the folder exists and lives in the
// bookmark's target scope. Folders the principal cannot see stay
// invisible.
func (s *BookmarkService) validateFolderScope(ctx context.Context, principal domain.Principal, folderID uuid.UUID, scope domain.Scope) error {
	folder, err := s.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return fmt.Errorf("failed to get folder: %w", err)
	}
	if folder == nil {
		return domain.NewNotFound("folder")
	}
	if !folder.Scope().Same(scope) {
		if aerr := s.access.AuthorizeFolder(ctx, principal, folder, ActionRead); aerr != nil {
			return domain.NewNotFound("folder")
		}
		return domain.NewValidation("folder belongs to a different scope")
	}
	return nil
}

// GetUserBookmarks retrieves bookmarks for the principal. Without a
// workspace the listing covers the personal scope only; with one it
// requires authorization for that workspace. Archived bookmarks are
// excluded unless explicitly requested.
func (s *BookmarkService) GetUserBookmarks(ctx context.Context, principal domain.Principal, filter domain.BookmarkFilter) ([]domain.Bookmark, error) {
	switch filter.Filter {
	case "", domain.FilterRecent, domain.FilterFavorites, domain.FilterShared:
	default:
		return nil, domain.NewValidation("unknown filter %q", filter.Filter)
	}

	if filter.Limit <= 0 {
		filter.Limit = s.defaultPageSize
	}
	if filter.Limit > s.maxPageSize {
		filter.Limit = s.maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	if filter.WorkspaceID != nil {
		if _, err := s.access.AuthorizeWorkspace(ctx, principal, *filter.WorkspaceID, ActionRead); err != nil {
			return nil, err
		}
	}

	if filter.FolderID != nil {
		folder, err := s.folderRepo.GetByID(ctx, *filter.FolderID)
		if err != nil {
			return nil, fmt.Errorf("failed to get folder: %w", err)
		}
		if err := s.access.AuthorizeFolder(ctx, principal, folder, ActionRead); err != nil {
			return nil, err
		}
	}

	bookmarks, err := s.bookmarkRepo.List(ctx, principal.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	if err := s.attachTags(ctx, bookmarks); err != nil {
		return nil, err
	}

	return bookmarks, nil
}

func (s *BookmarkService) attachTags(ctx context.Context, bookmarks []domain.Bookmark) error {
	if len(bookmarks) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(bookmarks))
	for i, b := range bookmarks {
		ids[i] = b.ID
	}

	tagsByBookmark, err := s.bookmarkRepo.ListTagsFor(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load bookmark tags: %w", err)
	}

	for i := range bookmarks {
		bookmarks[i].Tags = tagsByBookmark[bookmarks[i].ID]
	}

	return nil
}

// UpdateBookmark applies a partial update, re-validating the folder
// scope when the folder changes.
func (s *BookmarkService) UpdateBookmark(ctx context.Context, principal domain.Principal, bookmarkID uuid.UUID, input domain.BookmarkUpdate) (*domain.Bookmark, error) {
	bookmark, err := s.bookmarkRepo.GetByID(ctx, bookmarkID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}
	if err := s.access.AuthorizeBookmark(ctx, principal, bookmark, ActionWrite); err != nil {
		return nil, err
	}

	if input.FolderID != nil && (bookmark.FolderID == nil || *input.FolderID != *bookmark.FolderID) {
		if err := s.validateFolderScope(ctx, principal, *input.FolderID, bookmark.Scope()); err != nil {
			return nil, err
		}
		bookmark.FolderID = input.FolderID
	}

	if input.Title != nil {
		bookmark.Title = *input.Title
	}
	if input.Description != nil {
		bookmark.Description = *input.Description
	}
	if input.Notes != nil {
		bookmark.Notes = *input.Notes
	}
	if input.IsPrivate != nil {
		bookmark.IsPrivate = *input.IsPrivate
	}
	if input.IsFavorite != nil {
		bookmark.IsFavorite = *input.IsFavorite
	}
	if input.IsArchived != nil {
		bookmark.IsArchived = *input.IsArchived
	}

	if err := s.bookmarkRepo.Update(ctx, bookmark); err != nil {
		return nil, fmt.Errorf("failed to update bookmark: %w", err)
	}

	s.tags.InvalidateCache(ctx, principal.ID)

	return bookmark, nil
}

// ArchiveBookmark flips the archived flag
func (s *BookmarkService) ArchiveBookmark(ctx context.Context, principal domain.Principal, bookmarkID uuid.UUID, archived bool) (*domain.Bookmark, error) {
	return s.UpdateBookmark(ctx, principal, bookmarkID, domain.BookmarkUpdate{IsArchived: &archived})
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nvoss/linkstash/internal/domain"
	"github.com/nvoss/linkstash/internal/notify"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockOrganizationRepository mocks the OrganizationRepository interface
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) CreateWithWorkspace(ctx context.Context, org *domain.Organization, workspace *domain.Workspace, owner *domain.WorkspaceMember) error {
	args := m.Called(ctx, org, workspace, owner)
	return args.Error(0)
}

func (m *MockOrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Organization, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

// MockWorkspaceRepository mocks the WorkspaceRepository interface
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) GetMember(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspaceRepository) IsOrganizationMember(ctx context.Context, organizationID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, organizationID, userID)
	return args.Bool(0), args.Error(1)
}

// MockFolderRepository mocks the FolderRepository interface
type MockFolderRepository struct {
	mock.Mock
}

func (m *MockFolderRepository) Create(ctx context.Context, folder *domain.Folder) error {
	args := m.Called(ctx, folder)
	return args.Error(0)
}

func (m *MockFolderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Folder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folder), args.Error(1)
}

func (m *MockFolderRepository) FindDefault(ctx context.Context, scope domain.Scope) (*domain.Folder, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folder), args.Error(1)
}

func (m *MockFolderRepository) ListByScope(ctx context.Context, scope domain.Scope) ([]domain.FolderWithCount, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FolderWithCount), args.Error(1)
}

// MockBookmarkRepository mocks the BookmarkRepository interface
type MockBookmarkRepository struct {
	mock.Mock
}

func (m *MockBookmarkRepository) Create(ctx context.Context, bookmark *domain.Bookmark) error {
	args := m.Called(ctx, bookmark)
	return args.Error(0)
}

func (m *MockBookmarkRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bookmark, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bookmark), args.Error(1)
}

func (m *MockBookmarkRepository) Update(ctx context.Context, bookmark *domain.Bookmark) error {
	args := m.Called(ctx, bookmark)
	return args.Error(0)
}

func (m *MockBookmarkRepository) List(ctx context.Context, userID uuid.UUID, filter domain.BookmarkFilter) ([]domain.Bookmark, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bookmark), args.Error(1)
}

func (m *MockBookmarkRepository) SetTags(ctx context.Context, bookmarkID uuid.UUID, tagIDs []uuid.UUID) error {
	args := m.Called(ctx, bookmarkID, tagIDs)
	return args.Error(0)
}

func (m *MockBookmarkRepository) ListTagsFor(ctx context.Context, bookmarkIDs []uuid.UUID) (map[uuid.UUID][]domain.Tag, error) {
	args := m.Called(ctx, bookmarkIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]domain.Tag), args.Error(1)
}

// MockTagRepository mocks the TagRepository interface
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) GetOrCreate(ctx context.Context, userID uuid.UUID, name string) (*domain.Tag, bool, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Tag), args.Bool(1), args.Error(2)
}

func (m *MockTagRepository) ListWithCounts(ctx context.Context, userID uuid.UUID, query domain.TagQuery) ([]domain.TagWithCount, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TagWithCount), args.Error(1)
}

// MockInvitationRepository mocks the InvitationRepository interface
type MockInvitationRepository struct {
	mock.Mock
}

func (m *MockInvitationRepository) Create(ctx context.Context, invitation *domain.Invitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

func (m *MockInvitationRepository) Redeem(ctx context.Context, tokenHash string, principal domain.Principal, now time.Time) (*domain.Invitation, error) {
	args := m.Called(ctx, tokenHash, principal, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) ListPending(ctx context.Context, organizationID uuid.UUID, now time.Time) ([]domain.Invitation, error) {
	args := m.Called(ctx, organizationID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invitation), args.Error(1)
}

// MockTagCache mocks the TagLister cache interface
type MockTagCache struct {
	mock.Mock
}

func (m *MockTagCache) Get(ctx context.Context, userID uuid.UUID) ([]domain.TagWithCount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TagWithCount), args.Error(1)
}

func (m *MockTagCache) Set(ctx context.Context, userID uuid.UUID, tags []domain.TagWithCount) error {
	args := m.Called(ctx, userID, tags)
	return args.Error(0)
}

func (m *MockTagCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockMailer mocks the InvitationMailer interface
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendInvitation(email notify.InvitationEmail) error {
	args := m.Called(email)
	return args.Error(0)
}

func (m *MockMailer) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

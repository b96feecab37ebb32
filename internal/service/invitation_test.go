package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nvoss/linkstash/internal/domain"
	"github.com/nvoss/linkstash/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type invitationMocks struct {
	invitationRepo *MockInvitationRepository
	workspaceRepo  *MockWorkspaceRepository
	orgRepo        *MockOrganizationRepository
}

func newInvitationService(m *invitationMocks, mailer InvitationMailer) *InvitationService {
	access := NewAccessService(m.orgRepo, m.workspaceRepo)
	return NewInvitationService(m.invitationRepo, m.workspaceRepo, access, mailer, 7*24*time.Hour, "https://linkstash.example.com/invitations")
}

func invitationTestMocks() *invitationMocks {
	return &invitationMocks{
		invitationRepo: new(MockInvitationRepository),
		workspaceRepo:  new(MockWorkspaceRepository),
		orgRepo:        new(MockOrganizationRepository),
	}
}

func TestInvitationService_Invite(t *testing.T) {
	ctx := context.Background()
	owner := domain.Principal{ID: uuid.New(), Email: "owner@example.com"}
	orgID := uuid.New()
	org := &domain.Organization{ID: orgID, Name: "Acme", OwnerID: owner.ID}

	t.Run("owner issues a pending invitation", func(t *testing.T) {
		m := invitationTestMocks()
		svc := newInvitationService(m, nil)

		m.orgRepo.On("GetByID", ctx, orgID).Return(org, nil)
		m.invitationRepo.On("Create", ctx, mock.AnythingOfType("*domain.Invitation")).Return(nil)

		issued, err := svc.Invite(ctx, owner, domain.InvitationCreate{
			Email:          "new@example.com",
			Role:           domain.RoleMember,
			OrganizationID: orgID,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.InvitationPending, issued.Invitation.Status)
		assert.NotEmpty(t, issued.Token)
		assert.Equal(t, security.HashToken(issued.Token), issued.Invitation.TokenHash)
		assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), issued.Invitation.ExpiresAt, time.Minute)
	})

	t.Run("owner role cannot be granted by invitation", func(t *testing.T) {
		svc := newInvitationService(invitationTestMocks(), nil)

		_, err := svc.Invite(ctx, owner, domain.InvitationCreate{
			Email:          "new@example.com",
			Role:           domain.RoleOwner,
			OrganizationID: orgID,
		})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("non-owner member is forbidden", func(t *testing.T) {
		member := domain.Principal{ID: uuid.New()}
		m := invitationTestMocks()
		svc := newInvitationService(m, nil)

		m.orgRepo.On("GetByID", ctx, orgID).Return(org, nil)
		m.workspaceRepo.On("IsOrganizationMember", ctx, orgID, member.ID).Return(true, nil)

		_, err := svc.Invite(ctx, member, domain.InvitationCreate{
			Email:          "new@example.com",
			Role:           domain.RoleMember,
			OrganizationID: orgID,
		})
		assert.True(t, domain.IsForbidden(err))
	})

	t.Run("workspace of another organization stays invisible", func(t *testing.T) {
		workspaceID := uuid.New()
		m := invitationTestMocks()
		svc := newInvitationService(m, nil)

		m.orgRepo.On("GetByID", ctx, orgID).Return(org, nil)
		m.workspaceRepo.On("GetByID", ctx, workspaceID).
			Return(&domain.Workspace{ID: workspaceID, OrganizationID: uuid.New()}, nil)

		_, err := svc.Invite(ctx, owner, domain.InvitationCreate{
			Email:          "new@example.com",
			Role:           domain.RoleMember,
			OrganizationID: orgID,
			WorkspaceID:    &workspaceID,
		})
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("duplicate pending invitation conflicts", func(t *testing.T) {
		m := invitationTestMocks()
		svc := newInvitationService(m, nil)

		m.orgRepo.On("GetByID", ctx, orgID).Return(org, nil)
		m.invitationRepo.On("Create", ctx, mock.AnythingOfType("*domain.Invitation")).
			Return(domain.NewConflict("a pending invitation already exists"))

		_, err := svc.Invite(ctx, owner, domain.InvitationCreate{
			Email:          "new@example.com",
			Role:           domain.RoleMember,
			OrganizationID: orgID,
		})
		assert.True(t, domain.IsConflict(err))
	})
}

func TestInvitationService_AcceptInvitation(t *testing.T) {
	ctx := context.Background()
	invitee := domain.Principal{ID: uuid.New(), Email: "new@example.com"}

	t.Run("valid token redeems", func(t *testing.T) {
		m := invitationTestMocks()
		svc := newInvitationService(m, nil)

		accepted := &domain.Invitation{ID: uuid.New(), Status: domain.InvitationAccepted, Email: invitee.Email}
		m.invitationRepo.On("Redeem", ctx, security.HashToken("tok"), invitee, mock.AnythingOfType("time.Time")).
			Return(accepted, nil)

		invitation, err := svc.AcceptInvitation(ctx, "tok", invitee)
		assert.NoError(t, err)
		assert.Equal(t, domain.InvitationAccepted, invitation.Status)
	})

	t.Run("empty token rejected", func(t *testing.T) {
		svc := newInvitationService(invitationTestMocks(), nil)

		_, err := svc.AcceptInvitation(ctx, "", invitee)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("second redeem conflicts", func(t *testing.T) {
		m := invitationTestMocks()
		svc := newInvitationService(m, nil)

		m.invitationRepo.On("Redeem", ctx, mock.AnythingOfType("string"), invitee, mock.AnythingOfType("time.Time")).
			Return(nil, domain.NewConflict("invitation already accepted"))

		_, err := svc.AcceptInvitation(ctx, "tok", invitee)
		assert.True(t, domain.IsConflict(err))
	})

	t.Run("wrong email is forbidden", func(t *testing.T) {
		m := invitationTestMocks()
		svc := newInvitationService(m, nil)

		m.invitationRepo.On("Redeem", ctx, mock.AnythingOfType("string"), invitee, mock.AnythingOfType("time.Time")).
			Return(nil, domain.NewForbidden("invitation was issued to a different email"))

		_, err := svc.AcceptInvitation(ctx, "tok", invitee)
		assert.True(t, domain.IsForbidden(err))
	})
}

func TestInvitationService_GetPendingInvitations(t *testing.T) {
	ctx := context.Background()
	owner := domain.Principal{ID: uuid.New()}
	orgID := uuid.New()
	org := &domain.Organization{ID: orgID, OwnerID: owner.ID}

	t.Run("owner lists pending", func(t *testing.T) {
		m := invitationTestMocks()
		svc := newInvitationService(m, nil)

		pending := []domain.Invitation{{ID: uuid.New(), Status: domain.InvitationPending}}
		m.orgRepo.On("GetByID", ctx, orgID).Return(org, nil)
		m.invitationRepo.On("ListPending", ctx, orgID, mock.AnythingOfType("time.Time")).Return(pending, nil)

		got, err := svc.GetPendingInvitations(ctx, owner, orgID)
		assert.NoError(t, err)
		assert.Equal(t, pending, got)
	})

	t.Run("outsider sees nothing", func(t *testing.T) {
		outsider := domain.Principal{ID: uuid.New()}
		m := invitationTestMocks()
		svc := newInvitationService(m, nil)

		m.orgRepo.On("GetByID", ctx, orgID).Return(org, nil)
		m.workspaceRepo.On("IsOrganizationMember", ctx, orgID, outsider.ID).Return(false, nil)

		_, err := svc.GetPendingInvitations(ctx, outsider, orgID)
		assert.True(t, domain.IsNotFound(err))
	})
}

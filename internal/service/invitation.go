package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nvoss/linkstash/internal/domain"
	"github.com/nvoss/linkstash/internal/notify"
	"github.com/nvoss/linkstash/internal/security"
	"github.com/rs/zerolog/log"
)

// InvitationMailer delivers invitation notifications. Delivery is
// best-effort; the invitation exists and is redeemable regardless.
type InvitationMailer interface {
	SendInvitation(email notify.InvitationEmail) error
	IsConfigured() bool
}

// InvitationService manages the invitation lifecycle: issue, validate,
// redeem into membership.
type InvitationService struct {
	invitationRepo domain.InvitationRepository
	workspaceRepo  domain.WorkspaceRepository
	access         *AccessService
	mailer         InvitationMailer
	ttl            time.Duration
	baseURL        string
}

// NewInvitationService creates a new invitation service. mailer may be nil.
func NewInvitationService(
	invitationRepo domain.InvitationRepository,
	workspaceRepo domain.WorkspaceRepository,
	access *AccessService,
	mailer InvitationMailer,
	ttl time.Duration,
	baseURL string,
) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		workspaceRepo:  workspaceRepo,
		access:         access,
		mailer:         mailer,
		ttl:            ttl,
		baseURL:        baseURL,
	}
}

// Invite issues a pending invitation for the email to join the
// organization, optionally bound to one of its workspaces. Only the
// organization owner may invite. A pending invitation for the same
// (email, organization, workspace) is a conflict.
func (s *InvitationService) Invite(ctx context.Context, principal domain.Principal, input domain.InvitationCreate) (*domain.InvitationIssued, error) {
	if !domain.ValidRole(input.Role) || input.Role == domain.RoleOwner {
		return nil, domain.NewValidation("invalid invitation role %q", input.Role)
	}

	org, err := s.access.RequireOrganizationOwner(ctx, principal, input.OrganizationID)
	if err != nil {
		return nil, err
	}

	var workspace *domain.Workspace
	if input.WorkspaceID != nil {
		workspace, err = s.workspaceRepo.GetByID(ctx, *input.WorkspaceID)
		if err != nil {
			return nil, fmt.Errorf("failed to get workspace: %w", err)
		}
		if workspace == nil || workspace.OrganizationID != org.ID {
			return nil, domain.NewNotFound("workspace")
		}
	}

	token, err := security.GenerateInviteToken()
	if err != nil {
		return nil, domain.NewInternal(err)
	}

	now := time.Now()
	invitation := domain.Invitation{
		ID:             uuid.New(),
		OrganizationID: org.ID,
		WorkspaceID:    input.WorkspaceID,
		Email:          input.Email,
		Role:           input.Role,
		TokenHash:      security.HashToken(token),
		Status:         domain.InvitationPending,
		InvitedBy:      principal.ID,
		ExpiresAt:      now.Add(s.ttl),
		CreatedAt:      now,
	}

	if err := s.invitationRepo.Create(ctx, &invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.notify(invitation, org, workspace, token)

	return &domain.InvitationIssued{Invitation: invitation, Token: token}, nil
}

// notify sends the invitation email in the background. A failed or
// unconfigured send is logged and nothing more; the invitation write is
// already committed and must not be affected.
func (s *InvitationService) notify(invitation domain.Invitation, org *domain.Organization, workspace *domain.Workspace, token string) {
	if s.mailer == nil || !s.mailer.IsConfigured() {
		log.Debug().Str("email", invitation.Email).Msg("Mailer not configured, skipping invitation email")
		return
	}

	workspaceName := ""
	if workspace != nil {
		workspaceName = workspace.Name
	}

	payload := notify.InvitationEmail{
		To:               invitation.Email,
		OrganizationName: org.Name,
		WorkspaceName:    workspaceName,
		Role:             invitation.Role,
		AcceptURL:        fmt.Sprintf("%s/accept?token=%s", s.baseURL, token),
	}

	go func() {
		if err := s.mailer.SendInvitation(payload); err != nil {
			log.Warn().
				Err(err).
				Str("email", invitation.Email).
				Str("invitation_id", invitation.ID.String()).
				Msg("Failed to send invitation email")
		}
	}()
}

// AcceptInvitation redeems the token for the principal, creating the
// workspace membership at the invited role. Redemption is atomic: a
// concurrent second redeem observes the accepted status and fails with
// a conflict, and no duplicate membership is ever created.
func (s *InvitationService) AcceptInvitation(ctx context.Context, token string, principal domain.Principal) (*domain.Invitation, error) {
	if token == "" {
		return nil, domain.NewValidation("token is required")
	}

	invitation, err := s.invitationRepo.Redeem(ctx, security.HashToken(token), principal, time.Now())
	if err != nil {
		if domain.KindOf(err) != domain.KindInternal {
			return nil, err
		}
		return nil, fmt.Errorf("failed to redeem invitation: %w", err)
	}

	return invitation, nil
}

// GetPendingInvitations retrieves the organization's pending, unexpired
// invitations. Owner-only; expired-but-unredeemed invitations are
// filtered out, never silently redeemable.
func (s *InvitationService) GetPendingInvitations(ctx context.Context, principal domain.Principal, organizationID uuid.UUID) ([]domain.Invitation, error) {
	if _, err := s.access.RequireOrganizationOwner(ctx, principal, organizationID); err != nil {
		return nil, err
	}

	invitations, err := s.invitationRepo.ListPending(ctx, organizationID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list pending invitations: %w", err)
	}

	return invitations, nil
}

package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Invitation statuses. Expiry is evaluated at read/redeem time, not
// stored as a transition.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
)

// Invitation represents an invite to join a workspace within an
// organization. The opaque token is returned once at creation; only its
// hash is persisted. Accepted invitations are kept as audit records.
type Invitation struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	WorkspaceID    *uuid.UUID `json:"workspace_id,omitempty"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	TokenHash      string     `json:"-"`
	Status         string     `json:"status"`
	InvitedBy      uuid.UUID  `json:"invited_by"`
	ExpiresAt      time.Time  `json:"expires_at"`
	AcceptedBy     *uuid.UUID `json:"accepted_by,omitempty"`
	AcceptedAt     *time.Time `json:"accepted_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Expired reports whether the invitation's expiry has passed at now
func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Redeemable decides whether the principal may redeem this invitation
// at now. The ordering matters: an already-accepted invitation is a
// conflict even if it has since expired, and expiry is checked before
// the email match so a stale token never probes addresses.
func (i *Invitation) Redeemable(principal Principal, now time.Time) error {
	if i.Status == InvitationAccepted {
		return NewConflict("invitation already accepted")
	}
	if i.Status != InvitationPending {
		return NewValidation("invitation is not pending")
	}
	if i.Expired(now) {
		return NewValidation("invitation has expired")
	}
	if !strings.EqualFold(i.Email, principal.Email) {
		return NewForbidden("invitation was issued to a different email")
	}
	return nil
}

// InvitationCreate represents invitation issuance data
type InvitationCreate struct {
	Email          string     `json:"email" validate:"required,email,max=255"`
	Role           string     `json:"role" validate:"required,oneof=admin member viewer"`
	OrganizationID uuid.UUID  `json:"organization_id" validate:"required"`
	WorkspaceID    *uuid.UUID `json:"workspace_id,omitempty"`
}

// InvitationIssued is the creation payload: the persisted invitation
// plus the one-time plaintext token for the emailed link.
type InvitationIssued struct {
	Invitation Invitation `json:"invitation"`
	Token      string     `json:"token"`
}

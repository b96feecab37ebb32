package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nvoss/linkstash/internal/domain"
)

// InvitationRepository handles invitation data access
type InvitationRepository struct {
	db *DB
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db *DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

const invitationColumns = `id, organization_id, workspace_id, email, role, token_hash, status,
	invited_by, expires_at, accepted_by, accepted_at, created_at`

func scanInvitation(row pgx.Row) (*domain.Invitation, error) {
	var inv domain.Invitation
	err := row.Scan(
		&inv.ID,
		&inv.OrganizationID,
		&inv.WorkspaceID,
		&inv.Email,
		&inv.Role,
		&inv.TokenHash,
		&inv.Status,
		&inv.InvitedBy,
		&inv.ExpiresAt,
		&inv.AcceptedBy,
		&inv.AcceptedAt,
		&inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create persists a pending invitation. A pending invitation already
// covering the same (email, organization, workspace) violates the
// partial unique index and comes back as a conflict.
func (r *InvitationRepository) Create(ctx context.Context, invitation *domain.Invitation) error {
	query := `
		INSERT INTO invitations (` + invitationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		invitation.ID,
		invitation.OrganizationID,
		invitation.WorkspaceID,
		invitation.Email,
		invitation.Role,
		invitation.TokenHash,
		invitation.Status,
		invitation.InvitedBy,
		invitation.ExpiresAt,
		invitation.AcceptedBy,
		invitation.AcceptedAt,
		invitation.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflict("a pending invitation already exists for this email")
		}
		return fmt.Errorf("failed to create invitation: %w", err)
	}

	return nil
}

// Redeem converts a pending invitation into a workspace membership in a
// single transaction. The row lock serializes concurrent redeems of the
// same token: the loser re-reads status accepted and gets a conflict.
func (r *InvitationRepository) Redeem(ctx context.Context, tokenHash string, principal domain.Principal, now time.Time) (*domain.Invitation, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inv, err := scanInvitation(tx.QueryRow(ctx, `
		SELECT `+invitationColumns+`
		FROM invitations
		WHERE token_hash = $1
		FOR UPDATE
	`, tokenHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFound("invitation")
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	if err := inv.Redeemable(principal, now); err != nil {
		return nil, err
	}

	// The invited role applies only when the user is not already a
	// member; an existing membership is never duplicated or downgraded.
	if inv.WorkspaceID != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO workspace_members (workspace_id, user_id, role, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (workspace_id, user_id) DO NOTHING
		`, *inv.WorkspaceID, principal.ID, inv.Role, now)
		if err != nil {
			return nil, fmt.Errorf("failed to create membership: %w", err)
		}
	}

	inv.Status = domain.InvitationAccepted
	inv.AcceptedBy = &principal.ID
	inv.AcceptedAt = &now

	_, err = tx.Exec(ctx, `
		UPDATE invitations
		SET status = $2, accepted_by = $3, accepted_at = $4
		WHERE id = $1
	`, inv.ID, inv.Status, inv.AcceptedBy, inv.AcceptedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inv, nil
}

// ListPending retrieves the organization's pending, unexpired invitations
func (r *InvitationRepository) ListPending(ctx context.Context, organizationID uuid.UUID, now time.Time) ([]domain.Invitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM invitations
		WHERE organization_id = $1 AND status = $2 AND expires_at > $3
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, organizationID, domain.InvitationPending, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	var invitations []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, *inv)
	}

	return invitations, nil
}

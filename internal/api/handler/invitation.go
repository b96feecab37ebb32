package handler

import (
	"net/http"

	"github.com/nvoss/linkstash/internal/api/response"
	"github.com/nvoss/linkstash/internal/domain"
	"github.com/nvoss/linkstash/internal/service"
)

// InvitationHandler handles invitation endpoints
type InvitationHandler struct {
	invitationService *service.InvitationService
}

// NewInvitationHandler creates a new invitation handler
func NewInvitationHandler(invitationService *service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

// Create issues an invitation. Owner-only; the response carries the
// one-time token so callers without a mail setup can still hand it out.
func (h *InvitationHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var input domain.InvitationCreate
	if !decode(w, r, &input) {
		return
	}

	issued, err := h.invitationService.Invite(r.Context(), p, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, issued)
}

// Accept redeems an invitation token for the authenticated caller
func (h *InvitationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var input struct {
		Token string `json:"token" validate:"required"`
	}
	if !decode(w, r, &input) {
		return
	}

	invitation, err := h.invitationService.AcceptInvitation(r.Context(), input.Token, p)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, invitation)
}

// ListPending returns the organization's open invitations. Owner-only;
// expired invitations are not included.
func (h *InvitationHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	orgID, ok := pathUUID(w, r, "organizationID")
	if !ok {
		return
	}

	invitations, err := h.invitationService.GetPendingInvitations(r.Context(), p, orgID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, invitations)
}

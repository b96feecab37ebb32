package handler

import (
	"net/http"

	"github.com/nvoss/linkstash/internal/api/response"
	"github.com/nvoss/linkstash/internal/domain"
	"github.com/nvoss/linkstash/internal/service"
)

// OrganizationHandler handles organization and workspace endpoints
type OrganizationHandler struct {
	orgService *service.OrganizationService
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(orgService *service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

// Create provisions an organization together with its first workspace.
// The caller becomes organization owner and workspace owner in one unit.
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var input domain.OrganizationCreate
	if !decode(w, r, &input) {
		return
	}

	created, err := h.orgService.Create(r.Context(), p, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, created)
}

// List returns the organizations the caller owns
func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	orgs, err := h.orgService.ListOwned(r.Context(), p)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, orgs)
}

// Get returns a single organization
func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	orgID, ok := pathUUID(w, r, "organizationID")
	if !ok {
		return
	}

	org, err := h.orgService.GetOrganization(r.Context(), p, orgID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, org)
}

// ListWorkspaces returns the workspaces the caller is a member of
func (h *OrganizationHandler) ListWorkspaces(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	workspaces, err := h.orgService.ListWorkspaces(r.Context(), p)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, workspaces)
}

// GetWorkspace returns a single workspace the caller can read
func (h *OrganizationHandler) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	workspaceID, ok := pathUUID(w, r, "workspaceID")
	if !ok {
		return
	}

	workspace, err := h.orgService.GetWorkspace(r.Context(), p, workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, workspace)
}

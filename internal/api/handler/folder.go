package handler

import (
	"net/http"

	"github.com/nvoss/linkstash/internal/api/response"
	"github.com/nvoss/linkstash/internal/domain"
	"github.com/nvoss/linkstash/internal/service"
)

// FolderHandler handles folder endpoints
type FolderHandler struct {
	folderService *service.FolderService
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService *service.FolderService) *FolderHandler {
	return &FolderHandler{folderService: folderService}
}

// Create creates a folder in the personal scope, or in a workspace when
// workspace_id is set in the body.
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var input domain.FolderCreate
	if !decode(w, r, &input) {
		return
	}

	folder, err := h.folderService.CreateFolder(r.Context(), p, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, folder)
}

// List returns the folders of one scope with bookmark counts. Without
// workspace_id the scope is personal.
func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	workspaceID, ok := queryUUID(w, r, "workspace_id")
	if !ok {
		return
	}

	scope := domain.PersonalScope(p.ID)
	if workspaceID != nil {
		scope = domain.WorkspaceScope(p.ID, *workspaceID)
	}

	folders, err := h.folderService.ListFolders(r.Context(), p, scope)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, folders)
}

// ListAll returns the personal folders plus the folders of every
// workspace the caller belongs to, grouped by workspace.
func (h *FolderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	tree, err := h.folderService.ListAllFolders(r.Context(), p)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, tree)
}

// GetDefault returns the scope's default folder, creating it on first
// access.
func (h *FolderHandler) GetDefault(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	workspaceID, ok := queryUUID(w, r, "workspace_id")
	if !ok {
		return
	}

	scope := domain.PersonalScope(p.ID)
	if workspaceID != nil {
		scope = domain.WorkspaceScope(p.ID, *workspaceID)
	}

	folder, err := h.folderService.GetOrCreateDefaultFolder(r.Context(), p, scope)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, folder)
}

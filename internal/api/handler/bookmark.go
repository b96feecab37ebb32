package handler

import (
	"net/http"
	"strconv"

	"github.com/nvoss/linkstash/internal/api/response"
	"github.com/nvoss/linkstash/internal/domain"
	"github.com/nvoss/linkstash/internal/service"
)

// BookmarkHandler handles bookmark endpoints
type BookmarkHandler struct {
	bookmarkService *service.BookmarkService
}

// NewBookmarkHandler creates a new bookmark handler
func NewBookmarkHandler(bookmarkService *service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarkService: bookmarkService}
}

// Create creates a bookmark in the personal scope, or in a workspace
// when workspace_id is set in the body.
func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var input domain.BookmarkCreate
	if !decode(w, r, &input) {
		return
	}

	bookmark, err := h.bookmarkService.CreateBookmark(r.Context(), p, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, bookmark)
}

// List returns bookmarks matching the query parameters: workspace_id,
// folder_id, filter (recent, favorites, shared), include_archived,
// limit, offset.
func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	filter, ok := parseBookmarkFilter(w, r)
	if !ok {
		return
	}

	bookmarks, err := h.bookmarkService.GetUserBookmarks(r.Context(), p, filter)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, bookmarks)
}

func parseBookmarkFilter(w http.ResponseWriter, r *http.Request) (domain.BookmarkFilter, bool) {
	var filter domain.BookmarkFilter

	workspaceID, ok := queryUUID(w, r, "workspace_id")
	if !ok {
		return filter, false
	}
	folderID, ok := queryUUID(w, r, "folder_id")
	if !ok {
		return filter, false
	}

	filter.WorkspaceID = workspaceID
	filter.FolderID = folderID
	filter.Filter = r.URL.Query().Get("filter")
	filter.IncludeArchived = r.URL.Query().Get("include_archived") == "true"

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "invalid limit")
			return filter, false
		}
		filter.Limit = limit
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "invalid offset")
			return filter, false
		}
		filter.Offset = offset
	}

	return filter, true
}

// Update applies a partial update to a bookmark
func (h *BookmarkHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	bookmarkID, ok := pathUUID(w, r, "bookmarkID")
	if !ok {
		return
	}

	var input domain.BookmarkUpdate
	if !decode(w, r, &input) {
		return
	}

	bookmark, err := h.bookmarkService.UpdateBookmark(r.Context(), p, bookmarkID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, bookmark)
}

// Archive soft-removes a bookmark from listings
func (h *BookmarkHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, true)
}

// Restore brings an archived bookmark back
func (h *BookmarkHandler) Restore(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, false)
}

func (h *BookmarkHandler) setArchived(w http.ResponseWriter, r *http.Request, archived bool) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	bookmarkID, ok := pathUUID(w, r, "bookmarkID")
	if !ok {
		return
	}

	bookmark, err := h.bookmarkService.ArchiveBookmark(r.Context(), p, bookmarkID, archived)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, bookmark)
}

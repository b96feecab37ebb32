package handler

import (
	"net/http"
	"strconv"

	"github.com/nvoss/linkstash/internal/api/response"
	"github.com/nvoss/linkstash/internal/domain"
	"github.com/nvoss/linkstash/internal/service"
)

// TagHandler handles tag endpoints
type TagHandler struct {
	tagService *service.TagService
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// List returns the caller's tags with usage counts. q filters by
// case-insensitive substring; workspace_id restricts the counts to that
// workspace's bookmarks.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	workspaceID, ok := queryUUID(w, r, "workspace_id")
	if !ok {
		return
	}

	query := domain.TagQuery{
		WorkspaceID: workspaceID,
		Query:       r.URL.Query().Get("q"),
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "invalid limit")
			return
		}
		query.Limit = limit
	}

	tags, err := h.tagService.GetUserTags(r.Context(), p, query)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, tags)
}

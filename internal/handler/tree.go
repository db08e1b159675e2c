package handler

import (
	"log/slog"
	"net/http"
	"strings"

	docsSvc "ailurus/internal/domain/services/docs"
	"ailurus/internal/httputil"
)

// TreeHandler handles HTTP requests for the folder tree
type TreeHandler struct {
	treeService docsSvc.TreeService
	logger      *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService docsSvc.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
		logger:      logger,
	}
}

// GetTree returns the full nested folder tree
// GET /folders
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.treeService.GetTree(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}

// GetSubtree returns the subtree rooted at an exact path
// GET /folders/{path...}
func (h *TreeHandler) GetSubtree(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(r.PathValue("path"), "/")
	if path == "" {
		httputil.RespondError(w, http.StatusBadRequest, "path is required")
		return
	}

	node, err := h.treeService.GetSubtreeByPath(r.Context(), path)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, node)
}

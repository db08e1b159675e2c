package handler

import (
	"log/slog"
	"net/http"

	models "ailurus/internal/domain/models/docs"
	docsSvc "ailurus/internal/domain/services/docs"
	"ailurus/internal/httputil"
)

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	docService docsSvc.DocumentService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService docsSvc.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// HealthCheck returns service liveness
// GET /health
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateDocument creates a document, auto-creating its category and folders
// POST /docs
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req docsSvc.CreateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.docService.CreateDocument(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// GetDocument retrieves a document by slug
// GET /docs/{slug}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		httputil.RespondError(w, http.StatusBadRequest, "slug is required")
		return
	}

	doc, err := h.docService.GetBySlug(r.Context(), slug)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// ListDocuments lists published documents, optionally filtered by category
// GET /docs?category=
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	var categoryID *string
	if category := r.URL.Query().Get("category"); category != "" {
		categoryID = &category
	}

	documents, err := h.docService.ListPublished(r.Context(), categoryID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, documents)
}

// ListOrphans lists documents with no folder association
// GET /docs/orphans/list
func (h *DocumentHandler) ListOrphans(w http.ResponseWriter, r *http.Request) {
	documents, err := h.docService.ListOrphans(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, documents)
}

// UpdateDraft updates a document's editable fields
// PUT /docs/{id}/draft
func (h *DocumentHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req docsSvc.UpdateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.docService.UpdateDraft(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// Publish transitions a document to PUBLISHED
// PUT /docs/{id}/publish
func (h *DocumentHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.docService.Publish(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// Archive soft-deletes a document
// DELETE /docs/{id}
func (h *DocumentHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.docService.Archive(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// AddToFolder links a document into a folder
// POST /docs/{id}/folders/{folderId}
func (h *DocumentHandler) AddToFolder(w http.ResponseWriter, r *http.Request) {
	documentID, err := pathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	folderID, err := pathID(r, "folderId")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.docService.AddToFolder(r.Context(), documentID, folderID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveFromFolder unlinks a document from a folder
// DELETE /docs/{id}/folders/{folderId}
func (h *DocumentHandler) RemoveFromFolder(w http.ResponseWriter, r *http.Request) {
	documentID, err := pathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	folderID, err := pathID(r, "folderId")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.docService.RemoveFromFolder(r.Context(), documentID, folderID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Search runs full-text search over published documents
// GET /search?q=&limit=&offset=
func (h *DocumentHandler) Search(w http.ResponseWriter, r *http.Request) {
	opts := models.SearchOptions{
		Query: r.URL.Query().Get("q"),
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := parsePositiveInt(limit)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		opts.Limit = n
	}
	if offset := r.URL.Query().Get("offset"); offset != "" {
		n, err := parsePositiveInt(offset)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "offset must be a non-negative integer")
			return
		}
		opts.Offset = n
	}

	response, err := h.docService.Search(r.Context(), &opts)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, response)
}

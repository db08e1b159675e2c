package docs

import (
	"context"

	"ailurus/internal/domain/models/docs"
)

// DocumentService handles document business logic
type DocumentService interface {
	// CreateDocument creates a new document, auto-creating its category and
	// resolving its path to folders
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*docs.Document, error)

	// GetBySlug retrieves a document by its unique slug
	GetBySlug(ctx context.Context, slug string) (*docs.Document, error)

	// ListPublished lists published documents, optionally filtered by category
	ListPublished(ctx context.Context, categoryID *string) ([]docs.Document, error)

	// ListOrphans lists documents that are not linked into any folder
	ListOrphans(ctx context.Context) ([]docs.Document, error)

	// UpdateDraft updates an existing document's editable fields
	UpdateDraft(ctx context.Context, id int64, req *UpdateDocumentRequest) (*docs.Document, error)

	// Publish transitions a document to PUBLISHED; rejects empty content
	Publish(ctx context.Context, id int64) (*docs.Document, error)

	// Archive soft-deletes a document by transitioning it to ARCHIVED
	Archive(ctx context.Context, id int64) (*docs.Document, error)

	// AddToFolder links an existing document into a folder.
	// Fails with a conflict if the link already exists.
	AddToFolder(ctx context.Context, documentID, folderID int64) error

	// RemoveFromFolder unlinks a document from a folder.
	// Fails with not-found if the link does not exist.
	RemoveFromFolder(ctx context.Context, documentID, folderID int64) error

	// Search performs full-text search over published documents
	Search(ctx context.Context, opts *docs.SearchOptions) (*docs.SearchResponse, error)
}

// CreateDocumentRequest represents a document creation request
type CreateDocumentRequest struct {
	Title       string               `json:"title"`
	Content     string               `json:"content"`
	Excerpt     *string              `json:"excerpt,omitempty"`
	CategoryID  string               `json:"categoryId"`
	Subcategory *string              `json:"subcategory,omitempty"`
	Path        string               `json:"path"`
	Status      *docs.DocumentStatus `json:"status,omitempty"` // defaults to DRAFT
	CreatedBy   *string              `json:"createdBy,omitempty"`
}

// UpdateDocumentRequest represents a draft update request
type UpdateDocumentRequest struct {
	Title       *string `json:"title,omitempty"`
	Content     *string `json:"content,omitempty"`
	Excerpt     *string `json:"excerpt,omitempty"`
	CategoryID  *string `json:"categoryId,omitempty"`
	Subcategory *string `json:"subcategory,omitempty"`
}

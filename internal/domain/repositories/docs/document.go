package docs

import (
	"context"

	"ailurus/internal/domain/models/docs"
)

// DocumentRepository defines data access operations for documents
type DocumentRepository interface {
	// Create creates a new document and assigns its ID.
	// Fails with domain.ErrConflict if the slug is already taken.
	Create(ctx context.Context, doc *docs.Document) error

	// GetByID retrieves a document by ID
	GetByID(ctx context.Context, id int64) (*docs.Document, error)

	// GetBySlug retrieves a document by its unique slug
	GetBySlug(ctx context.Context, slug string) (*docs.Document, error)

	// Update updates an existing document
	Update(ctx context.Context, doc *docs.Document) error

	// ListPublished lists published documents, optionally filtered by category,
	// newest first
	ListPublished(ctx context.Context, categoryID *string) ([]docs.Document, error)

	// ListByCategory lists documents in a category with the given status
	ListByCategory(ctx context.Context, categoryID string, status docs.DocumentStatus) ([]docs.Document, error)

	// ListOrphans lists documents that have no folder association
	ListOrphans(ctx context.Context) ([]docs.Document, error)

	// CountByCategory counts documents in a category, per status and total
	CountByCategory(ctx context.Context, categoryID string) (docs.CategoryStats, error)

	// Search performs full-text search over published documents
	Search(ctx context.Context, opts *docs.SearchOptions) (*docs.SearchResponse, error)
}

package docs

import (
	"context"

	"ailurus/internal/domain/models/docs"
)

// FolderRepository defines data access operations for folders and their
// document/category associations
type FolderRepository interface {
	// Create creates a new folder and assigns its ID.
	// Fails with domain.ErrConflict if the path is already taken.
	Create(ctx context.Context, folder *docs.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id int64) (*docs.Folder, error)

	// GetByPath retrieves a folder by its exact path
	GetByPath(ctx context.Context, path string) (*docs.Folder, error)

	// Update updates a folder
	Update(ctx context.Context, folder *docs.Folder) error

	// Delete deletes a single folder row
	Delete(ctx context.Context, id int64) error

	// ListChildren lists immediate child folders, ordered by sort order
	ListChildren(ctx context.Context, parentID *int64) ([]docs.Folder, error)

	// CountChildren counts immediate child folders
	CountChildren(ctx context.Context, parentID *int64) (int, error)

	// GetAllWithAssociations retrieves every folder with its linked documents
	// and categories, ordered by sort order then insertion order
	GetAllWithAssociations(ctx context.Context) ([]docs.FolderWithAssociations, error)

	// LinkDocument creates a folder-document association.
	// Fails with domain.ErrConflict if the pair already exists.
	LinkDocument(ctx context.Context, folderID, documentID int64, sortOrder int) error

	// UnlinkDocument removes a folder-document association.
	// Fails with domain.ErrNotFound if the pair does not exist.
	UnlinkDocument(ctx context.Context, folderID, documentID int64) error

	// LinkCategory marks a folder as the root representative of a category
	LinkCategory(ctx context.Context, folderID int64, categoryID string) error

	// ListDocumentLinks lists all folder-document associations for the given folders
	ListDocumentLinks(ctx context.Context, folderIDs []int64) ([]docs.FolderDocument, error)

	// DeleteDocumentLinksByFolders removes all folder-document associations
	// for the given folders
	DeleteDocumentLinksByFolders(ctx context.Context, folderIDs []int64) error

	// DeleteCategoryLinksByFolders removes all folder-category associations
	// for the given folders
	DeleteCategoryLinksByFolders(ctx context.Context, folderIDs []int64) error
}

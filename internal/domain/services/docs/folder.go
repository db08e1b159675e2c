package docs

import (
	"context"

	"ailurus/internal/domain/models/docs"
	"ailurus/internal/httputil"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder creates a new folder; the path must be unique
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*docs.Folder, error)

	// GetFolder retrieves a folder by ID
	GetFolder(ctx context.Context, id int64) (*docs.Folder, error)

	// UpdateFolder updates a folder (rename, re-icon, re-order or move)
	UpdateFolder(ctx context.Context, id int64, req *UpdateFolderRequest) (*docs.Folder, error)

	// DeleteFolder deletes a single folder; fails if it has children
	DeleteFolder(ctx context.Context, id int64) error

	// DeleteRecursive deletes a folder together with all of its transitive
	// descendants and their associations, atomically
	DeleteRecursive(ctx context.Context, id int64) (*docs.DeleteRecursiveResult, error)

	// PreviewDelete reports what DeleteRecursive would remove, without side effects
	PreviewDelete(ctx context.Context, id int64) (*docs.DeletePreview, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name      string          `json:"name"`
	Type      docs.FolderType `json:"type"`
	Path      string          `json:"path"`
	Icon      *string         `json:"icon,omitempty"`
	ParentID  *int64          `json:"parentId,omitempty"` // null for root
	SortOrder *int            `json:"order,omitempty"`    // defaults to sibling count
}

// UpdateFolderRequest represents a folder update request.
// ParentID is tri-state: absent = keep, null = move to root, value = move.
type UpdateFolderRequest struct {
	Name      *string                `json:"name,omitempty"`
	Icon      *string                `json:"icon,omitempty"`
	SortOrder *int                   `json:"order,omitempty"`
	ParentID  httputil.OptionalInt64 `json:"parentId"`
}

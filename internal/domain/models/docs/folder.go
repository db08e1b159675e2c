package docs

import (
	"time"
)

// FolderType distinguishes container folders from document placements
type FolderType string

const (
	// FolderTypeFolder is a container node that may have children
	FolderTypeFolder FolderType = "FOLDER"

	// FolderTypeFile represents a single document's placement in the tree
	FolderTypeFile FolderType = "FILE"
)

type Folder struct {
	ID        int64      `json:"id" db:"id"`
	ParentID  *int64     `json:"parentId" db:"parent_id"` // NULL = root level
	Name      string     `json:"name" db:"name"`
	Type      FolderType `json:"type" db:"type"`
	Path      string     `json:"path" db:"path"` // Full hierarchical path, globally unique
	SortOrder int        `json:"order" db:"sort_order"`
	Icon      *string    `json:"icon" db:"icon"` // nil for FILE nodes
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// FolderDocument links a folder (FILE node in practice) to a document.
// A document may appear in zero, one, or multiple folders.
type FolderDocument struct {
	FolderID   int64 `json:"folder_id" db:"folder_id"`
	DocumentID int64 `json:"document_id" db:"document_id"`
	SortOrder  int   `json:"order" db:"sort_order"`
}

// FolderCategory marks a folder as the root representative of a category
type FolderCategory struct {
	FolderID   int64  `json:"folder_id" db:"folder_id"`
	CategoryID string `json:"category_id" db:"category_id"`
}

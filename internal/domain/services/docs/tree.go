package docs

import (
	"context"

	"ailurus/internal/domain/models/docs"
)

// TreeService builds the hierarchical folder tree and projects it to the
// external wire shape
type TreeService interface {
	// GetTree returns the full projected tree, rooted at the top level
	GetTree(ctx context.Context) ([]docs.FolderNodeResponse, error)

	// GetSubtreeByPath returns the projected node at the exact path together
	// with its descendants
	GetSubtreeByPath(ctx context.Context, path string) (*docs.FolderNodeResponse, error)
}

// PathResolver ensures a FILE-type folder node exists at a document's path,
// creating missing intermediate FOLDER-type ancestors, and links it to the
// document
type PathResolver interface {
	// ResolveOrCreatePath resolves or creates the folder chain for path and
	// links the resulting FILE node to the document. Callers must invoke this
	// at most once per document; re-linking an already linked pair conflicts.
	ResolveOrCreatePath(ctx context.Context, path string, documentID int64, documentTitle string) (*docs.Folder, error)
}

package docs

// DocumentRef is the document metadata embedded in tree nodes (no content)
type DocumentRef struct {
	ID     int64          `json:"id"`
	Slug   string         `json:"slug"`
	Title  string         `json:"title"`
	Status DocumentStatus `json:"status"`
}

// FolderWithAssociations is a folder together with its linked documents and
// categories, ordered by link order. One typed view per query purpose instead
// of a loosely-shaped folder reused across contexts.
type FolderWithAssociations struct {
	Folder
	Documents  []DocumentRef `json:"documents"`
	Categories []Category    `json:"categories"`
}

// FolderTreeNode is a folder with its nested children, built from the flat
// folder list by the tree builder
type FolderTreeNode struct {
	FolderWithAssociations
	Children []*FolderTreeNode `json:"children"`
}

// FolderNodeResponse is the external wire shape of a tree node.
// IDs are stringified; consumers treat them as opaque. Count is omitted when
// zero so renderers can distinguish "no badge" from an explicit 0.
type FolderNodeResponse struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	Type     string               `json:"type"` // "folder" | "file"
	Icon     *string              `json:"icon,omitempty"`
	Slug     string               `json:"slug,omitempty"` // FILE nodes: slug of the first linked document
	Path     string               `json:"path"`
	Order    int                  `json:"order"`
	Count    int                  `json:"count,omitempty"` // Immediate child count badge
	Children []FolderNodeResponse `json:"children,omitempty"`
}

// DeleteRecursiveResult reports a completed cascade deletion
type DeleteRecursiveResult struct {
	DeletedFolders int    `json:"deletedFolders"`
	Message        string `json:"message"`
}

// DeletePreview describes what a cascade deletion would remove. Computed
// read-only; must reflect exactly what DeleteRecursive removes.
type DeletePreview struct {
	FolderCount   int      `json:"folderCount"`
	DocumentCount int      `json:"documentCount"` // Distinct documents across affected folders
	FolderNames   []string `json:"folderNames"`
}

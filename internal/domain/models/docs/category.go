package docs

import (
	"time"
)

type Category struct {
	ID        string    `json:"id" db:"id"` // Slug-like identifier, e.g. "getting-started"
	Name      string    `json:"name" db:"name"`
	Icon      string    `json:"icon" db:"icon"`
	SortOrder int       `json:"order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CategoryStats aggregates document counts per publication status
type CategoryStats struct {
	TotalDocuments int `json:"totalDocuments"`
	PublishedDocs  int `json:"publishedDocs"`
	DraftDocs      int `json:"draftDocs"`
	ArchivedDocs   int `json:"archivedDocs"`
}

// CategoryWithStats is the list/detail view of a category
type CategoryWithStats struct {
	Category
	Stats CategoryStats `json:"stats"`
}

package docs

import (
	"time"
)

// DocumentStatus is the publication state of a document
type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "DRAFT"
	DocumentStatusPublished DocumentStatus = "PUBLISHED"
	DocumentStatusArchived  DocumentStatus = "ARCHIVED"
)

type Document struct {
	ID          int64          `json:"id" db:"id"`
	Slug        string         `json:"slug" db:"slug"` // Unique, generated from title
	Title       string         `json:"title" db:"title"`
	Excerpt     *string        `json:"excerpt" db:"excerpt"`
	Content     string         `json:"content" db:"content"` // Markdown content
	Status      DocumentStatus `json:"status" db:"status"`
	CategoryID  string         `json:"categoryId" db:"category_id"`
	Subcategory *string        `json:"subcategory" db:"subcategory"`
	Path        string         `json:"path" db:"path"` // Intended hierarchical location at creation time
	CreatedBy   string         `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

package docs

import (
	"context"

	"ailurus/internal/domain/models/docs"
)

// CategoryService handles category business logic
type CategoryService interface {
	// ListCategories returns all categories with their document stats
	ListCategories(ctx context.Context) ([]docs.CategoryWithStats, error)

	// GetCategory retrieves a category with its published documents
	GetCategory(ctx context.Context, id string) (*CategoryDetail, error)

	// CreateCategory creates a new category; the ID must be unique
	CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*docs.Category, error)

	// UpdateCategory updates a category
	UpdateCategory(ctx context.Context, id string, req *UpdateCategoryRequest) (*docs.Category, error)

	// DeleteCategory deletes a category; fails while documents reference it
	DeleteCategory(ctx context.Context, id string) error
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	ID        string `json:"id"` // e.g. "getting-started"
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	SortOrder *int   `json:"order,omitempty"`
}

// UpdateCategoryRequest represents a category update request
type UpdateCategoryRequest struct {
	Name      *string `json:"name,omitempty"`
	Icon      *string `json:"icon,omitempty"`
	SortOrder *int    `json:"order,omitempty"`
}

// CategoryDetail is a category with stats and its published documents
type CategoryDetail struct {
	docs.CategoryWithStats
	Documents []docs.Document `json:"documents"`
}

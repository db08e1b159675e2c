package docs

import (
	"context"

	"ailurus/internal/domain/models/docs"
)

// CategoryRepository defines data access operations for categories
type CategoryRepository interface {
	// Create creates a new category.
	// Fails with domain.ErrConflict if the ID is already taken.
	Create(ctx context.Context, category *docs.Category) error

	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id string) (*docs.Category, error)

	// GetAll retrieves all categories, ordered by sort order
	GetAll(ctx context.Context) ([]docs.Category, error)

	// Update updates a category
	Update(ctx context.Context, category *docs.Category) error

	// Delete deletes a category
	Delete(ctx context.Context, id string) error
}

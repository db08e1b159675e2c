package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"ailurus/internal/domain"
	models "ailurus/internal/domain/models/docs"
	docsRepo "ailurus/internal/domain/repositories/docs"
)

// PostgresCategoryRepository implements the CategoryRepository interface
type PostgresCategoryRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(config *RepositoryConfig) docsRepo.CategoryRepository {
	return &PostgresCategoryRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const categoryColumns = "id, name, icon, sort_order, created_at, updated_at"

func scanCategory(row interface{ Scan(...interface{}) error }, cat *models.Category) error {
	return row.Scan(
		&cat.ID,
		&cat.Name,
		&cat.Icon,
		&cat.SortOrder,
		&cat.CreatedAt,
		&cat.UpdatedAt,
	)
}

// Create creates a new category
func (r *PostgresCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, icon, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, r.tables.Categories)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		category.ID,
		category.Name,
		category.Icon,
		category.SortOrder,
		category.CreatedAt,
		category.UpdatedAt,
	).Scan(&category.CreatedAt, &category.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("category %q: %w", category.ID, domain.ErrConflict)
		}
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by ID
func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, categoryColumns, r.tables.Categories)

	var category models.Category
	err := scanCategory(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id), &category)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("category %q: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	return &category, nil
}

// GetAll retrieves all categories, ordered by sort order
func (r *PostgresCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY sort_order ASC
	`, categoryColumns, r.tables.Categories)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		if err := scanCategory(rows, &category); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}

// Update updates a category
func (r *PostgresCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, icon = $2, sort_order = $3, updated_at = $4
		WHERE id = $5
	`, r.tables.Categories)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		category.Name,
		category.Icon,
		category.SortOrder,
		category.UpdatedAt,
		category.ID,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("category %q: %w", category.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a category
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Categories)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("category %q still referenced: %w", id, domain.ErrConflict)
		}
		return fmt.Errorf("delete category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("category %q: %w", id, domain.ErrNotFound)
	}

	return nil
}

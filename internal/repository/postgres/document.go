package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"ailurus/internal/domain"
	models "ailurus/internal/domain/models/docs"
	docsRepo "ailurus/internal/domain/repositories/docs"
)

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) docsRepo.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const documentColumns = "id, slug, title, excerpt, content, status, category_id, subcategory, path, created_by, created_at, updated_at"

func scanDocument(row interface{ Scan(...interface{}) error }, doc *models.Document) error {
	return row.Scan(
		&doc.ID,
		&doc.Slug,
		&doc.Title,
		&doc.Excerpt,
		&doc.Content,
		&doc.Status,
		&doc.CategoryID,
		&doc.Subcategory,
		&doc.Path,
		&doc.CreatedBy,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
}

// Create creates a new document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (slug, title, excerpt, content, status, category_id, subcategory, path, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, r.tables.Documents)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		doc.Slug,
		doc.Title,
		doc.Excerpt,
		doc.Content,
		doc.Status,
		doc.CategoryID,
		doc.Subcategory,
		doc.Path,
		doc.CreatedBy,
		doc.CreatedAt,
		doc.UpdatedAt,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("document slug %q: %w", doc.Slug, domain.ErrConflict)
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document by ID
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, documentColumns, r.tables.Documents)

	var doc models.Document
	err := scanDocument(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id), &doc)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return &doc, nil
}

// GetBySlug retrieves a document by its unique slug
func (r *PostgresDocumentRepository) GetBySlug(ctx context.Context, slug string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE slug = $1
	`, documentColumns, r.tables.Documents)

	var doc models.Document
	err := scanDocument(GetExecutor(ctx, r.pool).QueryRow(ctx, query, slug), &doc)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("document %q: %w", slug, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document by slug: %w", err)
	}

	return &doc, nil
}

// Update updates an existing document
func (r *PostgresDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, excerpt = $2, content = $3, status = $4, category_id = $5, subcategory = $6, path = $7, updated_at = $8
		WHERE id = $9
	`, r.tables.Documents)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		doc.Title,
		doc.Excerpt,
		doc.Content,
		doc.Status,
		doc.CategoryID,
		doc.Subcategory,
		doc.Path,
		doc.UpdatedAt,
		doc.ID,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %d: %w", doc.ID, domain.ErrNotFound)
	}

	return nil
}

// ListPublished lists published documents, optionally filtered by category,
// newest first
func (r *PostgresDocumentRepository) ListPublished(ctx context.Context, categoryID *string) ([]models.Document, error) {
	var query string
	var args []interface{}

	if categoryID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE status = 'PUBLISHED'
			ORDER BY created_at DESC
		`, documentColumns, r.tables.Documents)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE status = 'PUBLISHED' AND category_id = $1
			ORDER BY created_at DESC
		`, documentColumns, r.tables.Documents)
		args = append(args, *categoryID)
	}

	return r.queryDocuments(ctx, query, args...)
}

// ListByCategory lists documents in a category with the given status
func (r *PostgresDocumentRepository) ListByCategory(ctx context.Context, categoryID string, status models.DocumentStatus) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE category_id = $1 AND status = $2
		ORDER BY created_at DESC
	`, documentColumns, r.tables.Documents)

	return r.queryDocuments(ctx, query, categoryID, status)
}

// ListOrphans lists documents that have no folder association
func (r *PostgresDocumentRepository) ListOrphans(ctx context.Context) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s d
		WHERE NOT EXISTS (
			SELECT 1 FROM %s fd WHERE fd.document_id = d.id
		)
		ORDER BY d.created_at DESC
	`, documentColumns, r.tables.Documents, r.tables.FolderDocuments)

	return r.queryDocuments(ctx, query)
}

// CountByCategory counts documents in a category, per status and total
func (r *PostgresDocumentRepository) CountByCategory(ctx context.Context, categoryID string) (models.CategoryStats, error) {
	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'PUBLISHED'),
			COUNT(*) FILTER (WHERE status = 'DRAFT'),
			COUNT(*) FILTER (WHERE status = 'ARCHIVED')
		FROM %s
		WHERE category_id = $1
	`, r.tables.Documents)

	var stats models.CategoryStats
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, categoryID).Scan(
		&stats.TotalDocuments,
		&stats.PublishedDocs,
		&stats.DraftDocs,
		&stats.ArchivedDocs,
	)
	if err != nil {
		return models.CategoryStats{}, fmt.Errorf("count documents by category: %w", err)
	}

	return stats, nil
}

// Search performs full-text search over published documents.
//
// PostgreSQL full-text search components:
//   - to_tsvector(field): converts field to searchable tokens
//   - websearch_to_tsquery(query): converts query with Google-like syntax
//   - @@: full-text match operator
//   - ts_rank(): ranks results by relevance (higher = better match)
//
// Title matches are weighted 2x higher than content matches.
func (r *PostgresDocumentRepository) Search(ctx context.Context, opts *models.SearchOptions) (*models.SearchResponse, error) {
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Strip punctuation the query parser would choke on
	sanitized := strings.TrimSpace(opts.Query)
	if sanitized == "" {
		return &models.SearchResponse{
			Results: []models.SearchResult{},
			Total:   0,
			Query:   opts.Query,
			Page:    opts.Offset/opts.Limit + 1,
			Limit:   opts.Limit,
		}, nil
	}

	exec := GetExecutor(ctx, r.pool)

	searchQuery := fmt.Sprintf(`
		SELECT id, title, slug,
		       COALESCE(excerpt, LEFT(content, 200)) AS excerpt,
		       category_id, path,
		       ts_rank(to_tsvector('simple', title), websearch_to_tsquery('simple', $1)) * 2.0
		       + ts_rank(to_tsvector('simple', content), websearch_to_tsquery('simple', $1)) AS rank
		FROM %s
		WHERE status = 'PUBLISHED'
		  AND (to_tsvector('simple', title) @@ websearch_to_tsquery('simple', $1)
		       OR to_tsvector('simple', content) @@ websearch_to_tsquery('simple', $1))
		ORDER BY rank DESC
		LIMIT $2 OFFSET $3
	`, r.tables.Documents)

	rows, err := exec.Query(ctx, searchQuery, sanitized, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	defer rows.Close()

	results := []models.SearchResult{}
	for rows.Next() {
		var res models.SearchResult
		if err := rows.Scan(&res.ID, &res.Title, &res.Slug, &res.Excerpt, &res.CategoryID, &res.Path, &res.Rank); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search results: %w", err)
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE status = 'PUBLISHED'
		  AND (to_tsvector('simple', title) @@ websearch_to_tsquery('simple', $1)
		       OR to_tsvector('simple', content) @@ websearch_to_tsquery('simple', $1))
	`, r.tables.Documents)

	var total int
	if err := exec.QueryRow(ctx, countQuery, sanitized).Scan(&total); err != nil {
		return nil, fmt.Errorf("count search results: %w", err)
	}

	return &models.SearchResponse{
		Results: results,
		Total:   total,
		Query:   opts.Query,
		Page:    opts.Offset/opts.Limit + 1,
		Limit:   opts.Limit,
	}, nil
}

func (r *PostgresDocumentRepository) queryDocuments(ctx context.Context, query string, args ...interface{}) ([]models.Document, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var documents []models.Document
	for rows.Next() {
		var doc models.Document
		if err := scanDocument(rows, &doc); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		documents = append(documents, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return documents, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"ailurus/internal/domain"
	models "ailurus/internal/domain/models/docs"
	docsRepo "ailurus/internal/domain/repositories/docs"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) docsRepo.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const folderColumns = "id, parent_id, name, type, path, sort_order, icon, created_at, updated_at"

func scanFolder(row interface{ Scan(...interface{}) error }, folder *models.Folder) error {
	return row.Scan(
		&folder.ID,
		&folder.ParentID,
		&folder.Name,
		&folder.Type,
		&folder.Path,
		&folder.SortOrder,
		&folder.Icon,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
}

// Create creates a new folder. The unique constraint on path rejects
// duplicates; concurrent creators of the same path lose with ErrConflict.
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (parent_id, name, type, path, sort_order, icon, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, r.tables.Folders)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		folder.ParentID,
		folder.Name,
		folder.Type,
		folder.Path,
		folder.SortOrder,
		folder.Icon,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("folder path %q: %w", folder.Path, domain.ErrConflict)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id int64) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, folderColumns, r.tables.Folders)

	var folder models.Folder
	err := scanFolder(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id), &folder)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// GetByPath retrieves a folder by its exact path
func (r *PostgresFolderRepository) GetByPath(ctx context.Context, path string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE path = $1
	`, folderColumns, r.tables.Folders)

	var folder models.Folder
	err := scanFolder(GetExecutor(ctx, r.pool).QueryRow(ctx, query, path), &folder)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder at path %q: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder by path: %w", err)
	}

	return &folder, nil
}

// Update updates a folder
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1, name = $2, path = $3, sort_order = $4, icon = $5, updated_at = $6
		WHERE id = $7
	`, r.tables.Folders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		folder.ParentID,
		folder.Name,
		folder.Path,
		folder.SortOrder,
		folder.Icon,
		folder.UpdatedAt,
		folder.ID,
	)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("folder path %q: %w", folder.Path, domain.ErrConflict)
		}
		return fmt.Errorf("update folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %d: %w", folder.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a single folder row
func (r *PostgresFolderRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Folders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("cannot delete folder with children: %w", domain.ErrConflict)
		}
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListChildren lists immediate child folders, ordered by sort order then
// insertion order
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, parentID *int64) ([]models.Folder, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE parent_id IS NULL
			ORDER BY sort_order ASC, id ASC
		`, folderColumns, r.tables.Folders)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE parent_id = $1
			ORDER BY sort_order ASC, id ASC
		`, folderColumns, r.tables.Folders)
		args = append(args, *parentID)
	}

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folder children: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		if err := scanFolder(rows, &folder); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// CountChildren counts immediate child folders
func (r *PostgresFolderRepository) CountChildren(ctx context.Context, parentID *int64) (int, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE parent_id IS NULL`, r.tables.Folders)
	} else {
		query = fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE parent_id = $1`, r.tables.Folders)
		args = append(args, *parentID)
	}

	var count int
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count folder children: %w", err)
	}

	return count, nil
}

// GetAllWithAssociations retrieves every folder together with its linked
// documents and categories. Three queries, assembled in memory; the folder
// ordering (sort_order, then id) is what tree building relies on for stable
// sibling ties.
func (r *PostgresFolderRepository) GetAllWithAssociations(ctx context.Context) ([]models.FolderWithAssociations, error) {
	exec := GetExecutor(ctx, r.pool)

	folderQuery := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY sort_order ASC, id ASC
	`, folderColumns, r.tables.Folders)

	rows, err := exec.Query(ctx, folderQuery)
	if err != nil {
		return nil, fmt.Errorf("get all folders: %w", err)
	}
	defer rows.Close()

	var result []models.FolderWithAssociations
	index := make(map[int64]int)
	for rows.Next() {
		var folder models.Folder
		if err := scanFolder(rows, &folder); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		index[folder.ID] = len(result)
		result = append(result, models.FolderWithAssociations{
			Folder:     folder,
			Documents:  []models.DocumentRef{},
			Categories: []models.Category{},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	docQuery := fmt.Sprintf(`
		SELECT fd.folder_id, d.id, d.slug, d.title, d.status
		FROM %s fd
		JOIN %s d ON d.id = fd.document_id
		ORDER BY fd.folder_id ASC, fd.sort_order ASC
	`, r.tables.FolderDocuments, r.tables.Documents)

	docRows, err := exec.Query(ctx, docQuery)
	if err != nil {
		return nil, fmt.Errorf("get folder documents: %w", err)
	}
	defer docRows.Close()

	for docRows.Next() {
		var folderID int64
		var ref models.DocumentRef
		if err := docRows.Scan(&folderID, &ref.ID, &ref.Slug, &ref.Title, &ref.Status); err != nil {
			return nil, fmt.Errorf("scan folder document: %w", err)
		}
		if i, ok := index[folderID]; ok {
			result[i].Documents = append(result[i].Documents, ref)
		}
	}
	if err := docRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folder documents: %w", err)
	}

	catQuery := fmt.Sprintf(`
		SELECT fc.folder_id, c.id, c.name, c.icon, c.sort_order, c.created_at, c.updated_at
		FROM %s fc
		JOIN %s c ON c.id = fc.category_id
		ORDER BY fc.folder_id ASC
	`, r.tables.FolderCategories, r.tables.Categories)

	catRows, err := exec.Query(ctx, catQuery)
	if err != nil {
		return nil, fmt.Errorf("get folder categories: %w", err)
	}
	defer catRows.Close()

	for catRows.Next() {
		var folderID int64
		var cat models.Category
		if err := catRows.Scan(&folderID, &cat.ID, &cat.Name, &cat.Icon, &cat.SortOrder, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan folder category: %w", err)
		}
		if i, ok := index[folderID]; ok {
			result[i].Categories = append(result[i].Categories, cat)
		}
	}
	if err := catRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folder categories: %w", err)
	}

	return result, nil
}

// LinkDocument creates a folder-document association
func (r *PostgresFolderRepository) LinkDocument(ctx context.Context, folderID, documentID int64, sortOrder int) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (folder_id, document_id, sort_order)
		VALUES ($1, $2, $3)
	`, r.tables.FolderDocuments)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query, folderID, documentID, sortOrder)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("document %d already in folder %d: %w", documentID, folderID, domain.ErrConflict)
		}
		return fmt.Errorf("link document: %w", err)
	}

	return nil
}

// UnlinkDocument removes a folder-document association
func (r *PostgresFolderRepository) UnlinkDocument(ctx context.Context, folderID, documentID int64) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE folder_id = $1 AND document_id = $2
	`, r.tables.FolderDocuments)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, folderID, documentID)
	if err != nil {
		return fmt.Errorf("unlink document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %d not in folder %d: %w", documentID, folderID, domain.ErrNotFound)
	}

	return nil
}

// LinkCategory marks a folder as the root representative of a category
func (r *PostgresFolderRepository) LinkCategory(ctx context.Context, folderID int64, categoryID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (folder_id, category_id)
		VALUES ($1, $2)
	`, r.tables.FolderCategories)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query, folderID, categoryID)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("category %q already linked to folder %d: %w", categoryID, folderID, domain.ErrConflict)
		}
		return fmt.Errorf("link category: %w", err)
	}

	return nil
}

// ListDocumentLinks lists all folder-document associations for the given folders
func (r *PostgresFolderRepository) ListDocumentLinks(ctx context.Context, folderIDs []int64) ([]models.FolderDocument, error) {
	if len(folderIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT folder_id, document_id, sort_order
		FROM %s
		WHERE folder_id = ANY($1)
	`, r.tables.FolderDocuments)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, folderIDs)
	if err != nil {
		return nil, fmt.Errorf("list document links: %w", err)
	}
	defer rows.Close()

	var links []models.FolderDocument
	for rows.Next() {
		var link models.FolderDocument
		if err := rows.Scan(&link.FolderID, &link.DocumentID, &link.SortOrder); err != nil {
			return nil, fmt.Errorf("scan document link: %w", err)
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document links: %w", err)
	}

	return links, nil
}

// DeleteDocumentLinksByFolders removes all folder-document associations for
// the given folders
func (r *PostgresFolderRepository) DeleteDocumentLinksByFolders(ctx context.Context, folderIDs []int64) error {
	if len(folderIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE folder_id = ANY($1)
	`, r.tables.FolderDocuments)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, folderIDs); err != nil {
		return fmt.Errorf("delete document links: %w", err)
	}

	return nil
}

// DeleteCategoryLinksByFolders removes all folder-category associations for
// the given folders
func (r *PostgresFolderRepository) DeleteCategoryLinksByFolders(ctx context.Context, folderIDs []int64) error {
	if len(folderIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE folder_id = ANY($1)
	`, r.tables.FolderCategories)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, folderIDs); err != nil {
		return fmt.Errorf("delete category links: %w", err)
	}

	return nil
}

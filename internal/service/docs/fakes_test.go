package docs

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"ailurus/internal/domain"
	models "ailurus/internal/domain/models/docs"
	"ailurus/internal/domain/repositories"
)

// fakeFolderRepo is an in-memory FolderRepository for service tests.
type fakeFolderRepo struct {
	mu       sync.Mutex
	nextID   int64
	folders  map[int64]*models.Folder
	docLinks []models.FolderDocument
	catLinks []models.FolderCategory
	docRefs  map[int64]models.DocumentRef
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{
		folders: make(map[int64]*models.Folder),
		docRefs: make(map[int64]models.DocumentRef),
	}
}

func (f *fakeFolderRepo) Create(_ context.Context, folder *models.Folder) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.folders {
		if existing.Path == folder.Path {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("folder path %q already exists", folder.Path),
				ResourceType: "folder",
				ResourceID:   fmt.Sprintf("%d", existing.ID),
			}
		}
	}

	f.nextID++
	folder.ID = f.nextID
	copied := *folder
	f.folders[folder.ID] = &copied
	return nil
}

func (f *fakeFolderRepo) GetByID(_ context.Context, id int64) (*models.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	folder, ok := f.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	copied := *folder
	return &copied, nil
}

func (f *fakeFolderRepo) GetByPath(_ context.Context, path string) (*models.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, folder := range f.folders {
		if folder.Path == path {
			copied := *folder
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("folder path %q: %w", path, domain.ErrNotFound)
}

func (f *fakeFolderRepo) Update(_ context.Context, folder *models.Folder) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.folders[folder.ID]; !ok {
		return fmt.Errorf("folder %d: %w", folder.ID, domain.ErrNotFound)
	}
	copied := *folder
	f.folders[folder.ID] = &copied
	return nil
}

func (f *fakeFolderRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.folders[id]; !ok {
		return fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	delete(f.folders, id)
	return nil
}

func (f *fakeFolderRepo) ListChildren(_ context.Context, parentID *int64) ([]models.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var children []models.Folder
	for _, folder := range f.folders {
		if sameParent(folder.ParentID, parentID) {
			children = append(children, *folder)
		}
	}
	sort.Slice(children, func(a, b int) bool {
		if children[a].SortOrder != children[b].SortOrder {
			return children[a].SortOrder < children[b].SortOrder
		}
		return children[a].ID < children[b].ID
	})
	return children, nil
}

func (f *fakeFolderRepo) CountChildren(ctx context.Context, parentID *int64) (int, error) {
	children, err := f.ListChildren(ctx, parentID)
	if err != nil {
		return 0, err
	}
	return len(children), nil
}

func (f *fakeFolderRepo) GetAllWithAssociations(_ context.Context) ([]models.FolderWithAssociations, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := make([]models.FolderWithAssociations, 0, len(f.folders))
	for _, folder := range f.folders {
		entry := models.FolderWithAssociations{Folder: *folder}
		for _, link := range f.docLinks {
			if link.FolderID == folder.ID {
				if ref, ok := f.docRefs[link.DocumentID]; ok {
					entry.Documents = append(entry.Documents, ref)
				}
			}
		}
		all = append(all, entry)
	}
	sort.Slice(all, func(a, b int) bool {
		if all[a].SortOrder != all[b].SortOrder {
			return all[a].SortOrder < all[b].SortOrder
		}
		return all[a].ID < all[b].ID
	})
	return all, nil
}

func (f *fakeFolderRepo) LinkDocument(_ context.Context, folderID, documentID int64, sortOrder int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, link := range f.docLinks {
		if link.FolderID == folderID && link.DocumentID == documentID {
			return fmt.Errorf("document %d already in folder %d: %w", documentID, folderID, domain.ErrConflict)
		}
	}
	f.docLinks = append(f.docLinks, models.FolderDocument{
		FolderID:   folderID,
		DocumentID: documentID,
		SortOrder:  sortOrder,
	})
	return nil
}

func (f *fakeFolderRepo) UnlinkDocument(_ context.Context, folderID, documentID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, link := range f.docLinks {
		if link.FolderID == folderID && link.DocumentID == documentID {
			f.docLinks = append(f.docLinks[:i], f.docLinks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("document %d not in folder %d: %w", documentID, folderID, domain.ErrNotFound)
}

func (f *fakeFolderRepo) LinkCategory(_ context.Context, folderID int64, categoryID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, link := range f.catLinks {
		if link.FolderID == folderID && link.CategoryID == categoryID {
			return fmt.Errorf("category %q already linked to folder %d: %w", categoryID, folderID, domain.ErrConflict)
		}
	}
	f.catLinks = append(f.catLinks, models.FolderCategory{FolderID: folderID, CategoryID: categoryID})
	return nil
}

func (f *fakeFolderRepo) ListDocumentLinks(_ context.Context, folderIDs []int64) ([]models.FolderDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	wanted := make(map[int64]struct{}, len(folderIDs))
	for _, id := range folderIDs {
		wanted[id] = struct{}{}
	}

	var links []models.FolderDocument
	for _, link := range f.docLinks {
		if _, ok := wanted[link.FolderID]; ok {
			links = append(links, link)
		}
	}
	return links, nil
}

func (f *fakeFolderRepo) DeleteDocumentLinksByFolders(_ context.Context, folderIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	wanted := make(map[int64]struct{}, len(folderIDs))
	for _, id := range folderIDs {
		wanted[id] = struct{}{}
	}

	kept := f.docLinks[:0]
	for _, link := range f.docLinks {
		if _, ok := wanted[link.FolderID]; !ok {
			kept = append(kept, link)
		}
	}
	f.docLinks = kept
	return nil
}

func (f *fakeFolderRepo) DeleteCategoryLinksByFolders(_ context.Context, folderIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	wanted := make(map[int64]struct{}, len(folderIDs))
	for _, id := range folderIDs {
		wanted[id] = struct{}{}
	}

	kept := f.catLinks[:0]
	for _, link := range f.catLinks {
		if _, ok := wanted[link.FolderID]; !ok {
			kept = append(kept, link)
		}
	}
	f.catLinks = kept
	return nil
}

func sameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// fakeDocumentRepo is an in-memory DocumentRepository for service tests.
type fakeDocumentRepo struct {
	mu     sync.Mutex
	nextID int64
	docs   map[int64]*models.Document

	// orphanSource reports linked documents so ListOrphans can exclude them
	orphanSource *fakeFolderRepo
}

func newFakeDocumentRepo(folderRepo *fakeFolderRepo) *fakeDocumentRepo {
	return &fakeDocumentRepo{
		docs:         make(map[int64]*models.Document),
		orphanSource: folderRepo,
	}
}

func (f *fakeDocumentRepo) Create(_ context.Context, doc *models.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.docs {
		if existing.Slug == doc.Slug {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("document slug %q already exists", doc.Slug),
				ResourceType: "document",
				ResourceID:   existing.Slug,
			}
		}
	}

	f.nextID++
	doc.ID = f.nextID
	copied := *doc
	f.docs[doc.ID] = &copied

	if f.orphanSource != nil {
		f.orphanSource.mu.Lock()
		f.orphanSource.docRefs[doc.ID] = models.DocumentRef{
			ID:     doc.ID,
			Slug:   doc.Slug,
			Title:  doc.Title,
			Status: doc.Status,
		}
		f.orphanSource.mu.Unlock()
	}
	return nil
}

func (f *fakeDocumentRepo) GetByID(_ context.Context, id int64) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, ok := f.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeDocumentRepo) GetBySlug(_ context.Context, slug string) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, doc := range f.docs {
		if doc.Slug == slug {
			copied := *doc
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("document slug %q: %w", slug, domain.ErrNotFound)
}

func (f *fakeDocumentRepo) Update(_ context.Context, doc *models.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.docs[doc.ID]; !ok {
		return fmt.Errorf("document %d: %w", doc.ID, domain.ErrNotFound)
	}
	copied := *doc
	f.docs[doc.ID] = &copied
	return nil
}

func (f *fakeDocumentRepo) ListPublished(_ context.Context, categoryID *string) ([]models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []models.Document
	for _, doc := range f.docs {
		if doc.Status != models.DocumentStatusPublished {
			continue
		}
		if categoryID != nil && doc.CategoryID != *categoryID {
			continue
		}
		result = append(result, *doc)
	}
	sort.Slice(result, func(a, b int) bool { return result[a].ID < result[b].ID })
	return result, nil
}

func (f *fakeDocumentRepo) ListByCategory(_ context.Context, categoryID string, status models.DocumentStatus) ([]models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []models.Document
	for _, doc := range f.docs {
		if doc.CategoryID == categoryID && doc.Status == status {
			result = append(result, *doc)
		}
	}
	sort.Slice(result, func(a, b int) bool { return result[a].ID < result[b].ID })
	return result, nil
}

func (f *fakeDocumentRepo) ListOrphans(ctx context.Context) ([]models.Document, error) {
	linked := make(map[int64]struct{})
	if f.orphanSource != nil {
		f.orphanSource.mu.Lock()
		for _, link := range f.orphanSource.docLinks {
			linked[link.DocumentID] = struct{}{}
		}
		f.orphanSource.mu.Unlock()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var result []models.Document
	for _, doc := range f.docs {
		if _, ok := linked[doc.ID]; !ok {
			result = append(result, *doc)
		}
	}
	sort.Slice(result, func(a, b int) bool { return result[a].ID < result[b].ID })
	return result, nil
}

func (f *fakeDocumentRepo) CountByCategory(_ context.Context, categoryID string) (models.CategoryStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var stats models.CategoryStats
	for _, doc := range f.docs {
		if doc.CategoryID != categoryID {
			continue
		}
		stats.TotalDocuments++
		switch doc.Status {
		case models.DocumentStatusPublished:
			stats.PublishedDocs++
		case models.DocumentStatusDraft:
			stats.DraftDocs++
		case models.DocumentStatusArchived:
			stats.ArchivedDocs++
		}
	}
	return stats, nil
}

func (f *fakeDocumentRepo) Search(_ context.Context, opts *models.SearchOptions) (*models.SearchResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var results []models.SearchResult
	for _, doc := range f.docs {
		if doc.Status != models.DocumentStatusPublished {
			continue
		}
		if !strings.Contains(strings.ToLower(doc.Title+" "+doc.Content), strings.ToLower(opts.Query)) {
			continue
		}
		excerpt := ""
		if doc.Excerpt != nil {
			excerpt = *doc.Excerpt
		}
		results = append(results, models.SearchResult{
			ID:         doc.ID,
			Title:      doc.Title,
			Slug:       doc.Slug,
			Excerpt:    excerpt,
			CategoryID: doc.CategoryID,
			Path:       doc.Path,
		})
	}
	sort.Slice(results, func(a, b int) bool { return results[a].ID < results[b].ID })

	total := len(results)
	if opts.Offset < len(results) {
		results = results[opts.Offset:]
	} else {
		results = nil
	}
	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	return &models.SearchResponse{
		Results: results,
		Total:   total,
		Query:   opts.Query,
		Page:    opts.Offset/opts.Limit + 1,
		Limit:   opts.Limit,
	}, nil
}

// fakeCategoryRepo is an in-memory CategoryRepository for service tests.
type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*models.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*models.Category)}
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.categories[category.ID]; ok {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("category %q already exists", category.ID),
			ResourceType: "category",
			ResourceID:   category.ID,
		}
	}
	copied := *category
	f.categories[category.ID] = &copied
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	category, ok := f.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %q: %w", id, domain.ErrNotFound)
	}
	copied := *category
	return &copied, nil
}

func (f *fakeCategoryRepo) GetAll(_ context.Context) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := make([]models.Category, 0, len(f.categories))
	for _, category := range f.categories {
		all = append(all, *category)
	}
	sort.Slice(all, func(a, b int) bool {
		if all[a].SortOrder != all[b].SortOrder {
			return all[a].SortOrder < all[b].SortOrder
		}
		return all[a].ID < all[b].ID
	})
	return all, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, category *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.categories[category.ID]; !ok {
		return fmt.Errorf("category %q: %w", category.ID, domain.ErrNotFound)
	}
	copied := *category
	f.categories[category.ID] = &copied
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.categories[id]; !ok {
		return fmt.Errorf("category %q: %w", id, domain.ErrNotFound)
	}
	delete(f.categories, id)
	return nil
}

// fakeTxManager runs the transactional function directly.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

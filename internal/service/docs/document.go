package docs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gosimple/slug"

	"ailurus/internal/config"
	"ailurus/internal/domain"
	models "ailurus/internal/domain/models/docs"
	docsRepo "ailurus/internal/domain/repositories/docs"
	docsSvc "ailurus/internal/domain/services/docs"
)

const defaultAuthor = "anonymous"

type documentService struct {
	docRepo      docsRepo.DocumentRepository
	categoryRepo docsRepo.CategoryRepository
	folderRepo   docsRepo.FolderRepository
	pathResolver docsSvc.PathResolver
	logger       *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo docsRepo.DocumentRepository,
	categoryRepo docsRepo.CategoryRepository,
	folderRepo docsRepo.FolderRepository,
	pathResolver docsSvc.PathResolver,
	logger *slog.Logger,
) docsSvc.DocumentService {
	return &documentService{
		docRepo:      docRepo,
		categoryRepo: categoryRepo,
		folderRepo:   folderRepo,
		pathResolver: pathResolver,
		logger:       logger,
	}
}

func validateCreateDocument(req *docsSvc.CreateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, config.MaxDocumentTitleLength),
		),
		validation.Field(&req.Content, validation.Required.Error("content is required")),
		validation.Field(&req.CategoryID, validation.Required.Error("categoryId is required")),
		validation.Field(&req.Path, validation.Required.Error("path is required")),
		validation.Field(&req.Excerpt, validation.Length(0, config.MaxExcerptLength)),
	)
}

func (s *documentService) CreateDocument(ctx context.Context, req *docsSvc.CreateDocumentRequest) (*models.Document, error) {
	if err := validateCreateDocument(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	docSlug := slug.Make(req.Title)
	if existing, err := s.docRepo.GetBySlug(ctx, docSlug); err == nil {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("document with slug %q already exists", docSlug),
			ResourceType: "document",
			ResourceID:   existing.Slug,
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	// Categories come into existence with their first document
	if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	status := models.DocumentStatusDraft
	if req.Status != nil {
		status = *req.Status
	}
	createdBy := defaultAuthor
	if req.CreatedBy != nil {
		createdBy = *req.CreatedBy
	}

	now := time.Now()
	doc := &models.Document{
		Slug:        docSlug,
		Title:       req.Title,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		Status:      status,
		CategoryID:  req.CategoryID,
		Subcategory: req.Subcategory,
		Path:        req.Path,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	if _, err := s.pathResolver.ResolveOrCreatePath(ctx, req.Path, doc.ID, doc.Title); err != nil {
		return nil, fmt.Errorf("resolve path for document %d: %w", doc.ID, err)
	}

	s.logger.Info("document created",
		"document_id", doc.ID,
		"slug", doc.Slug,
		"category_id", doc.CategoryID,
		"status", doc.Status,
	)
	return doc, nil
}

// ensureCategory creates the category and its root folder if the category
// does not exist yet
func (s *documentService) ensureCategory(ctx context.Context, categoryID string) error {
	_, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	now := time.Now()
	category := &models.Category{
		ID:        categoryID,
		Name:      categoryID,
		Icon:      config.DefaultCategoryIcon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		// A concurrent request may have created it first
		if errors.Is(err, domain.ErrConflict) {
			return nil
		}
		return err
	}

	rootCount, err := s.folderRepo.CountChildren(ctx, nil)
	if err != nil {
		return err
	}
	icon := config.DefaultFolderIcon
	root := &models.Folder{
		Name:      categoryID,
		Type:      models.FolderTypeFolder,
		Path:      categoryID,
		SortOrder: rootCount,
		Icon:      &icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.folderRepo.Create(ctx, root); err != nil {
		return err
	}
	if err := s.folderRepo.LinkCategory(ctx, root.ID, categoryID); err != nil {
		return err
	}

	s.logger.Info("category auto-created", "category_id", categoryID, "root_folder_id", root.ID)
	return nil
}

func (s *documentService) GetBySlug(ctx context.Context, docSlug string) (*models.Document, error) {
	doc, err := s.docRepo.GetBySlug(ctx, docSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Message: "document not found"}
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) ListPublished(ctx context.Context, categoryID *string) ([]models.Document, error) {
	return s.docRepo.ListPublished(ctx, categoryID)
}

func (s *documentService) ListOrphans(ctx context.Context) ([]models.Document, error) {
	return s.docRepo.ListOrphans(ctx)
}

func (s *documentService) UpdateDraft(ctx context.Context, id int64, req *docsSvc.UpdateDocumentRequest) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Message: "document not found"}
		}
		return nil, err
	}

	if req.Title != nil {
		if len(*req.Title) == 0 || len(*req.Title) > config.MaxDocumentTitleLength {
			return nil, fmt.Errorf("%w: title must be 1-%d characters", domain.ErrValidation, config.MaxDocumentTitleLength)
		}
		doc.Title = *req.Title
	}
	if req.Content != nil {
		doc.Content = *req.Content
	}
	if req.Excerpt != nil {
		if len(*req.Excerpt) > config.MaxExcerptLength {
			return nil, fmt.Errorf("%w: excerpt must be at most %d characters", domain.ErrValidation, config.MaxExcerptLength)
		}
		doc.Excerpt = req.Excerpt
	}
	if req.CategoryID != nil {
		if err := s.ensureCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		doc.CategoryID = *req.CategoryID
	}
	if req.Subcategory != nil {
		doc.Subcategory = req.Subcategory
	}

	doc.UpdatedAt = time.Now()
	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Publish(ctx context.Context, id int64) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Message: "document not found"}
		}
		return nil, err
	}
	if doc.Content == "" {
		return nil, fmt.Errorf("%w: cannot publish a document with empty content", domain.ErrValidation)
	}

	doc.Status = models.DocumentStatusPublished
	doc.UpdatedAt = time.Now()
	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document published", "document_id", doc.ID, "slug", doc.Slug)
	return doc, nil
}

func (s *documentService) Archive(ctx context.Context, id int64) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Message: "document not found"}
		}
		return nil, err
	}

	doc.Status = models.DocumentStatusArchived
	doc.UpdatedAt = time.Now()
	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document archived", "document_id", doc.ID, "slug", doc.Slug)
	return doc, nil
}

func (s *documentService) AddToFolder(ctx context.Context, documentID, folderID int64) error {
	if _, err := s.docRepo.GetByID(ctx, documentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.NotFoundError{Message: "document not found"}
		}
		return err
	}
	if _, err := s.folderRepo.GetByID(ctx, folderID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.NotFoundError{Message: "folder not found"}
		}
		return err
	}

	links, err := s.folderRepo.ListDocumentLinks(ctx, []int64{folderID})
	if err != nil {
		return err
	}
	return s.folderRepo.LinkDocument(ctx, folderID, documentID, len(links))
}

func (s *documentService) RemoveFromFolder(ctx context.Context, documentID, folderID int64) error {
	return s.folderRepo.UnlinkDocument(ctx, folderID, documentID)
}

func (s *documentService) Search(ctx context.Context, opts *models.SearchOptions) (*models.SearchResponse, error) {
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.docRepo.Search(ctx, opts)
}

package docs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"ailurus/internal/config"
	"ailurus/internal/domain"
	models "ailurus/internal/domain/models/docs"
	docsRepo "ailurus/internal/domain/repositories/docs"
	docsSvc "ailurus/internal/domain/services/docs"
)

type categoryService struct {
	categoryRepo docsRepo.CategoryRepository
	docRepo      docsRepo.DocumentRepository
	logger       *slog.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(
	categoryRepo docsRepo.CategoryRepository,
	docRepo docsRepo.DocumentRepository,
	logger *slog.Logger,
) docsSvc.CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		docRepo:      docRepo,
		logger:       logger,
	}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]models.CategoryWithStats, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.CategoryWithStats, 0, len(categories))
	for _, category := range categories {
		stats, err := s.docRepo.CountByCategory(ctx, category.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, models.CategoryWithStats{
			Category: category,
			Stats:    stats,
		})
	}
	return result, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id string) (*docsSvc.CategoryDetail, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Message: "category not found"}
		}
		return nil, err
	}

	stats, err := s.docRepo.CountByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	documents, err := s.docRepo.ListByCategory(ctx, id, models.DocumentStatusPublished)
	if err != nil {
		return nil, err
	}

	return &docsSvc.CategoryDetail{
		CategoryWithStats: models.CategoryWithStats{
			Category: *category,
			Stats:    stats,
		},
		Documents: documents,
	}, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req *docsSvc.CreateCategoryRequest) (*models.Category, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.ID, validation.Required.Error("id is required")),
		validation.Field(&req.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, config.MaxFolderNameLength),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	icon := req.Icon
	if icon == "" {
		icon = config.DefaultCategoryIcon
	}
	sortOrder := 0
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	now := time.Now()
	category := &models.Category{
		ID:        req.ID,
		Name:      req.Name,
		Icon:      icon,
		SortOrder: sortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created", "category_id", category.ID)
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id string, req *docsSvc.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Message: "category not found"}
		}
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
		}
		category.Name = *req.Name
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	category.UpdatedAt = time.Now()
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.NotFoundError{Message: "category not found"}
		}
		return err
	}

	stats, err := s.docRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if stats.TotalDocuments > 0 {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("category %q still has %d documents", id, stats.TotalDocuments),
			ResourceType: "category",
			ResourceID:   id,
		}
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("category deleted", "category_id", id)
	return nil
}

// Package seed loads the embedded demo fixture into the database. It goes
// through the service layer so seeded documents get the same slug generation,
// category auto-creation and path resolution as documents created over HTTP.
package seed

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"ailurus/internal/domain"
	models "ailurus/internal/domain/models/docs"
	docsSvc "ailurus/internal/domain/services/docs"
)

//go:embed fixture.yaml
var fixtureFiles embed.FS

// Fixture is the parsed seed data file
type Fixture struct {
	Categories []FixtureCategory `yaml:"categories"`
	Documents  []FixtureDocument `yaml:"documents"`
}

// FixtureCategory describes one seeded category
type FixtureCategory struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Icon  string `yaml:"icon"`
	Order int    `yaml:"order"`
}

// FixtureDocument describes one seeded document
type FixtureDocument struct {
	Title       string  `yaml:"title"`
	Path        string  `yaml:"path"`
	Category    string  `yaml:"category"`
	Subcategory *string `yaml:"subcategory"`
	Status      string  `yaml:"status"`
	Excerpt     *string `yaml:"excerpt"`
	Content     string  `yaml:"content"`
}

// LoadFixture parses the embedded fixture file
func LoadFixture() (*Fixture, error) {
	data, err := fixtureFiles.ReadFile("fixture.yaml")
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("unmarshal fixture: %w", err)
	}
	return &fixture, nil
}

// Seeder writes fixture data through the service layer
type Seeder struct {
	docService      docsSvc.DocumentService
	categoryService docsSvc.CategoryService
	logger          *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(docService docsSvc.DocumentService, categoryService docsSvc.CategoryService, logger *slog.Logger) *Seeder {
	return &Seeder{
		docService:      docService,
		categoryService: categoryService,
		logger:          logger,
	}
}

// Run seeds categories then documents. Already-existing categories and
// documents are skipped, so re-running against a seeded database is safe.
func (s *Seeder) Run(ctx context.Context, fixture *Fixture) error {
	for _, c := range fixture.Categories {
		order := c.Order
		_, err := s.categoryService.CreateCategory(ctx, &docsSvc.CreateCategoryRequest{
			ID:        c.ID,
			Name:      c.Name,
			Icon:      c.Icon,
			SortOrder: &order,
		})
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				s.logger.Debug("category already seeded", "category_id", c.ID)
				continue
			}
			return fmt.Errorf("seed category %q: %w", c.ID, err)
		}
		s.logger.Info("seeded category", "category_id", c.ID)
	}

	for _, d := range fixture.Documents {
		status := models.DocumentStatus(d.Status)
		if status == "" {
			status = models.DocumentStatusDraft
		}

		doc, err := s.docService.CreateDocument(ctx, &docsSvc.CreateDocumentRequest{
			Title:       d.Title,
			Content:     d.Content,
			Excerpt:     d.Excerpt,
			CategoryID:  d.Category,
			Subcategory: d.Subcategory,
			Path:        d.Path,
			Status:      &status,
		})
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				s.logger.Debug("document already seeded", "path", d.Path)
				continue
			}
			return fmt.Errorf("seed document %q: %w", d.Path, err)
		}
		s.logger.Info("seeded document", "document_id", doc.ID, "slug", doc.Slug, "path", d.Path)
	}

	return nil
}

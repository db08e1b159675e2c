package docs

import (
	"context"
	"errors"
	"testing"

	"ailurus/internal/domain"
	models "ailurus/internal/domain/models/docs"
	docsSvc "ailurus/internal/domain/services/docs"
)

func newDocumentFixture() (*fakeFolderRepo, *fakeDocumentRepo, *fakeCategoryRepo, docsSvc.DocumentService) {
	folderRepo := newFakeFolderRepo()
	docRepo := newFakeDocumentRepo(folderRepo)
	categoryRepo := newFakeCategoryRepo()
	resolver := NewPathResolver(folderRepo, fakeTxManager{}, testLogger())
	svc := NewDocumentService(docRepo, categoryRepo, folderRepo, resolver, testLogger())
	return folderRepo, docRepo, categoryRepo, svc
}

func TestDocumentService_CreateDocument(t *testing.T) {
	ctx := context.Background()
	folderRepo, _, categoryRepo, svc := newDocumentFixture()

	doc, err := svc.CreateDocument(ctx, &docsSvc.CreateDocumentRequest{
		Title:      "My Doc",
		Content:    "Some content",
		CategoryID: "NewCat",
		Path:       "NewCat/Sub/MyDoc",
	})
	if err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}

	if doc.Slug != "my-doc" {
		t.Errorf("slug: got %q, want \"my-doc\"", doc.Slug)
	}
	if doc.Status != models.DocumentStatusDraft {
		t.Errorf("status: got %s, want DRAFT", doc.Status)
	}
	if doc.CreatedBy != "anonymous" {
		t.Errorf("createdBy: got %q, want \"anonymous\"", doc.CreatedBy)
	}

	// Category was auto-created with its root folder linked
	category, err := categoryRepo.GetByID(ctx, "NewCat")
	if err != nil {
		t.Fatalf("category should be auto-created: %v", err)
	}
	if category.Name != "NewCat" {
		t.Errorf("auto-created category name: got %q", category.Name)
	}
	catRoot, err := folderRepo.GetByPath(ctx, "NewCat")
	if err != nil {
		t.Fatalf("category root folder missing: %v", err)
	}
	foundLink := false
	for _, link := range folderRepo.catLinks {
		if link.FolderID == catRoot.ID && link.CategoryID == "NewCat" {
			foundLink = true
		}
	}
	if !foundLink {
		t.Error("category root folder should be linked to the category")
	}

	// The full path chain exists with a FILE leaf linked to the document
	leaf, err := folderRepo.GetByPath(ctx, "NewCat/Sub/MyDoc")
	if err != nil {
		t.Fatalf("leaf folder missing: %v", err)
	}
	if leaf.Type != models.FolderTypeFile {
		t.Errorf("leaf type: got %s, want FILE", leaf.Type)
	}
	links, _ := folderRepo.ListDocumentLinks(ctx, []int64{leaf.ID})
	if len(links) != 1 || links[0].DocumentID != doc.ID {
		t.Errorf("expected document linked to leaf, got %+v", links)
	}
}

func TestDocumentService_CreateDocument_SlugConflict(t *testing.T) {
	ctx := context.Background()
	_, _, _, svc := newDocumentFixture()

	req := &docsSvc.CreateDocumentRequest{
		Title:      "Same Title",
		Content:    "first",
		CategoryID: "cat",
		Path:       "cat/First",
	}
	if _, err := svc.CreateDocument(ctx, req); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.CreateDocument(ctx, &docsSvc.CreateDocumentRequest{
		Title:      "Same Title",
		Content:    "second",
		CategoryID: "cat",
		Path:       "cat/Second",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected slug conflict, got %v", err)
	}
}

func TestDocumentService_CreateDocument_Validation(t *testing.T) {
	ctx := context.Background()
	_, _, _, svc := newDocumentFixture()

	tests := []struct {
		name string
		req  docsSvc.CreateDocumentRequest
	}{
		{"missing title", docsSvc.CreateDocumentRequest{Content: "c", CategoryID: "x", Path: "x/Doc"}},
		{"missing content", docsSvc.CreateDocumentRequest{Title: "T", CategoryID: "x", Path: "x/Doc"}},
		{"missing category", docsSvc.CreateDocumentRequest{Title: "T", Content: "c", Path: "x/Doc"}},
		{"missing path", docsSvc.CreateDocumentRequest{Title: "T", Content: "c", CategoryID: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			if _, err := svc.CreateDocument(ctx, &req); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestDocumentService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	_, _, _, svc := newDocumentFixture()

	doc, err := svc.CreateDocument(ctx, &docsSvc.CreateDocumentRequest{
		Title:      "Lifecycle Doc",
		Content:    "body",
		CategoryID: "cat",
		Path:       "cat/Lifecycle Doc",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("publish", func(t *testing.T) {
		published, err := svc.Publish(ctx, doc.ID)
		if err != nil {
			t.Fatalf("Publish failed: %v", err)
		}
		if published.Status != models.DocumentStatusPublished {
			t.Errorf("status: got %s, want PUBLISHED", published.Status)
		}
	})

	t.Run("published listing", func(t *testing.T) {
		listed, err := svc.ListPublished(ctx, nil)
		if err != nil {
			t.Fatalf("ListPublished failed: %v", err)
		}
		if len(listed) != 1 || listed[0].ID != doc.ID {
			t.Errorf("expected the published doc, got %+v", listed)
		}
	})

	t.Run("archive", func(t *testing.T) {
		archived, err := svc.Archive(ctx, doc.ID)
		if err != nil {
			t.Fatalf("Archive failed: %v", err)
		}
		if archived.Status != models.DocumentStatusArchived {
			t.Errorf("status: got %s, want ARCHIVED", archived.Status)
		}

		listed, _ := svc.ListPublished(ctx, nil)
		if len(listed) != 0 {
			t.Errorf("archived doc should leave published listings, got %+v", listed)
		}

		// Still reachable by slug
		if _, err := svc.GetBySlug(ctx, archived.Slug); err != nil {
			t.Errorf("archived doc should stay readable: %v", err)
		}
	})
}

func TestDocumentService_PublishRejectsEmptyContent(t *testing.T) {
	ctx := context.Background()
	_, docRepo, _, svc := newDocumentFixture()

	doc, err := svc.CreateDocument(ctx, &docsSvc.CreateDocumentRequest{
		Title:      "Empty Doc",
		Content:    "placeholder",
		CategoryID: "cat",
		Path:       "cat/Empty Doc",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Blank the content behind the service's back
	stored, _ := docRepo.GetByID(ctx, doc.ID)
	stored.Content = ""
	if err := docRepo.Update(ctx, stored); err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, err := svc.Publish(ctx, doc.ID); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for empty content, got %v", err)
	}
}

func TestDocumentService_FolderLinks(t *testing.T) {
	ctx := context.Background()
	folderRepo, _, _, svc := newDocumentFixture()

	doc, err := svc.CreateDocument(ctx, &docsSvc.CreateDocumentRequest{
		Title:      "Linked Doc",
		Content:    "body",
		CategoryID: "cat",
		Path:       "cat/Linked Doc",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	extra := &models.Folder{Name: "extra", Type: models.FolderTypeFolder, Path: "extra"}
	if err := folderRepo.Create(ctx, extra); err != nil {
		t.Fatalf("seed extra folder: %v", err)
	}

	if err := svc.AddToFolder(ctx, doc.ID, extra.ID); err != nil {
		t.Fatalf("AddToFolder failed: %v", err)
	}
	if err := svc.AddToFolder(ctx, doc.ID, extra.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict on duplicate link, got %v", err)
	}

	if err := svc.RemoveFromFolder(ctx, doc.ID, extra.ID); err != nil {
		t.Fatalf("RemoveFromFolder failed: %v", err)
	}
	if err := svc.RemoveFromFolder(ctx, doc.ID, extra.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found on missing link, got %v", err)
	}
}

func TestDocumentService_ListOrphans(t *testing.T) {
	ctx := context.Background()
	folderRepo, docRepo, _, svc := newDocumentFixture()

	linked, err := svc.CreateDocument(ctx, &docsSvc.CreateDocumentRequest{
		Title:      "Linked",
		Content:    "body",
		CategoryID: "cat",
		Path:       "cat/Linked",
	})
	if err != nil {
		t.Fatalf("create linked: %v", err)
	}

	// Insert an orphan directly, bypassing path resolution
	orphan := &models.Document{
		Slug: "orphan", Title: "Orphan", Content: "body",
		Status: models.DocumentStatusDraft, CategoryID: "cat",
		Path: "cat/Orphan", CreatedBy: "anonymous",
	}
	if err := docRepo.Create(ctx, orphan); err != nil {
		t.Fatalf("create orphan: %v", err)
	}

	orphans, err := svc.ListOrphans(ctx)
	if err != nil {
		t.Fatalf("ListOrphans failed: %v", err)
	}
	if len(orphans) != 1 || orphans[0].ID != orphan.ID {
		t.Errorf("expected only the orphan, got %+v", orphans)
	}

	// Unlinking the other document makes it an orphan too
	leaf, _ := folderRepo.GetByPath(ctx, "cat/Linked")
	if err := svc.RemoveFromFolder(ctx, linked.ID, leaf.ID); err != nil {
		t.Fatalf("unlink: %v", err)
	}
	orphans, _ = svc.ListOrphans(ctx)
	if len(orphans) != 2 {
		t.Errorf("expected 2 orphans after unlink, got %d", len(orphans))
	}
}

func TestDocumentService_Search(t *testing.T) {
	ctx := context.Background()
	_, _, _, svc := newDocumentFixture()

	doc, err := svc.CreateDocument(ctx, &docsSvc.CreateDocumentRequest{
		Title:      "Search Target",
		Content:    "the quick brown fox",
		CategoryID: "cat",
		Path:       "cat/Search Target",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Publish(ctx, doc.ID); err != nil {
		t.Fatalf("publish: %v", err)
	}

	t.Run("defaults applied", func(t *testing.T) {
		resp, err := svc.Search(ctx, &models.SearchOptions{Query: "quick brown"})
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if resp.Limit != 10 {
			t.Errorf("default limit: got %d, want 10", resp.Limit)
		}
		if resp.Total != 1 || len(resp.Results) != 1 {
			t.Errorf("expected one hit, got total=%d results=%d", resp.Total, len(resp.Results))
		}
	})

	t.Run("empty query rejected", func(t *testing.T) {
		if _, err := svc.Search(ctx, &models.SearchOptions{}); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("limit capped", func(t *testing.T) {
		if _, err := svc.Search(ctx, &models.SearchOptions{Query: "fox", Limit: 1000}); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected validation error for oversized limit, got %v", err)
		}
	})
}

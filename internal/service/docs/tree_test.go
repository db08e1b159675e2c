package docs

import (
	"context"
	"log/slog"
	"testing"

	models "ailurus/internal/domain/models/docs"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func i64(v int64) *int64 { return &v }

func flatFolder(id int64, parentID *int64, name string, folderType models.FolderType, path string, order int) models.FolderWithAssociations {
	return models.FolderWithAssociations{
		Folder: models.Folder{
			ID:        id,
			ParentID:  parentID,
			Name:      name,
			Type:      folderType,
			Path:      path,
			SortOrder: order,
		},
	}
}

func TestBuildTree_NestsByParentID(t *testing.T) {
	flat := []models.FolderWithAssociations{
		flatFolder(1, nil, "guides", models.FolderTypeFolder, "guides", 0),
		flatFolder(2, i64(1), "Workflow", models.FolderTypeFolder, "guides/Workflow", 0),
		flatFolder(3, i64(2), "Publishing", models.FolderTypeFile, "guides/Workflow/Publishing", 0),
		flatFolder(4, nil, "reference", models.FolderTypeFolder, "reference", 1),
	}

	tree := BuildTree(flat, nil)

	if len(tree) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(tree))
	}
	if tree[0].Name != "guides" || tree[1].Name != "reference" {
		t.Errorf("unexpected root order: %s, %s", tree[0].Name, tree[1].Name)
	}
	if len(tree[0].Children) != 1 || tree[0].Children[0].Name != "Workflow" {
		t.Fatalf("expected guides > Workflow, got %+v", tree[0].Children)
	}
	if len(tree[0].Children[0].Children) != 1 || tree[0].Children[0].Children[0].Name != "Publishing" {
		t.Errorf("expected Workflow > Publishing, got %+v", tree[0].Children[0].Children)
	}
	if len(tree[1].Children) != 0 {
		t.Errorf("reference should have no children, got %d", len(tree[1].Children))
	}
}

func TestBuildTree_SiblingOrdering(t *testing.T) {
	// b and c share sort order 1; their relative listing order must survive
	flat := []models.FolderWithAssociations{
		flatFolder(10, nil, "b", models.FolderTypeFolder, "b", 1),
		flatFolder(11, nil, "c", models.FolderTypeFolder, "c", 1),
		flatFolder(12, nil, "a", models.FolderTypeFolder, "a", 0),
	}

	tree := BuildTree(flat, nil)

	got := []string{tree[0].Name, tree[1].Name, tree[2].Name}
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sibling order: got %v, want %v", got, want)
		}
	}
}

func TestBuildTree_SubtreeRoot(t *testing.T) {
	flat := []models.FolderWithAssociations{
		flatFolder(1, nil, "guides", models.FolderTypeFolder, "guides", 0),
		flatFolder(2, i64(1), "Workflow", models.FolderTypeFolder, "guides/Workflow", 0),
		flatFolder(3, i64(1), "Organization", models.FolderTypeFolder, "guides/Organization", 1),
		flatFolder(4, i64(2), "Publishing", models.FolderTypeFile, "guides/Workflow/Publishing", 0),
	}

	subtree := BuildTree(flat, i64(1))

	if len(subtree) != 2 {
		t.Fatalf("expected 2 children of guides, got %d", len(subtree))
	}
	if subtree[0].Name != "Workflow" || subtree[1].Name != "Organization" {
		t.Errorf("unexpected subtree order: %s, %s", subtree[0].Name, subtree[1].Name)
	}
	if len(subtree[0].Children) != 1 {
		t.Errorf("Workflow should keep its descendants, got %d children", len(subtree[0].Children))
	}
}

func TestBuildTree_DoesNotMutateInput(t *testing.T) {
	flat := []models.FolderWithAssociations{
		flatFolder(10, nil, "b", models.FolderTypeFolder, "b", 1),
		flatFolder(12, nil, "a", models.FolderTypeFolder, "a", 0),
	}

	BuildTree(flat, nil)

	if flat[0].Name != "b" || flat[1].Name != "a" {
		t.Errorf("input slice was reordered: %s, %s", flat[0].Name, flat[1].Name)
	}
}

func TestTreeService_GetSubtreeByPath(t *testing.T) {
	ctx := context.Background()
	folderRepo := newFakeFolderRepo()

	seedFakeTree(t, folderRepo)

	svc := NewTreeService(folderRepo, testLogger())

	t.Run("existing path", func(t *testing.T) {
		node, err := svc.GetSubtreeByPath(ctx, "guides/Workflow")
		if err != nil {
			t.Fatalf("GetSubtreeByPath failed: %v", err)
		}
		if node.Name != "Workflow" {
			t.Errorf("expected Workflow, got %s", node.Name)
		}
		if len(node.Children) != 1 || node.Children[0].Name != "Publishing" {
			t.Errorf("expected Publishing child, got %+v", node.Children)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		if _, err := svc.GetSubtreeByPath(ctx, "does/not/exist"); err == nil {
			t.Fatal("expected error for missing path")
		}
	})
}

// seedFakeTree creates guides/{Workflow/Publishing,Organization} plus a
// reference root.
func seedFakeTree(t *testing.T, repo *fakeFolderRepo) {
	t.Helper()
	ctx := context.Background()

	guides := &models.Folder{Name: "guides", Type: models.FolderTypeFolder, Path: "guides", SortOrder: 0}
	if err := repo.Create(ctx, guides); err != nil {
		t.Fatalf("seed guides: %v", err)
	}
	workflow := &models.Folder{ParentID: &guides.ID, Name: "Workflow", Type: models.FolderTypeFolder, Path: "guides/Workflow", SortOrder: 0}
	if err := repo.Create(ctx, workflow); err != nil {
		t.Fatalf("seed workflow: %v", err)
	}
	publishing := &models.Folder{ParentID: &workflow.ID, Name: "Publishing", Type: models.FolderTypeFile, Path: "guides/Workflow/Publishing", SortOrder: 0}
	if err := repo.Create(ctx, publishing); err != nil {
		t.Fatalf("seed publishing: %v", err)
	}
	organization := &models.Folder{ParentID: &guides.ID, Name: "Organization", Type: models.FolderTypeFolder, Path: "guides/Organization", SortOrder: 1}
	if err := repo.Create(ctx, organization); err != nil {
		t.Fatalf("seed organization: %v", err)
	}
	reference := &models.Folder{Name: "reference", Type: models.FolderTypeFolder, Path: "reference", SortOrder: 1}
	if err := repo.Create(ctx, reference); err != nil {
		t.Fatalf("seed reference: %v", err)
	}
}

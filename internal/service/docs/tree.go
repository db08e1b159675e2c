package docs

import (
	"context"
	"log/slog"
	"sort"

	models "ailurus/internal/domain/models/docs"
	docsRepo "ailurus/internal/domain/repositories/docs"
	docsSvc "ailurus/internal/domain/services/docs"
)

// BuildTree builds the nested folder tree from a flat folder list, rooted at
// rootParentID (nil = top level). The input is never mutated and never
// re-queried: children come from a parentID index built once over the full
// list, so a subtree rooted at any folder costs a single list fetch.
// Siblings are ordered by sort order ascending; ties keep input order.
func BuildTree(folders []models.FolderWithAssociations, rootParentID *int64) []*models.FolderTreeNode {
	byParent := make(map[int64][]int)
	var rootIdx []int

	for i, folder := range folders {
		if folder.ParentID == nil {
			rootIdx = append(rootIdx, i)
		} else {
			byParent[*folder.ParentID] = append(byParent[*folder.ParentID], i)
		}
	}

	var build func(parentIdx []int) []*models.FolderTreeNode
	build = func(parentIdx []int) []*models.FolderTreeNode {
		nodes := make([]*models.FolderTreeNode, 0, len(parentIdx))
		for _, i := range parentIdx {
			nodes = append(nodes, &models.FolderTreeNode{
				FolderWithAssociations: folders[i],
				Children:               build(byParent[folders[i].ID]),
			})
		}
		// Stable: equal sort orders keep the listing order
		sort.SliceStable(nodes, func(a, b int) bool {
			return nodes[a].SortOrder < nodes[b].SortOrder
		})
		return nodes
	}

	if rootParentID == nil {
		return build(rootIdx)
	}
	return build(byParent[*rootParentID])
}

// treeService implements the TreeService interface
type treeService struct {
	folderRepo docsRepo.FolderRepository
	logger     *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(folderRepo docsRepo.FolderRepository, logger *slog.Logger) docsSvc.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		logger:     logger,
	}
}

// GetTree returns the full projected tree, rooted at the top level
func (s *treeService) GetTree(ctx context.Context) ([]models.FolderNodeResponse, error) {
	folders, err := s.folderRepo.GetAllWithAssociations(ctx)
	if err != nil {
		return nil, err
	}

	tree := BuildTree(folders, nil)

	s.logger.Info("folder tree built",
		"folder_count", len(folders),
		"root_count", len(tree),
	)

	return ProjectNodes(tree), nil
}

// GetSubtreeByPath returns the projected node at the exact path with its
// descendants. One full list fetch; the subtree is computed in memory.
func (s *treeService) GetSubtreeByPath(ctx context.Context, path string) (*models.FolderNodeResponse, error) {
	folder, err := s.folderRepo.GetByPath(ctx, path)
	if err != nil {
		return nil, err
	}

	folders, err := s.folderRepo.GetAllWithAssociations(ctx)
	if err != nil {
		return nil, err
	}

	root := &models.FolderTreeNode{
		Children: BuildTree(folders, &folder.ID),
	}
	for _, f := range folders {
		if f.ID == folder.ID {
			root.FolderWithAssociations = f
			break
		}
	}

	projected := ProjectNode(root)
	return &projected, nil
}

package docs

import (
	"context"
	"errors"
	"fmt"

	"ailurus/internal/domain"
	models "ailurus/internal/domain/models/docs"
)

// collectDescendants walks the subtree rooted at the given folder breadth
// first and returns every folder in discovery order, root included.
func (s *folderService) collectDescendants(ctx context.Context, root *models.Folder) ([]models.Folder, error) {
	all := []models.Folder{*root}
	frontier := []int64{root.ID}

	for len(frontier) > 0 {
		var next []int64
		for _, id := range frontier {
			parentID := id
			children, err := s.folderRepo.ListChildren(ctx, &parentID)
			if err != nil {
				return nil, err
			}
			for _, child := range children {
				all = append(all, child)
				next = append(next, child.ID)
			}
		}
		frontier = next
	}

	return all, nil
}

// DeleteRecursive deletes a folder and its entire subtree. Document and
// category links are removed first so no link row ever outlives its folder;
// folder rows then go child-before-parent so the parent FK never dangles
// mid-transaction.
func (s *folderService) DeleteRecursive(ctx context.Context, id int64) (*models.DeleteRecursiveResult, error) {
	root, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Message: "folder not found"}
		}
		return nil, err
	}

	all, err := s.collectDescendants(ctx, root)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(all))
	for i, f := range all {
		ids[i] = f.ID
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.folderRepo.DeleteDocumentLinksByFolders(txCtx, ids); err != nil {
			return err
		}
		if err := s.folderRepo.DeleteCategoryLinksByFolders(txCtx, ids); err != nil {
			return err
		}
		for i := len(ids) - 1; i >= 0; i-- {
			if err := s.folderRepo.Delete(txCtx, ids[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder subtree deleted",
		"folder_id", id,
		"path", root.Path,
		"deleted_folders", len(ids),
	)

	return &models.DeleteRecursiveResult{
		DeletedFolders: len(ids),
		Message:        fmt.Sprintf("Deleted %d folders", len(ids)),
	}, nil
}

// PreviewDelete reports what DeleteRecursive would remove, without touching
// anything. Documents linked from several folders in the subtree count once.
func (s *folderService) PreviewDelete(ctx context.Context, id int64) (*models.DeletePreview, error) {
	root, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Message: "folder not found"}
		}
		return nil, err
	}

	all, err := s.collectDescendants(ctx, root)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(all))
	names := make([]string, len(all))
	for i, f := range all {
		ids[i] = f.ID
		names[i] = f.Name
	}

	links, err := s.folderRepo.ListDocumentLinks(ctx, ids)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{}, len(links))
	for _, link := range links {
		seen[link.DocumentID] = struct{}{}
	}

	return &models.DeletePreview{
		FolderCount:   len(ids),
		DocumentCount: len(seen),
		FolderNames:   names,
	}, nil
}

package docs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ailurus/internal/config"
	"ailurus/internal/domain"
	models "ailurus/internal/domain/models/docs"
	"ailurus/internal/domain/repositories"
	docsRepo "ailurus/internal/domain/repositories/docs"
	docsSvc "ailurus/internal/domain/services/docs"
)

type pathResolverService struct {
	folderRepo docsRepo.FolderRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewPathResolver creates a new path resolver service
func NewPathResolver(
	folderRepo docsRepo.FolderRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) docsSvc.PathResolver {
	return &pathResolverService{
		folderRepo: folderRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// ResolveOrCreatePath ensures a FILE-type folder exists at the exact path,
// creating every missing intermediate FOLDER-type ancestor along the way,
// then links it to the document.
//
// The target path is the idempotency key: if a folder already exists there it
// is reused as-is. Two concurrent calls against overlapping new paths can
// race; the existence check and the create are not one atomic operation, so
// the loser surfaces the store's unique-path conflict as a retryable error.
func (s *pathResolverService) ResolveOrCreatePath(ctx context.Context, path string, documentID int64, documentTitle string) (*models.Folder, error) {
	path = strings.Trim(path, "/")
	if err := ValidatePath(path); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Exact path match wins: reuse the existing node
	existing, err := s.folderRepo.GetByPath(ctx, path)
	if err == nil {
		if err := s.folderRepo.LinkDocument(ctx, existing.ID, documentID, 0); err != nil {
			return nil, err
		}
		s.logger.Debug("reused existing folder for document",
			"folder_id", existing.ID,
			"path", path,
			"document_id", documentID,
		)
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	segments := strings.Split(path, "/")

	var fileFolder *models.Folder
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var parentID *int64

		// Walk ancestor segments left to right, reusing by exact cumulative
		// path and creating what is missing
		for i, segment := range segments[:len(segments)-1] {
			cumulative := strings.Join(segments[:i+1], "/")

			folder, err := s.folderRepo.GetByPath(txCtx, cumulative)
			if err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					return err
				}

				siblingCount, err := s.folderRepo.CountChildren(txCtx, parentID)
				if err != nil {
					return err
				}

				now := time.Now()
				icon := config.DefaultFolderIcon
				folder = &models.Folder{
					ParentID:  parentID,
					Name:      segment,
					Type:      models.FolderTypeFolder,
					Path:      cumulative,
					SortOrder: siblingCount,
					Icon:      &icon,
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := s.folderRepo.Create(txCtx, folder); err != nil {
					return fmt.Errorf("create ancestor folder %q: %w", cumulative, err)
				}

				s.logger.Debug("created ancestor folder",
					"folder_id", folder.ID,
					"path", cumulative,
				)
			}

			parentID = &folder.ID
		}

		// The final segment is the document's own FILE node, named after
		// the document, appended after its siblings
		siblingCount, err := s.folderRepo.CountChildren(txCtx, parentID)
		if err != nil {
			return err
		}

		now := time.Now()
		fileFolder = &models.Folder{
			ParentID:  parentID,
			Name:      documentTitle,
			Type:      models.FolderTypeFile,
			Path:      path,
			SortOrder: siblingCount,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.folderRepo.Create(txCtx, fileFolder); err != nil {
			return fmt.Errorf("create file folder %q: %w", path, err)
		}

		return s.folderRepo.LinkDocument(txCtx, fileFolder.ID, documentID, 0)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document path resolved",
		"path", path,
		"document_id", documentID,
		"folder_id", fileFolder.ID,
	)

	return fileFolder, nil
}

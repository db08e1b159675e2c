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
	"ailurus/internal/domain/repositories"
	docsRepo "ailurus/internal/domain/repositories/docs"
	docsSvc "ailurus/internal/domain/services/docs"
)

type folderService struct {
	folderRepo docsRepo.FolderRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo docsRepo.FolderRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) docsSvc.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

func validateCreateFolder(req *docsSvc.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, config.MaxFolderNameLength),
		),
		validation.Field(&req.Type,
			validation.Required,
			validation.In(models.FolderTypeFolder, models.FolderTypeFile).
				Error("type must be FOLDER or FILE"),
		),
		validation.Field(&req.Path, validation.Required.Error("path is required")),
	)
}

func (s *folderService) CreateFolder(ctx context.Context, req *docsSvc.CreateFolderRequest) (*models.Folder, error) {
	if err := validateCreateFolder(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.ParentID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, &domain.NotFoundError{Message: "parent folder not found"}
			}
			return nil, err
		}
	}

	sortOrder := 0
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	} else {
		count, err := s.folderRepo.CountChildren(ctx, req.ParentID)
		if err != nil {
			return nil, err
		}
		sortOrder = count
	}

	icon := req.Icon
	if icon == nil && req.Type == models.FolderTypeFolder {
		def := config.DefaultFolderIcon
		icon = &def
	}

	now := time.Now()
	folder := &models.Folder{
		ParentID:  req.ParentID,
		Name:      req.Name,
		Type:      req.Type,
		Path:      req.Path,
		SortOrder: sortOrder,
		Icon:      icon,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created", "folder_id", folder.ID, "path", folder.Path, "type", folder.Type)
	return folder, nil
}

func (s *folderService) GetFolder(ctx context.Context, id int64) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Message: "folder not found"}
		}
		return nil, err
	}
	return folder, nil
}

func (s *folderService) UpdateFolder(ctx context.Context, id int64, req *docsSvc.UpdateFolderRequest) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Message: "folder not found"}
		}
		return nil, err
	}

	if req.Name != nil {
		if len(*req.Name) == 0 || len(*req.Name) > config.MaxFolderNameLength {
			return nil, fmt.Errorf("%w: name must be 1-%d characters", domain.ErrValidation, config.MaxFolderNameLength)
		}
		folder.Name = *req.Name
	}
	if req.Icon != nil {
		folder.Icon = req.Icon
	}
	if req.SortOrder != nil {
		folder.SortOrder = *req.SortOrder
	}
	if req.ParentID.Present {
		if req.ParentID.Value != nil {
			parent, err := s.folderRepo.GetByID(ctx, *req.ParentID.Value)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, &domain.NotFoundError{Message: "parent folder not found"}
				}
				return nil, err
			}
			if parent.ID == folder.ID {
				return nil, fmt.Errorf("%w: folder cannot be its own parent", domain.ErrValidation)
			}
			folder.Path = parent.Path + "/" + folder.Name
		} else {
			folder.Path = folder.Name
		}
		folder.ParentID = req.ParentID.Value
	} else if req.Name != nil {
		// Rename keeps the folder in place but its path tail changes
		if parentPath := ParentPath(folder.Path); parentPath != "" {
			folder.Path = parentPath + "/" + folder.Name
		} else {
			folder.Path = folder.Name
		}
	}

	folder.UpdatedAt = time.Now()
	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder updated", "folder_id", folder.ID, "path", folder.Path)
	return folder, nil
}

func (s *folderService) DeleteFolder(ctx context.Context, id int64) error {
	if _, err := s.folderRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.NotFoundError{Message: "folder not found"}
		}
		return err
	}

	count, err := s.folderRepo.CountChildren(ctx, &id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: folder has %d children, use recursive delete", domain.ErrValidation, count)
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		ids := []int64{id}
		if err := s.folderRepo.DeleteDocumentLinksByFolders(txCtx, ids); err != nil {
			return err
		}
		if err := s.folderRepo.DeleteCategoryLinksByFolders(txCtx, ids); err != nil {
			return err
		}
		return s.folderRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted", "folder_id", id)
	return nil
}

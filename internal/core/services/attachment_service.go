package services

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/tradehive/tradehive_backend/internal/apperrors"
	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portsrepo "github.com/tradehive/tradehive_backend/internal/core/ports/repositories"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/middleware"
)

// maxAttachmentBytes caps a single upload at 25 MB.
const maxAttachmentBytes = 25 << 20

type attachmentService struct {
	attachmentRepo portsrepo.AttachmentRepositoryFacade
	store          portssvc.ObjectStore
}

// NewAttachmentService creates a new AttachmentService.
func NewAttachmentService(attachmentRepo portsrepo.AttachmentRepositoryFacade, store portssvc.ObjectStore) portssvc.AttachmentSvc {
	return &attachmentService{attachmentRepo: attachmentRepo, store: store}
}

var _ portssvc.AttachmentSvc = (*attachmentService)(nil)

func (s *attachmentService) UploadAttachment(ctx context.Context, companyID string, upload portssvc.AttachmentUpload, requestingUserID string) (*domain.Attachment, error) {
	if !domain.ValidAttachmentParentType(upload.ParentType) {
		return nil, fmt.Errorf("unknown parent type %q: %w", upload.ParentType, apperrors.ErrValidation)
	}
	if upload.ParentID == "" || upload.FileName == "" {
		return nil, fmt.Errorf("parentID and fileName are required: %w", apperrors.ErrValidation)
	}
	if upload.SizeBytes > maxAttachmentBytes {
		return nil, fmt.Errorf("file exceeds the %d byte limit: %w", int64(maxAttachmentBytes), apperrors.ErrValidation)
	}

	attachmentID := uuid.NewString()
	objectName := path.Join(companyID, string(upload.ParentType), upload.ParentID, attachmentID+"-"+path.Base(upload.FileName))

	url, err := s.store.Upload(ctx, objectName, upload.ContentType, upload.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	now := time.Now().UTC()
	attachment := domain.Attachment{
		AttachmentID: attachmentID,
		CompanyID:    companyID,
		ParentType:   upload.ParentType,
		ParentID:     upload.ParentID,
		FileName:     upload.FileName,
		ContentType:  upload.ContentType,
		SizeBytes:    upload.SizeBytes,
		URL:          url,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	if err := s.attachmentRepo.SaveAttachment(ctx, attachment); err != nil {
		// Best effort cleanup of the orphaned object.
		if cleanupErr := s.store.Delete(ctx, objectName); cleanupErr != nil {
			logger := middleware.GetLoggerFromCtx(ctx)
			logger.Warn("failed to remove orphaned attachment object", "objectName", objectName, "error", cleanupErr)
		}
		return nil, fmt.Errorf("failed to record attachment: %w", err)
	}
	return &attachment, nil
}

func (s *attachmentService) ListAttachments(ctx context.Context, companyID string, parentType domain.AttachmentParentType, parentID string) ([]domain.Attachment, error) {
	if !domain.ValidAttachmentParentType(parentType) {
		return nil, fmt.Errorf("unknown parent type %q: %w", parentType, apperrors.ErrValidation)
	}
	return s.attachmentRepo.ListAttachmentsByParent(ctx, companyID, parentType, parentID)
}

func (s *attachmentService) DeleteAttachment(ctx context.Context, companyID, attachmentID string, requestingUserID string) error {
	attachment, err := s.attachmentRepo.FindAttachmentByID(ctx, companyID, attachmentID)
	if err != nil {
		return err
	}

	objectName := path.Join(companyID, string(attachment.ParentType), attachment.ParentID, attachment.AttachmentID+"-"+path.Base(attachment.FileName))
	if err := s.store.Delete(ctx, objectName); err != nil {
		return fmt.Errorf("failed to delete stored object: %w", err)
	}
	if err := s.attachmentRepo.DeleteAttachment(ctx, companyID, attachmentID); err != nil {
		return fmt.Errorf("failed to delete attachment record: %w", err)
	}
	return nil
}

package repositories

import (
	"context"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
)

// AttachmentReader defines read operations for attachment metadata
type AttachmentReader interface {
	// FindAttachmentByID retrieves a specific attachment within a company.
	FindAttachmentByID(ctx context.Context, companyID, attachmentID string) (*domain.Attachment, error)

	// ListAttachmentsByParent retrieves all attachments on a parent record.
	ListAttachmentsByParent(ctx context.Context, companyID string, parentType domain.AttachmentParentType, parentID string) ([]domain.Attachment, error)
}

// AttachmentWriter defines write operations for attachment metadata
type AttachmentWriter interface {
	// SaveAttachment persists a new attachment record.
	SaveAttachment(ctx context.Context, attachment domain.Attachment) error

	// DeleteAttachment removes an attachment record.
	DeleteAttachment(ctx context.Context, companyID, attachmentID string) error
}

// AttachmentRepositoryFacade combines all attachment-related repository interfaces
type AttachmentRepositoryFacade interface {
	AttachmentReader
	AttachmentWriter
}

package services

import (
	"context"
	"io"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
)

// AttachmentUpload describes an incoming file upload.
type AttachmentUpload struct {
	ParentType  domain.AttachmentParentType
	ParentID    string
	FileName    string
	ContentType string
	SizeBytes   int64
	Body        io.Reader
}

// AttachmentSvc stores uploaded files in object storage and tracks their
// metadata against parent records.
type AttachmentSvc interface {
	// UploadAttachment streams the file to object storage and records it.
	UploadAttachment(ctx context.Context, companyID string, upload AttachmentUpload, requestingUserID string) (*domain.Attachment, error)

	// ListAttachments retrieves the attachments on a parent record.
	ListAttachments(ctx context.Context, companyID string, parentType domain.AttachmentParentType, parentID string) ([]domain.Attachment, error)

	// DeleteAttachment removes the stored object and its record.
	DeleteAttachment(ctx context.Context, companyID, attachmentID string, requestingUserID string) error
}

// ObjectStore abstracts the blob storage backend.
type ObjectStore interface {
	// Upload writes the object and returns its public URL.
	Upload(ctx context.Context, objectName, contentType string, body io.Reader) (string, error)

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, objectName string) error
}

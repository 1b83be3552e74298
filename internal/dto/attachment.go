package dto

import (
	"time"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
)

// AttachmentResponse defines the data returned for an uploaded file.
type AttachmentResponse struct {
	AttachmentID string                      `json:"attachmentID"`
	ParentType   domain.AttachmentParentType `json:"parentType"`
	ParentID     string                      `json:"parentID"`
	FileName     string                      `json:"fileName"`
	ContentType  string                      `json:"contentType"`
	SizeBytes    int64                       `json:"sizeBytes"`
	URL          string                      `json:"url"`
	CreatedAt    time.Time                   `json:"createdAt"`
}

// ToAttachmentResponse converts a domain.Attachment to AttachmentResponse DTO
func ToAttachmentResponse(a *domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		AttachmentID: a.AttachmentID,
		ParentType:   a.ParentType,
		ParentID:     a.ParentID,
		FileName:     a.FileName,
		ContentType:  a.ContentType,
		SizeBytes:    a.SizeBytes,
		URL:          a.URL,
		CreatedAt:    a.CreatedAt,
	}
}

// ToListAttachmentsResponse converts a slice of domain.Attachment.
func ToListAttachmentsResponse(attachments []domain.Attachment) []AttachmentResponse {
	res := make([]AttachmentResponse, len(attachments))
	for i, a := range attachments {
		res[i] = ToAttachmentResponse(&a)
	}
	return res
}

package domain

// AttachmentParentType identifies what record an attachment belongs to.
type AttachmentParentType string

const (
	AttachmentParentCustomer AttachmentParentType = "customer"
	AttachmentParentJob      AttachmentParentType = "job"
	AttachmentParentEstimate AttachmentParentType = "estimate"
	AttachmentParentInvoice  AttachmentParentType = "invoice"
)

// ValidAttachmentParentType reports whether t is a known parent type.
func ValidAttachmentParentType(t AttachmentParentType) bool {
	switch t {
	case AttachmentParentCustomer, AttachmentParentJob, AttachmentParentEstimate, AttachmentParentInvoice:
		return true
	}
	return false
}

// Attachment is a file uploaded against a parent record and stored in
// object storage. URL is the public or signed location of the object.
type Attachment struct {
	AttachmentID string               `json:"attachmentID"` // Primary Key (UUID)
	CompanyID    string               `json:"companyID"`
	ParentType   AttachmentParentType `json:"parentType"`
	ParentID     string               `json:"parentID"`
	FileName     string               `json:"fileName"`
	ContentType  string               `json:"contentType"`
	SizeBytes    int64                `json:"sizeBytes"`
	URL          string               `json:"url"`
	AuditFields
}

package dto

// SendDocumentRequest optionally customizes the email that delivers an
// estimate or invoice to the customer.
type SendDocumentRequest struct {
	Message string `json:"message"`
}

// SendDocumentResponse acknowledges delivery and reports the document's
// resulting status.
type SendDocumentResponse struct {
	Sent   bool   `json:"sent"`
	Status string `json:"status"`
}

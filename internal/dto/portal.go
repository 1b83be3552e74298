package dto

// PortalLoginRequest asks for a magic login link to be emailed to a
// customer. The response is identical whether or not the email matches a
// customer, so the endpoint cannot be used to enumerate addresses.
type PortalLoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PortalLoginResponse is the uniform acknowledgement for a login request.
type PortalLoginResponse struct {
	Message string `json:"message"`
}

// PortalVerifyRequest exchanges a magic-link token for a portal session.
type PortalVerifyRequest struct {
	Token string `json:"token" binding:"required"`
}

// PortalSessionResponse carries the portal session token and the customer
// it belongs to.
type PortalSessionResponse struct {
	Token    string           `json:"token"`
	Customer CustomerResponse `json:"customer"`
}

// PortalDocumentsResponse is the portal customer's view of their own
// estimates and invoices.
type PortalDocumentsResponse struct {
	Estimates []EstimateResponse `json:"estimates"`
	Invoices  []InvoiceResponse  `json:"invoices"`
}

package middleware

import "github.com/gin-gonic/gin"

const (
	userIDKey    = contextKey("userID")
	companyIDKey = contextKey("companyID")
	// customerIDKey identifies the end customer behind a portal session.
	customerIDKey = contextKey("portalCustomerID")
)

// GetUserIDFromContext retrieves the authenticated staff user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	v := c.Request.Context().Value(userIDKey)
	if v == nil {
		return "", false
	}
	userID, ok := v.(string)
	return userID, ok
}

// GetCompanyIDFromContext retrieves the tenant (company) ID resolved for the
// authenticated caller. Every tenant-scoped handler must thread this value
// into its service calls.
func GetCompanyIDFromContext(c *gin.Context) (string, bool) {
	v := c.Request.Context().Value(companyIDKey)
	if v == nil {
		return "", false
	}
	companyID, ok := v.(string)
	return companyID, ok
}

// GetPortalCustomerFromContext retrieves the customer and company IDs behind a
// verified portal session.
func GetPortalCustomerFromContext(c *gin.Context) (customerID string, companyID string, ok bool) {
	v := c.Request.Context().Value(customerIDKey)
	if v == nil {
		return "", "", false
	}
	customerID, ok = v.(string)
	if !ok {
		return "", "", false
	}
	companyID, ok = GetCompanyIDFromContext(c)
	return customerID, companyID, ok
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

// companyHandler handles company settings and the Google account link.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

func newCompanyHandler(cs portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{companyService: cs}
}

// registerCompanyRoutes registers the company settings routes.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade) {
	h := newCompanyHandler(companyService)

	company := rg.Group("/company")
	{
		company.GET("", h.getCompany)
		company.PUT("", h.updateCompany)

		google := company.Group("/google")
		{
			google.GET("/url", h.googleAuthURL)
			google.POST("/callback", h.googleCallback)
			google.DELETE("", h.disconnectGoogle)
		}
	}
}

// getCompany godoc
// @Summary Get company settings
// @Tags company
// @Produce json
// @Success 200 {object} dto.CompanyResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /company [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetCompany(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "get company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// updateCompany godoc
// @Summary Update company settings
// @Description Updates company settings. Admin only.
// @Tags company
// @Accept json
// @Produce json
// @Param company body dto.UpdateCompanyRequest true "Fields to update"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /company [put]
func (h *companyHandler) updateCompany(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "update company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// googleAuthURL godoc
// @Summary Get Google OAuth consent URL
// @Description Builds the consent URL used to link a Google account for sending email.
// @Tags company
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /company/google/url [get]
func (h *companyHandler) googleAuthURL(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	url, err := h.companyService.GoogleAuthURL(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "build Google consent URL")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

type googleCallbackRequest struct {
	Code string `json:"code" binding:"required"`
}

// googleCallback godoc
// @Summary Complete the Google account link
// @Description Exchanges the OAuth code and stores the refresh token on the company.
// @Tags company
// @Accept json
// @Produce json
// @Param callback body googleCallbackRequest true "OAuth authorization code"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /company/google/callback [post]
func (h *companyHandler) googleCallback(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	var req googleCallbackRequest
	if !bindJSON(c, &req) {
		return
	}

	company, err := h.companyService.CompleteGoogleAuth(c.Request.Context(), companyID, req.Code, userID)
	if err != nil {
		respondError(c, err, "complete Google link")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// disconnectGoogle godoc
// @Summary Disconnect the linked Google account
// @Tags company
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /company/google [delete]
func (h *companyHandler) disconnectGoogle(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	if err := h.companyService.DisconnectGoogle(c.Request.Context(), companyID, userID); err != nil {
		respondError(c, err, "disconnect Google")
		return
	}
	c.Status(http.StatusNoContent)
}

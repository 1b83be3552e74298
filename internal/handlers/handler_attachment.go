package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
	"github.com/tradehive/tradehive_backend/internal/middleware"
)

// attachmentHandler handles file uploads against parent records.
type attachmentHandler struct {
	attachmentService portssvc.AttachmentSvc
}

func newAttachmentHandler(as portssvc.AttachmentSvc) *attachmentHandler {
	return &attachmentHandler{attachmentService: as}
}

// registerAttachmentRoutes registers the attachment routes.
func registerAttachmentRoutes(rg *gin.RouterGroup, attachmentService portssvc.AttachmentSvc) {
	h := newAttachmentHandler(attachmentService)

	attachments := rg.Group("/attachments")
	{
		attachments.POST("", h.uploadAttachment)
		attachments.GET("", h.listAttachments)
		attachments.DELETE("/:attachment_id", h.deleteAttachment)
	}
}

// uploadAttachment godoc
// @Summary Upload an attachment
// @Description Uploads a file against a customer, job, estimate or invoice.
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Param parentType formData string true "Parent record type (customer, job, estimate, invoice)"
// @Param parentID formData string true "Parent record ID"
// @Param file formData file true "File to upload"
// @Success 201 {object} dto.AttachmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /attachments [post]
func (h *attachmentHandler) uploadAttachment(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Attachment upload missing file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A file form field is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	upload := portssvc.AttachmentUpload{
		ParentType:  domain.AttachmentParentType(c.PostForm("parentType")),
		ParentID:    c.PostForm("parentID"),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		SizeBytes:   fileHeader.Size,
		Body:        file,
	}

	attachment, err := h.attachmentService.UploadAttachment(c.Request.Context(), companyID, upload, userID)
	if err != nil {
		respondError(c, err, "upload attachment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAttachmentResponse(attachment))
}

// listAttachments godoc
// @Summary List attachments on a record
// @Tags attachments
// @Produce json
// @Param parentType query string true "Parent record type"
// @Param parentID query string true "Parent record ID"
// @Success 200 {array} dto.AttachmentResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /attachments [get]
func (h *attachmentHandler) listAttachments(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	parentType := domain.AttachmentParentType(c.Query("parentType"))
	parentID := c.Query("parentID")
	if !domain.ValidAttachmentParentType(parentType) || parentID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "parentType and parentID query parameters are required"})
		return
	}

	attachments, err := h.attachmentService.ListAttachments(c.Request.Context(), companyID, parentType, parentID)
	if err != nil {
		respondError(c, err, "list attachments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAttachmentsResponse(attachments))
}

// deleteAttachment godoc
// @Summary Delete an attachment
// @Tags attachments
// @Param attachment_id path string true "Attachment ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /attachments/{attachment_id} [delete]
func (h *attachmentHandler) deleteAttachment(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	if err := h.attachmentService.DeleteAttachment(c.Request.Context(), companyID, c.Param("attachment_id"), userID); err != nil {
		respondError(c, err, "delete attachment")
		return
	}
	c.Status(http.StatusNoContent)
}

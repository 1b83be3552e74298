package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tradehive/tradehive_backend/cmd/docs"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/middleware"
	"github.com/tradehive/tradehive_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	pdfRenderer portssvc.PDFRenderer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public routes: auth, customer portal and the processor webhook
	registerAuthRoutes(r, services.Auth)
	registerPortalRoutes(r, cfg, services.Portal, services.Payment)
	registerWebhookRoutes(r, services.Payment)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, pdfRenderer)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	pdfRenderer portssvc.PDFRenderer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Delegate route registration to specific handlers, passing required services
	registerCompanyRoutes(v1, services.Company)
	registerUserRoutes(v1, services.User)
	registerCustomerRoutes(v1, services.Customer)
	registerLeadRoutes(v1, services.Lead)
	registerJobRoutes(v1, services.Job)
	registerEstimateRoutes(v1, services.Estimate, services.Company, services.Customer, pdfRenderer)
	registerInvoiceRoutes(v1, services.Invoice, services.Company, services.Customer, pdfRenderer)
	registerPaymentRoutes(v1, services.Payment)
	registerTransactionRoutes(v1, services.Transaction)
	registerReportingRoutes(v1, services.Reporting)
	registerRecurringInvoiceRoutes(v1, services.RecurringInvoice)
	registerAttachmentRoutes(v1, services.Attachment)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

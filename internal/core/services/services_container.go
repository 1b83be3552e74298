package services

import (
	portsrepo "github.com/tradehive/tradehive_backend/internal/core/ports/repositories"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/platform/config"
)

// Integrations holds the external adapters the services depend on: the
// payment processor, object storage, email delivery and PDF rendering.
type Integrations struct {
	CheckoutProvider portssvc.CheckoutProvider
	ConnectProvider  portssvc.ConnectProvider
	PassThroughFee   portssvc.PassThroughFee
	ObjectStore      portssvc.ObjectStore
	EmailSender      portssvc.EmailSender
	PDFRenderer      portssvc.PDFRenderer
}

// NewServiceContainer wires every service with its repositories and
// integrations.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, integrations Integrations) *portssvc.ServiceContainer {
	notifier := NewNotificationService(cfg, repos.CompanyRepo, repos.CustomerRepo, integrations.EmailSender, integrations.PDFRenderer)

	return &portssvc.ServiceContainer{
		Auth:     NewAuthService(repos.CompanyRepo, repos.UserRepo, cfg),
		Company:  NewCompanyService(cfg, repos.CompanyRepo, repos.UserRepo),
		User:     NewUserService(repos.UserRepo),
		Customer: NewCustomerService(repos.CustomerRepo),
		Lead:     NewLeadService(repos.LeadRepo),
		Job:      NewJobService(repos.JobRepo, repos.CustomerRepo),
		Estimate: NewEstimateService(repos.EstimateRepo, repos.InvoiceRepo, repos.CustomerRepo, repos.CompanyRepo, notifier),
		Invoice:  NewInvoiceService(repos.InvoiceRepo, repos.CustomerRepo, repos.CompanyRepo, notifier),
		Payment: NewPaymentService(cfg, repos.InvoiceRepo, repos.CompanyRepo, repos.CustomerRepo,
			integrations.CheckoutProvider, integrations.ConnectProvider, integrations.PassThroughFee, notifier),
		Transaction:      NewTransactionService(repos.TransactionRepo),
		Reporting:        NewReportingService(repos.TransactionRepo, repos.InvoiceRepo, repos.EstimateRepo, repos.JobRepo),
		RecurringInvoice: NewRecurringInvoiceService(repos.RecurringInvoiceRepo, repos.InvoiceRepo, repos.CustomerRepo, repos.CompanyRepo),
		Portal:           NewPortalService(cfg, repos.CustomerRepo, repos.CompanyRepo, repos.EstimateRepo, repos.InvoiceRepo, notifier),
		Attachment:       NewAttachmentService(repos.AttachmentRepo, integrations.ObjectStore),
		Notification:     notifier,
	}
}

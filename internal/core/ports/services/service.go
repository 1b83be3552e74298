package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Auth             AuthSvc
	Company          CompanySvcFacade
	User             UserSvcFacade
	Customer         CustomerSvcFacade
	Lead             LeadSvcFacade
	Job              JobSvcFacade
	Estimate         EstimateSvcFacade
	Invoice          InvoiceSvcFacade
	Payment          PaymentSvcFacade
	Transaction      TransactionSvcFacade
	Reporting        ReportingSvc
	RecurringInvoice RecurringInvoiceSvcFacade
	Portal           PortalSvc
	Attachment       AttachmentSvc
	Notification     NotificationSvc
}

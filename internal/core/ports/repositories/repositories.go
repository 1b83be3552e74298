package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	CompanyRepo          CompanyRepositoryFacade
	UserRepo             UserRepositoryFacade
	CustomerRepo         CustomerRepositoryFacade
	LeadRepo             LeadRepositoryFacade
	JobRepo              JobRepositoryFacade
	EstimateRepo         EstimateRepositoryFacade
	InvoiceRepo          InvoiceRepositoryFacade
	TransactionRepo      TransactionRepositoryFacade
	RecurringInvoiceRepo RecurringInvoiceRepositoryFacade
	AttachmentRepo       AttachmentRepositoryFacade
}

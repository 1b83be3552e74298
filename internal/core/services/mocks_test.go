package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
)

// --- Mock CompanyRepository ---

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	var company *domain.Company
	if args.Get(0) != nil {
		company = args.Get(0).(*domain.Company)
	}
	return company, args.Error(1)
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) NextEstimateNumber(ctx context.Context, companyID string) (string, error) {
	args := m.Called(ctx, companyID)
	return args.String(0), args.Error(1)
}

func (m *MockCompanyRepository) NextInvoiceNumber(ctx context.Context, companyID string) (string, error) {
	args := m.Called(ctx, companyID)
	return args.String(0), args.Error(1)
}

// --- Mock CustomerRepository ---

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, companyID, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, companyID, customerID)
	var customer *domain.Customer
	if args.Get(0) != nil {
		customer = args.Get(0).(*domain.Customer)
	}
	return customer, args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	var customer *domain.Customer
	if args.Get(0) != nil {
		customer = args.Get(0).(*domain.Customer)
	}
	return customer, args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerByPortalToken(ctx context.Context, token string, now time.Time) (*domain.Customer, error) {
	args := m.Called(ctx, token, now)
	var customer *domain.Customer
	if args.Get(0) != nil {
		customer = args.Get(0).(*domain.Customer)
	}
	return customer, args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, companyID string, limit int, nextToken *string, search, tag string) ([]domain.Customer, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken, search, tag)
	var customers []domain.Customer
	if args.Get(0) != nil {
		customers = args.Get(0).([]domain.Customer)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return customers, token, args.Error(2)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteCustomer(ctx context.Context, companyID, customerID string) error {
	args := m.Called(ctx, companyID, customerID)
	return args.Error(0)
}

func (m *MockCustomerRepository) SetPortalToken(ctx context.Context, companyID, customerID, token string, expiresAt time.Time) error {
	args := m.Called(ctx, companyID, customerID, token, expiresAt)
	return args.Error(0)
}

func (m *MockCustomerRepository) ClearPortalToken(ctx context.Context, companyID, customerID string) error {
	args := m.Called(ctx, companyID, customerID)
	return args.Error(0)
}

// --- Mock EstimateRepository ---

type MockEstimateRepository struct {
	mock.Mock
}

func (m *MockEstimateRepository) FindEstimateByID(ctx context.Context, companyID, estimateID string) (*domain.Estimate, error) {
	args := m.Called(ctx, companyID, estimateID)
	var estimate *domain.Estimate
	if args.Get(0) != nil {
		estimate = args.Get(0).(*domain.Estimate)
	}
	return estimate, args.Error(1)
}

func (m *MockEstimateRepository) ListEstimates(ctx context.Context, companyID string, limit int, nextToken *string, status domain.EstimateStatus, customerID string) ([]domain.Estimate, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken, status, customerID)
	var estimates []domain.Estimate
	if args.Get(0) != nil {
		estimates = args.Get(0).([]domain.Estimate)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return estimates, token, args.Error(2)
}

func (m *MockEstimateRepository) ListEstimatesByCustomer(ctx context.Context, companyID, customerID string) ([]domain.Estimate, error) {
	args := m.Called(ctx, companyID, customerID)
	var estimates []domain.Estimate
	if args.Get(0) != nil {
		estimates = args.Get(0).([]domain.Estimate)
	}
	return estimates, args.Error(1)
}

func (m *MockEstimateRepository) SaveEstimate(ctx context.Context, estimate domain.Estimate) error {
	args := m.Called(ctx, estimate)
	return args.Error(0)
}

func (m *MockEstimateRepository) UpdateEstimate(ctx context.Context, estimate domain.Estimate) error {
	args := m.Called(ctx, estimate)
	return args.Error(0)
}

func (m *MockEstimateRepository) UpdateEstimateStatus(ctx context.Context, companyID, estimateID string, status domain.EstimateStatus, approvedAt, rejectedAt *time.Time, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, companyID, estimateID, status, approvedAt, rejectedAt, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockEstimateRepository) DeleteEstimate(ctx context.Context, companyID, estimateID string) error {
	args := m.Called(ctx, companyID, estimateID)
	return args.Error(0)
}

func (m *MockEstimateRepository) MarkExpiredEstimates(ctx context.Context, companyID string, now time.Time) (int64, error) {
	args := m.Called(ctx, companyID, now)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock InvoiceRepository ---

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, companyID, invoiceID)
	var invoice *domain.Invoice
	if args.Get(0) != nil {
		invoice = args.Get(0).(*domain.Invoice)
	}
	return invoice, args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, companyID string, limit int, nextToken *string, status domain.InvoiceStatus, customerID string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken, status, customerID)
	var invoices []domain.Invoice
	if args.Get(0) != nil {
		invoices = args.Get(0).([]domain.Invoice)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return invoices, token, args.Error(2)
}

func (m *MockInvoiceRepository) ListInvoicesByCustomer(ctx context.Context, companyID, customerID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, companyID, customerID)
	var invoices []domain.Invoice
	if args.Get(0) != nil {
		invoices = args.Get(0).([]domain.Invoice)
	}
	return invoices, args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, companyID, invoiceID string, status domain.InvoiceStatus, paidDate *time.Time, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, companyID, invoiceID, status, paidDate, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, companyID, invoiceID string) error {
	args := m.Called(ctx, companyID, invoiceID)
	return args.Error(0)
}

func (m *MockInvoiceRepository) MarkOverdueInvoices(ctx context.Context, companyID string, now time.Time) (int64, error) {
	args := m.Called(ctx, companyID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) ConvertEstimate(ctx context.Context, invoice domain.Invoice, markApproved bool, approvedAt time.Time) error {
	args := m.Called(ctx, invoice, markApproved, approvedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ApplyPayment(ctx context.Context, payment domain.Payment, incomeTxn *domain.Transaction) (*domain.Invoice, error) {
	args := m.Called(ctx, payment, incomeTxn)
	var invoice *domain.Invoice
	if args.Get(0) != nil {
		invoice = args.Get(0).(*domain.Invoice)
	}
	return invoice, args.Error(1)
}

func (m *MockInvoiceRepository) ListPaymentsByInvoice(ctx context.Context, companyID, invoiceID string) ([]domain.Payment, error) {
	args := m.Called(ctx, companyID, invoiceID)
	var payments []domain.Payment
	if args.Get(0) != nil {
		payments = args.Get(0).([]domain.Payment)
	}
	return payments, args.Error(1)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, companyID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, companyID, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, companyID string, limit int, nextToken *string, txnType domain.TransactionType, category string, from, to *time.Time) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken, txnType, category, from, to)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, companyID, transactionID string) error {
	args := m.Called(ctx, companyID, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) SumByTypeAndCategory(ctx context.Context, companyID string, from, to time.Time) (map[domain.TransactionType]map[string]decimal.Decimal, error) {
	args := m.Called(ctx, companyID, from, to)
	var sums map[domain.TransactionType]map[string]decimal.Decimal
	if args.Get(0) != nil {
		sums = args.Get(0).(map[domain.TransactionType]map[string]decimal.Decimal)
	}
	return sums, args.Error(1)
}

// --- Mock JobRepository ---

type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) FindJobByID(ctx context.Context, companyID, jobID string) (*domain.Job, error) {
	args := m.Called(ctx, companyID, jobID)
	var job *domain.Job
	if args.Get(0) != nil {
		job = args.Get(0).(*domain.Job)
	}
	return job, args.Error(1)
}

func (m *MockJobRepository) ListJobs(ctx context.Context, companyID string, limit int, nextToken *string, status domain.JobStatus, customerID, assignedTo string) ([]domain.Job, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken, status, customerID, assignedTo)
	var jobs []domain.Job
	if args.Get(0) != nil {
		jobs = args.Get(0).([]domain.Job)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return jobs, token, args.Error(2)
}

func (m *MockJobRepository) SaveJob(ctx context.Context, job domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) UpdateJob(ctx context.Context, job domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) DeleteJob(ctx context.Context, companyID, jobID string) error {
	args := m.Called(ctx, companyID, jobID)
	return args.Error(0)
}

// --- Mock NotificationSvc ---

type MockNotificationSvc struct {
	mock.Mock
}

func (m *MockNotificationSvc) SendEstimateEmail(ctx context.Context, companyID string, estimate *domain.Estimate, personalMessage string) error {
	args := m.Called(ctx, companyID, estimate, personalMessage)
	return args.Error(0)
}

func (m *MockNotificationSvc) SendInvoiceEmail(ctx context.Context, companyID string, invoice *domain.Invoice, personalMessage string) error {
	args := m.Called(ctx, companyID, invoice, personalMessage)
	return args.Error(0)
}

func (m *MockNotificationSvc) SendPortalLoginEmail(ctx context.Context, company *domain.Company, customer *domain.Customer, loginURL string) error {
	args := m.Called(ctx, company, customer, loginURL)
	return args.Error(0)
}

func (m *MockNotificationSvc) SendPaymentReceiptEmail(ctx context.Context, companyID string, invoice *domain.Invoice, payment *domain.Payment) error {
	args := m.Called(ctx, companyID, invoice, payment)
	return args.Error(0)
}

// --- Mock CheckoutProvider ---

type MockCheckoutProvider struct {
	mock.Mock
}

func (m *MockCheckoutProvider) CreateSession(ctx context.Context, params portssvc.CheckoutParams) (*portssvc.CheckoutSession, error) {
	args := m.Called(ctx, params)
	var sess *portssvc.CheckoutSession
	if args.Get(0) != nil {
		sess = args.Get(0).(*portssvc.CheckoutSession)
	}
	return sess, args.Error(1)
}

func (m *MockCheckoutProvider) VerifyEvent(payload []byte, signature string) (*portssvc.CompletedCheckout, error) {
	args := m.Called(payload, signature)
	var completed *portssvc.CompletedCheckout
	if args.Get(0) != nil {
		completed = args.Get(0).(*portssvc.CompletedCheckout)
	}
	return completed, args.Error(1)
}

type MockConnectProvider struct {
	mock.Mock
}

func (m *MockConnectProvider) CreateConnectAccount(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockConnectProvider) CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error) {
	args := m.Called(ctx, accountID, refreshURL, returnURL)
	return args.String(0), args.Error(1)
}

func (m *MockConnectProvider) CreateLoginLink(ctx context.Context, accountID string) (string, error) {
	args := m.Called(ctx, accountID)
	return args.String(0), args.Error(1)
}

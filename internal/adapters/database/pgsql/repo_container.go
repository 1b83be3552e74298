package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/tradehive/tradehive_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CompanyRepo:          newPgxCompanyRepository(dbPool),
		UserRepo:             newPgxUserRepository(dbPool),
		CustomerRepo:         newPgxCustomerRepository(dbPool),
		LeadRepo:             newPgxLeadRepository(dbPool),
		JobRepo:              newPgxJobRepository(dbPool),
		EstimateRepo:         newPgxEstimateRepository(dbPool),
		InvoiceRepo:          newPgxInvoiceRepository(dbPool),
		TransactionRepo:      newPgxTransactionRepository(dbPool),
		RecurringInvoiceRepo: newPgxRecurringInvoiceRepository(dbPool),
		AttachmentRepo:       newPgxAttachmentRepository(dbPool),
	}
}

package repositories

import (
	"context"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
)

// JobReader defines read operations for job data
type JobReader interface {
	// FindJobByID retrieves a specific job within a company.
	FindJobByID(ctx context.Context, companyID, jobID string) (*domain.Job, error)

	// ListJobs retrieves a paginated list of jobs for a company, optionally
	// filtered by status, customer or assigned user.
	ListJobs(ctx context.Context, companyID string, limit int, nextToken *string, status domain.JobStatus, customerID, assignedTo string) ([]domain.Job, *string, error)
}

// JobWriter defines write operations for job data
type JobWriter interface {
	// SaveJob persists a new job.
	SaveJob(ctx context.Context, job domain.Job) error

	// UpdateJob updates an existing job's details.
	UpdateJob(ctx context.Context, job domain.Job) error

	// DeleteJob removes a job from a company.
	DeleteJob(ctx context.Context, companyID, jobID string) error
}

// JobRepositoryFacade combines all job-related repository interfaces
type JobRepositoryFacade interface {
	JobReader
	JobWriter
}

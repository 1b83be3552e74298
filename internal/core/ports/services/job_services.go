package services

import (
	"context"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

// JobReaderSvc defines read operations for job data
type JobReaderSvc interface {
	// GetJobByID retrieves a specific job.
	GetJobByID(ctx context.Context, companyID, jobID string) (*domain.Job, error)

	// ListJobs retrieves a paginated list of jobs.
	ListJobs(ctx context.Context, companyID string, params dto.ListJobsParams) (*dto.ListJobsResponse, error)
}

// JobWriterSvc defines write operations for job data
type JobWriterSvc interface {
	// CreateJob schedules a new job for a customer.
	CreateJob(ctx context.Context, companyID string, req dto.CreateJobRequest, creatorUserID string) (*domain.Job, error)

	// UpdateJob updates a job's details. Moving to completed stamps
	// completedAt.
	UpdateJob(ctx context.Context, companyID, jobID string, req dto.UpdateJobRequest, requestingUserID string) (*domain.Job, error)

	// DeleteJob removes a job.
	DeleteJob(ctx context.Context, companyID, jobID string, requestingUserID string) error
}

// JobSvcFacade combines all job-related service interfaces
type JobSvcFacade interface {
	JobReaderSvc
	JobWriterSvc
}

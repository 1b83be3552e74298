package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
	portsrepo "github.com/tradehive/tradehive_backend/internal/core/ports/repositories"
	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

type jobService struct {
	jobRepo      portsrepo.JobRepositoryFacade
	customerRepo portsrepo.CustomerReader
}

// NewJobService creates a new JobService.
func NewJobService(jobRepo portsrepo.JobRepositoryFacade, customerRepo portsrepo.CustomerReader) portssvc.JobSvcFacade {
	return &jobService{jobRepo: jobRepo, customerRepo: customerRepo}
}

var _ portssvc.JobSvcFacade = (*jobService)(nil)

func (s *jobService) GetJobByID(ctx context.Context, companyID, jobID string) (*domain.Job, error) {
	return s.jobRepo.FindJobByID(ctx, companyID, jobID)
}

func (s *jobService) ListJobs(ctx context.Context, companyID string, params dto.ListJobsParams) (*dto.ListJobsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	jobs, nextToken, err := s.jobRepo.ListJobs(ctx, companyID, limit, params.NextToken, domain.JobStatus(params.Status), params.CustomerID, params.AssignedTo)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	res := dto.ToListJobsResponse(jobs, nextToken)
	return &res, nil
}

func (s *jobService) CreateJob(ctx context.Context, companyID string, req dto.CreateJobRequest, creatorUserID string) (*domain.Job, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, companyID, req.CustomerID)
	if err != nil {
		return nil, err
	}

	address, city, state, zip := req.Address, req.City, req.State, req.Zip
	if address == "" {
		// Default the job site to the customer's address.
		address, city, state, zip = customer.Address, customer.City, customer.State, customer.Zip
	}

	now := time.Now().UTC()
	job := domain.Job{
		JobID:            uuid.NewString(),
		CompanyID:        companyID,
		CustomerID:       req.CustomerID,
		Title:            req.Title,
		Description:      req.Description,
		Status:           domain.JobScheduled,
		ScheduledAt:      req.ScheduledAt,
		Address:          address,
		City:             city,
		State:            state,
		Zip:              zip,
		Notes:            req.Notes,
		AssignedToUserID: req.AssignedToUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.jobRepo.SaveJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}
	return &job, nil
}

func (s *jobService) UpdateJob(ctx context.Context, companyID, jobID string, req dto.UpdateJobRequest, requestingUserID string) (*domain.Job, error) {
	job, err := s.jobRepo.FindJobByID(ctx, companyID, jobID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.ScheduledAt != nil {
		job.ScheduledAt = req.ScheduledAt
	}
	if req.Address != nil {
		job.Address = *req.Address
	}
	if req.City != nil {
		job.City = *req.City
	}
	if req.State != nil {
		job.State = *req.State
	}
	if req.Zip != nil {
		job.Zip = *req.Zip
	}
	if req.Notes != nil {
		job.Notes = *req.Notes
	}
	if req.AssignedToUserID != nil {
		job.AssignedToUserID = *req.AssignedToUserID
	}

	now := time.Now().UTC()
	if req.Status != nil {
		status := domain.JobStatus(*req.Status)
		if status == domain.JobCompleted && job.Status != domain.JobCompleted {
			completedAt := now
			job.CompletedAt = &completedAt
		}
		job.Status = status
	}
	job.LastUpdatedAt = now
	job.LastUpdatedBy = requestingUserID

	if err := s.jobRepo.UpdateJob(ctx, *job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return job, nil
}

func (s *jobService) DeleteJob(ctx context.Context, companyID, jobID string, requestingUserID string) error {
	if err := s.jobRepo.DeleteJob(ctx, companyID, jobID); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

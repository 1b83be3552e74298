package dto

import (
	"time"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
)

// CreateJobRequest defines the data needed to schedule a job.
type CreateJobRequest struct {
	CustomerID       string     `json:"customerID" binding:"required"`
	Title            string     `json:"title" binding:"required"`
	Description      string     `json:"description"`
	ScheduledAt      *time.Time `json:"scheduledAt"`
	Address          string     `json:"address"`
	City             string     `json:"city"`
	State            string     `json:"state"`
	Zip              string     `json:"zip"`
	Notes            string     `json:"notes"`
	AssignedToUserID string     `json:"assignedToUserID"`
}

// UpdateJobRequest defines the data allowed for updating a job.
type UpdateJobRequest struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	Status           *string    `json:"status" binding:"omitempty,oneof=scheduled in_progress completed cancelled"`
	ScheduledAt      *time.Time `json:"scheduledAt"`
	Address          *string    `json:"address"`
	City             *string    `json:"city"`
	State            *string    `json:"state"`
	Zip              *string    `json:"zip"`
	Notes            *string    `json:"notes"`
	AssignedToUserID *string    `json:"assignedToUserID"`
}

// JobResponse defines the data returned for a job.
type JobResponse struct {
	JobID            string           `json:"jobID"`
	CustomerID       string           `json:"customerID"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Status           domain.JobStatus `json:"status"`
	ScheduledAt      *time.Time       `json:"scheduledAt"`
	CompletedAt      *time.Time       `json:"completedAt"`
	Address          string           `json:"address"`
	City             string           `json:"city"`
	State            string           `json:"state"`
	Zip              string           `json:"zip"`
	Notes            string           `json:"notes"`
	AssignedToUserID string           `json:"assignedToUserID"`
	CreatedAt        time.Time        `json:"createdAt"`
	LastUpdatedAt    time.Time        `json:"lastUpdatedAt"`
}

// ToJobResponse converts a domain.Job to JobResponse DTO
func ToJobResponse(j *domain.Job) JobResponse {
	return JobResponse{
		JobID:            j.JobID,
		CustomerID:       j.CustomerID,
		Title:            j.Title,
		Description:      j.Description,
		Status:           j.Status,
		ScheduledAt:      j.ScheduledAt,
		CompletedAt:      j.CompletedAt,
		Address:          j.Address,
		City:             j.City,
		State:            j.State,
		Zip:              j.Zip,
		Notes:            j.Notes,
		AssignedToUserID: j.AssignedToUserID,
		CreatedAt:        j.CreatedAt,
		LastUpdatedAt:    j.LastUpdatedAt,
	}
}

// ListJobsParams defines query parameters for listing jobs.
type ListJobsParams struct {
	Limit      int     `form:"limit,default=20"`
	NextToken  *string `form:"nextToken"`
	Status     string  `form:"status" binding:"omitempty,oneof=scheduled in_progress completed cancelled"`
	CustomerID string  `form:"customerID"`
	AssignedTo string  `form:"assignedTo"`
}

// ListJobsResponse wraps a page of jobs.
type ListJobsResponse struct {
	Jobs      []JobResponse `json:"jobs"`
	NextToken *string       `json:"nextToken,omitempty"`
}

// ToListJobsResponse converts a page of domain.Job to the list DTO
func ToListJobsResponse(jobs []domain.Job, nextToken *string) ListJobsResponse {
	res := make([]JobResponse, len(jobs))
	for i, j := range jobs {
		res[i] = ToJobResponse(&j)
	}
	return ListJobsResponse{Jobs: res, NextToken: nextToken}
}

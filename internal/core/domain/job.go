package domain

import "time"

// JobStatus tracks a scheduled piece of field work.
type JobStatus string

const (
	JobScheduled  JobStatus = "scheduled"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

// ValidJobStatus reports whether s is one of the known job states.
func ValidJobStatus(s JobStatus) bool {
	switch s {
	case JobScheduled, JobInProgress, JobCompleted, JobCancelled:
		return true
	}
	return false
}

// Job is a scheduled unit of work for a customer, optionally assigned to a
// worker user.
type Job struct {
	JobID            string     `json:"jobID"` // Primary Key (UUID)
	CompanyID        string     `json:"companyID"`
	CustomerID       string     `json:"customerID"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Status           JobStatus  `json:"status"`
	ScheduledAt      *time.Time `json:"scheduledAt"`
	CompletedAt      *time.Time `json:"completedAt"`
	Address          string     `json:"address"`
	City             string     `json:"city"`
	State            string     `json:"state"`
	Zip              string     `json:"zip"`
	Notes            string     `json:"notes"`
	AssignedToUserID string     `json:"assignedToUserID"`
	AuditFields
}

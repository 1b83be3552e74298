package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tradehive/tradehive_backend/internal/core/ports/services"
	"github.com/tradehive/tradehive_backend/internal/dto"
)

// jobHandler handles HTTP requests related to jobs.
type jobHandler struct {
	jobService portssvc.JobSvcFacade
}

func newJobHandler(js portssvc.JobSvcFacade) *jobHandler {
	return &jobHandler{jobService: js}
}

// registerJobRoutes registers the job CRUD routes.
func registerJobRoutes(rg *gin.RouterGroup, jobService portssvc.JobSvcFacade) {
	h := newJobHandler(jobService)

	jobs := rg.Group("/jobs")
	{
		jobs.POST("", h.createJob)
		jobs.GET("", h.listJobs)
		jobs.GET("/:job_id", h.getJob)
		jobs.PUT("/:job_id", h.updateJob)
		jobs.DELETE("/:job_id", h.deleteJob)
	}
}

// createJob godoc
// @Summary Schedule a job
// @Tags jobs
// @Accept json
// @Produce json
// @Param job body dto.CreateJobRequest true "Job details"
// @Success 201 {object} dto.JobResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /jobs [post]
func (h *jobHandler) createJob(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "create job")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJobResponse(job))
}

// listJobs godoc
// @Summary List jobs
// @Tags jobs
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Param status query string false "Filter by status"
// @Param customerID query string false "Filter by customer"
// @Param assignedTo query string false "Filter by assigned user"
// @Success 200 {object} dto.ListJobsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /jobs [get]
func (h *jobHandler) listJobs(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	var params dto.ListJobsParams
	if !bindQuery(c, &params) {
		return
	}

	res, err := h.jobService.ListJobs(c.Request.Context(), companyID, params)
	if err != nil {
		respondError(c, err, "list jobs")
		return
	}
	c.JSON(http.StatusOK, res)
}

// getJob godoc
// @Summary Get a job
// @Tags jobs
// @Produce json
// @Param job_id path string true "Job ID"
// @Success 200 {object} dto.JobResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /jobs/{job_id} [get]
func (h *jobHandler) getJob(c *gin.Context) {
	companyID, _, ok := tenantContext(c)
	if !ok {
		return
	}

	job, err := h.jobService.GetJobByID(c.Request.Context(), companyID, c.Param("job_id"))
	if err != nil {
		respondError(c, err, "get job")
		return
	}
	c.JSON(http.StatusOK, dto.ToJobResponse(job))
}

// updateJob godoc
// @Summary Update a job
// @Description Updates a job. Moving the status to completed stamps completedAt.
// @Tags jobs
// @Accept json
// @Produce json
// @Param job_id path string true "Job ID"
// @Param job body dto.UpdateJobRequest true "Fields to update"
// @Success 200 {object} dto.JobResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /jobs/{job_id} [put]
func (h *jobHandler) updateJob(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), companyID, c.Param("job_id"), req, userID)
	if err != nil {
		respondError(c, err, "update job")
		return
	}
	c.JSON(http.StatusOK, dto.ToJobResponse(job))
}

// deleteJob godoc
// @Summary Delete a job
// @Tags jobs
// @Param job_id path string true "Job ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /jobs/{job_id} [delete]
func (h *jobHandler) deleteJob(c *gin.Context) {
	companyID, userID, ok := tenantContext(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(c.Request.Context(), companyID, c.Param("job_id"), userID); err != nil {
		respondError(c, err, "delete job")
		return
	}
	c.Status(http.StatusNoContent)
}

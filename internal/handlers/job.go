package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workmatch-api/internal/dto"
	apierrors "github.com/yukikurage/workmatch-api/internal/errors"
	"github.com/yukikurage/workmatch-api/internal/logger"
	"github.com/yukikurage/workmatch-api/internal/models"
	"github.com/yukikurage/workmatch-api/internal/services"
	"github.com/yukikurage/workmatch-api/internal/utils"
)

// JobHandler serves job postings and matching
type JobHandler struct {
	jobService      *services.JobService
	matchingService *services.MatchingService
	suggester       *services.SkillSuggester
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobService *services.JobService, matchingService *services.MatchingService, suggester *services.SkillSuggester) *JobHandler {
	return &JobHandler{
		jobService:      jobService,
		matchingService: matchingService,
		suggester:       suggester,
	}
}

// ListJobs returns a page of jobs, optionally filtered by status
func (h *JobHandler) ListJobs(c *gin.Context) {
	params := utils.GetPageParams(c)

	input := services.ListJobsInput{
		Page:     params.Page,
		PageSize: params.PageSize,
	}
	if raw := c.Query("status"); raw != "" {
		status := models.JobStatus(raw)
		input.Status = &status
	}

	jobs, total, err := h.jobService.ListJobs(input)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewJobListResponse(jobs, params.Page, params.PageSize, total))
}

// ListMyJobs returns the jobs the calling employer posted
func (h *JobHandler) ListMyJobs(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListEmployerJobs(userID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": dto.ToJobDTOs(jobs)})
}

// MatchJobs returns the open jobs sharing a skill with the calling worker
func (h *JobHandler) MatchJobs(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	jobs, err := h.matchingService.MatchJobs(userID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": dto.ToJobDTOs(jobs)})
}

// GetJob returns a single job
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id", "job ID")
	if !ok {
		return
	}

	job, err := h.jobService.GetJob(jobID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJobDTO(*job))
}

// CreateJob posts a new job for the calling employer
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateJobInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	req.EmployerID = userID

	job, err := h.jobService.CreateJob(req)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToJobDTO(*job))
}

// UpdateJob patches a job owned by the caller
func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id", "job ID")
	if !ok {
		return
	}

	var req services.UpdateJobInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	job, err := h.jobService.UpdateJob(userID, jobID, req)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJobDTO(*job))
}

// DeleteJob removes a job and its applications
func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id", "job ID")
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(userID, role, jobID); err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}

// SuggestSkills proposes skill tags for a draft job posting
func (h *JobHandler) SuggestSkills(c *gin.Context) {
	type SuggestRequest struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	skills, err := h.suggester.SuggestSkills(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAIServiceNotConfigured):
			apierrors.ServiceUnavailable(c, "AI service is not configured")
		case apierrors.IsDomainError(err):
			apierrors.RespondWithDomainError(c, err)
		default:
			logger.Error("skill suggestion failed", "error", err)
			apierrors.ServiceUnavailable(c, "Skill suggestion is temporarily unavailable")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

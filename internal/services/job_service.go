package services

import (
	"errors"
	"fmt"
	"strings"

	apierrors "github.com/yukikurage/workmatch-api/internal/errors"
	"github.com/yukikurage/workmatch-api/internal/models"
	"github.com/yukikurage/workmatch-api/internal/repository"
)

var (
	ErrNotJobOwner         = apierrors.ForbiddenError("only the job owner can perform this action")
	ErrOnlyEmployersPost   = apierrors.ForbiddenError("only employers can post jobs")
	ErrInvalidJobStatus    = apierrors.Validation("invalid job status", "status")
	ErrJobStatusTransition = apierrors.Ineligible("job status cannot change from its current state")
	ErrTitleEmpty          = apierrors.Validation("title cannot be empty", "title")
)

// jobTransitions lists the statuses reachable from each status
var jobTransitions = map[models.JobStatus][]models.JobStatus{
	models.JobStatusOpen:       {models.JobStatusInProgress, models.JobStatusCompleted, models.JobStatusCancelled},
	models.JobStatusInProgress: {models.JobStatusCompleted, models.JobStatusCancelled, models.JobStatusOpen},
}

// CanTransitionJob reports whether a job may move from one status to another
func CanTransitionJob(from, to models.JobStatus) bool {
	if from == to {
		return true
	}
	for _, next := range jobTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// JobService handles job posting business logic
type JobService struct {
	jobRepo  repository.JobRepository
	userRepo repository.UserRepository
}

// NewJobService creates a new JobService
func NewJobService(jobRepo repository.JobRepository, userRepo repository.UserRepository) *JobService {
	return &JobService{
		jobRepo:  jobRepo,
		userRepo: userRepo,
	}
}

// CreateJobInput represents input for creating a job
type CreateJobInput struct {
	EmployerID     uint64   `json:"-"`
	Title          string   `json:"title" validate:"required,max=255"`
	Description    string   `json:"description" validate:"max=10000"`
	Location       string   `json:"location" validate:"max=255"`
	RequiredSkills []string `json:"required_skills"`
	Rate           float64  `json:"rate" validate:"gte=0"`
}

// UpdateJobInput represents a partial job update; nil fields are left alone
type UpdateJobInput struct {
	Title          *string           `json:"title" validate:"omitempty,max=255"`
	Description    *string           `json:"description" validate:"omitempty,max=10000"`
	Location       *string           `json:"location" validate:"omitempty,max=255"`
	RequiredSkills []string          `json:"required_skills"`
	Rate           *float64          `json:"rate" validate:"omitempty,gte=0"`
	Status         *models.JobStatus `json:"status"`
}

// ListJobsInput represents filters for listing jobs
type ListJobsInput struct {
	Status   *models.JobStatus
	Page     int
	PageSize int
}

// CreateJob posts a new open job for an employer
func (s *JobService) CreateJob(input CreateJobInput) (*models.Job, error) {
	employer, err := s.userRepo.FindByID(input.EmployerID)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound, "find employer")
	}
	if employer.Role != models.RoleEmployer {
		return nil, ErrOnlyEmployersPost
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Location = strings.TrimSpace(input.Location)
	if err := validateStruct("invalid job", input); err != nil {
		return nil, err
	}
	skills, err := normalizeSkillInput("required_skills", input.RequiredSkills)
	if err != nil {
		return nil, err
	}

	job := &models.Job{
		EmployerID:     input.EmployerID,
		Title:          input.Title,
		Description:    input.Description,
		Location:       input.Location,
		RequiredSkills: skills,
		Rate:           input.Rate,
		Status:         models.JobStatusOpen,
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// GetJob returns a job by ID
func (s *JobService) GetJob(jobID uint64) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, notFoundOr(err, ErrJobNotFound, "find job")
	}
	return job, nil
}

// ListJobs returns a page of jobs in store order
func (s *JobService) ListJobs(input ListJobsInput) ([]models.Job, int64, error) {
	filter := repository.JobFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, 0, ErrInvalidJobStatus
		}
		filter.Statuses = []models.JobStatus{*input.Status}
	}

	jobs, total, err := s.jobRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, total, nil
}

// ListEmployerJobs returns the jobs an employer posted, newest first
func (s *JobService) ListEmployerJobs(employerID uint64) ([]models.Job, error) {
	jobs, err := s.jobRepo.ListByEmployer(employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employer jobs: %w", err)
	}
	return jobs, nil
}

// UpdateJob applies a partial update; only the owner may change a job
func (s *JobService) UpdateJob(actorID, jobID uint64, input UpdateJobInput) (*models.Job, error) {
	job, err := s.GetJob(jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != actorID {
		return nil, ErrNotJobOwner
	}

	if err := validateStruct("invalid job update", input); err != nil {
		return nil, err
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidJobStatus
		}
		if !CanTransitionJob(job.Status, *input.Status) {
			return nil, ErrJobStatusTransition
		}
		job.Status = *input.Status
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleEmpty
		}
		job.Title = title
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Location != nil {
		job.Location = strings.TrimSpace(*input.Location)
	}
	if input.RequiredSkills != nil {
		skills, err := normalizeSkillInput("required_skills", input.RequiredSkills)
		if err != nil {
			return nil, err
		}
		job.RequiredSkills = skills
	}
	if input.Rate != nil {
		job.Rate = *input.Rate
	}

	if err := s.jobRepo.Update(job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return job, nil
}

// DeleteJob removes a job and every application on it; the owner or an admin may delete
func (s *JobService) DeleteJob(actorID uint64, actorRole models.UserRole, jobID uint64) error {
	job, err := s.GetJob(jobID)
	if err != nil {
		return err
	}
	if job.EmployerID != actorID && actorRole != models.RoleAdmin {
		return ErrNotJobOwner
	}

	if err := s.jobRepo.Delete(jobID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrJobNotFound
		}
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

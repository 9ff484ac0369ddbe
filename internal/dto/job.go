package dto

import (
	"time"

	"github.com/yukikurage/workmatch-api/internal/models"
)

// JobDTO represents a job in API responses
type JobDTO struct {
	ID             uint64           `json:"id"`
	EmployerID     uint64           `json:"employer_id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Location       string           `json:"location"`
	RequiredSkills []string         `json:"required_skills"`
	Rate           float64          `json:"rate"`
	Status         models.JobStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// JobListResponse represents a paginated list of jobs
type JobListResponse struct {
	Jobs       []JobDTO `json:"jobs"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalCount int64    `json:"total_count"`
	TotalPages int      `json:"total_pages"`
}

// ToJobDTO converts a job to DTO
func ToJobDTO(job models.Job) JobDTO {
	skills := []string(job.RequiredSkills)
	if skills == nil {
		skills = []string{}
	}
	return JobDTO{
		ID:             job.ID,
		EmployerID:     job.EmployerID,
		Title:          job.Title,
		Description:    job.Description,
		Location:       job.Location,
		RequiredSkills: skills,
		Rate:           job.Rate,
		Status:         job.Status,
		CreatedAt:      job.CreatedAt,
		UpdatedAt:      job.UpdatedAt,
	}
}

// ToJobDTOs converts a slice of jobs
func ToJobDTOs(jobs []models.Job) []JobDTO {
	out := make([]JobDTO, len(jobs))
	for i, job := range jobs {
		out[i] = ToJobDTO(job)
	}
	return out
}

// NewJobListResponse builds a paginated response
func NewJobListResponse(jobs []models.Job, page, pageSize int, total int64) JobListResponse {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return JobListResponse{
		Jobs:       ToJobDTOs(jobs),
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}
}

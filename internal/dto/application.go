package dto

import (
	"time"

	"github.com/yukikurage/workmatch-api/internal/models"
	"github.com/yukikurage/workmatch-api/internal/services"
)

// ApplicationDTO represents an application in API responses
type ApplicationDTO struct {
	ID          uint64                   `json:"id"`
	JobID       uint64                   `json:"job_id"`
	WorkerID    uint64                   `json:"worker_id"`
	Status      models.ApplicationStatus `json:"status"`
	CoverLetter string                   `json:"cover_letter"`
	ResumeURL   string                   `json:"resume_url,omitempty"`
	AppliedAt   time.Time                `json:"applied_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// ApplicationListItemDTO is an application with the job or worker details its viewer needs
type ApplicationListItemDTO struct {
	ApplicationDTO
	JobTitle     string           `json:"job_title"`
	JobStatus    models.JobStatus `json:"job_status,omitempty"`
	EmployerID   uint64           `json:"employer_id,omitempty"`
	EmployerName string           `json:"employer_name,omitempty"`
	WorkerName   string           `json:"worker_name,omitempty"`
	WorkerRating *float64         `json:"worker_rating,omitempty"`
}

// ToApplicationDTO converts an application to DTO
func ToApplicationDTO(app models.Application) ApplicationDTO {
	return ApplicationDTO{
		ID:          app.ID,
		JobID:       app.JobID,
		WorkerID:    app.WorkerID,
		Status:      app.Status,
		CoverLetter: app.CoverLetter,
		ResumeURL:   app.ResumeURL,
		AppliedAt:   app.AppliedAt,
		UpdatedAt:   app.UpdatedAt,
	}
}

// ToApplicationListItems converts enriched applications; worker details appear only for employer views
func ToApplicationListItems(apps []services.EnrichedApplication, role models.UserRole) []ApplicationListItemDTO {
	out := make([]ApplicationListItemDTO, len(apps))
	for i, app := range apps {
		item := ApplicationListItemDTO{
			ApplicationDTO: ToApplicationDTO(app.Application),
			JobTitle:       app.JobTitle,
			JobStatus:      app.JobStatus,
			EmployerID:     app.EmployerID,
			EmployerName:   app.EmployerName,
		}
		if role == models.RoleEmployer {
			rating := app.WorkerRating
			item.WorkerName = app.WorkerName
			item.WorkerRating = &rating
		}
		out[i] = item
	}
	return out
}

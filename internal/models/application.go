package models

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusUnderReview ApplicationStatus = "under_review"
	ApplicationStatusInterview   ApplicationStatus = "interview"
	ApplicationStatusAccepted    ApplicationStatus = "accepted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusUnderReview, ApplicationStatusInterview,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// Terminal statuses accept no further edits
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

type Application struct {
	ID          uint64            `gorm:"primarykey" json:"id"`
	JobID       uint64            `gorm:"not null;uniqueIndex:idx_applications_job_worker" json:"job_id"`
	WorkerID    uint64            `gorm:"not null;uniqueIndex:idx_applications_job_worker;index" json:"worker_id"`
	Status      ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CoverLetter string            `gorm:"type:text" json:"cover_letter"`
	ResumeURL   string            `gorm:"type:varchar(512)" json:"resume_url"`
	AppliedAt   time.Time         `json:"applied_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

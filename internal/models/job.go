package models

import (
	"time"

	"gorm.io/datatypes"
)

type JobStatus string

const (
	JobStatusOpen       JobStatus = "open"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusOpen, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// AcceptsApplications reports whether workers may still apply
func (s JobStatus) AcceptsApplications() bool {
	return s == JobStatusOpen || s == JobStatusInProgress
}

// Terminal reports whether the status can no longer change
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

type Job struct {
	ID             uint64                      `gorm:"primarykey" json:"id"`
	EmployerID     uint64                      `gorm:"not null;index" json:"employer_id"`
	Title          string                      `gorm:"type:varchar(255);not null" json:"title"`
	Description    string                      `gorm:"type:text" json:"description"`
	Location       string                      `gorm:"type:varchar(255)" json:"location"`
	RequiredSkills datatypes.JSONSlice[string] `json:"required_skills"`
	Rate           float64                     `json:"rate"`
	Status         JobStatus                   `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

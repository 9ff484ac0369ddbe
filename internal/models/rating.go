package models

import "time"

const (
	MinRatingValue = 1
	MaxRatingValue = 5
)

// Rating is immutable once stored
type Rating struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	FromUserID uint64    `gorm:"not null;index" json:"from_user_id"`
	ToUserID   uint64    `gorm:"not null;index" json:"to_user_id"`
	JobID      *uint64   `gorm:"index" json:"job_id,omitempty"`
	Value      int       `gorm:"not null" json:"value"`
	Review     string    `gorm:"type:text" json:"review"`
	CreatedAt  time.Time `json:"created_at"`
}

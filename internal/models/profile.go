package models

import (
	"time"

	"gorm.io/datatypes"
)

type WorkerProfile struct {
	ID           uint64                      `gorm:"primarykey" json:"id"`
	UserID       uint64                      `gorm:"uniqueIndex;not null" json:"user_id"`
	Skills       datatypes.JSONSlice[string] `json:"skills"`
	Availability string                      `gorm:"type:varchar(255)" json:"availability"`
	HourlyRate   float64                     `json:"hourly_rate"`
	Experience   int                         `json:"experience_years"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

type EmployerProfile struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	CompanyName string    `gorm:"type:varchar(255)" json:"company_name"`
	Industry    string    `gorm:"type:varchar(255)" json:"industry"`
	Website     string    `gorm:"type:varchar(255)" json:"website"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

package dto

import (
	"time"

	"github.com/yukikurage/workmatch-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64          `json:"id"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
	FullName string          `json:"full_name,omitempty"`
	Location string          `json:"location,omitempty"`
	Bio      string          `json:"bio,omitempty"`
	Rating   float64         `json:"rating"`
}

// AccountDTO is the signed-in user's own view, including contact details
type AccountDTO struct {
	UserDTO
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserDTO converts a user to its public DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
		FullName: user.FullName,
		Location: user.Location,
		Bio:      user.Bio,
		Rating:   user.Rating,
	}
}

// ToAccountDTO converts a user to the account DTO
func ToAccountDTO(user models.User) AccountDTO {
	return AccountDTO{
		UserDTO:   ToUserDTO(user),
		Email:     user.Email,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
	}
}

// WorkerProfileDTO represents a worker profile in API responses
type WorkerProfileDTO struct {
	UserID       uint64    `json:"user_id"`
	Skills       []string  `json:"skills"`
	Availability string    `json:"availability"`
	HourlyRate   float64   `json:"hourly_rate"`
	Experience   int       `json:"experience_years"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EmployerProfileDTO represents an employer profile in API responses
type EmployerProfileDTO struct {
	UserID      uint64    `json:"user_id"`
	CompanyName string    `json:"company_name"`
	Industry    string    `json:"industry"`
	Website     string    `json:"website"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToWorkerProfileDTO converts a worker profile to DTO
func ToWorkerProfileDTO(p models.WorkerProfile) WorkerProfileDTO {
	skills := []string(p.Skills)
	if skills == nil {
		skills = []string{}
	}
	return WorkerProfileDTO{
		UserID:       p.UserID,
		Skills:       skills,
		Availability: p.Availability,
		HourlyRate:   p.HourlyRate,
		Experience:   p.Experience,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToEmployerProfileDTO converts an employer profile to DTO
func ToEmployerProfileDTO(p models.EmployerProfile) EmployerProfileDTO {
	return EmployerProfileDTO{
		UserID:      p.UserID,
		CompanyName: p.CompanyName,
		Industry:    p.Industry,
		Website:     p.Website,
		UpdatedAt:   p.UpdatedAt,
	}
}

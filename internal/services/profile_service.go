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
	ErrWorkerProfileNotFound   = apierrors.NotFoundError("worker profile not found")
	ErrEmployerProfileNotFound = apierrors.NotFoundError("employer profile not found")
	ErrNotWorker               = apierrors.ForbiddenError("only workers have worker profiles")
	ErrNotEmployer             = apierrors.ForbiddenError("only employers have employer profiles")
)

// ProfileService manages the role-specific profile attached to each account
type ProfileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// WorkerProfileInput is the full replacement body for a worker profile
type WorkerProfileInput struct {
	Skills       []string `json:"skills"`
	Availability string   `json:"availability" validate:"max=255"`
	HourlyRate   float64  `json:"hourly_rate" validate:"gte=0"`
	Experience   int      `json:"experience_years" validate:"gte=0,lte=80"`
}

// EmployerProfileInput is the full replacement body for an employer profile
type EmployerProfileInput struct {
	CompanyName string `json:"company_name" validate:"max=255"`
	Industry    string `json:"industry" validate:"max=255"`
	Website     string `json:"website" validate:"omitempty,url,max=255"`
}

// GetWorkerProfile returns the worker profile owned by userID
func (s *ProfileService) GetWorkerProfile(userID uint64) (*models.WorkerProfile, error) {
	profile, err := s.profileRepo.FindWorkerProfile(userID)
	if err != nil {
		return nil, notFoundOr(err, ErrWorkerProfileNotFound, "find worker profile")
	}
	return profile, nil
}

// UpsertWorkerProfile creates or replaces the caller's worker profile
func (s *ProfileService) UpsertWorkerProfile(userID uint64, input WorkerProfileInput) (*models.WorkerProfile, error) {
	if err := s.requireRole(userID, models.RoleWorker, ErrNotWorker); err != nil {
		return nil, err
	}

	input.Availability = strings.TrimSpace(input.Availability)
	if err := validateStruct("invalid worker profile", input); err != nil {
		return nil, err
	}
	skills, err := normalizeSkillInput("skills", input.Skills)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindWorkerProfile(userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		profile = &models.WorkerProfile{UserID: userID}
	case err != nil:
		return nil, fmt.Errorf("failed to find worker profile: %w", err)
	}

	profile.Skills = skills
	profile.Availability = input.Availability
	profile.HourlyRate = input.HourlyRate
	profile.Experience = input.Experience

	if profile.ID == 0 {
		err = s.profileRepo.CreateWorkerProfile(profile)
	} else {
		err = s.profileRepo.UpdateWorkerProfile(profile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save worker profile: %w", err)
	}
	return profile, nil
}

// GetEmployerProfile returns the employer profile owned by userID
func (s *ProfileService) GetEmployerProfile(userID uint64) (*models.EmployerProfile, error) {
	profile, err := s.profileRepo.FindEmployerProfile(userID)
	if err != nil {
		return nil, notFoundOr(err, ErrEmployerProfileNotFound, "find employer profile")
	}
	return profile, nil
}

// UpsertEmployerProfile creates or replaces the caller's employer profile
func (s *ProfileService) UpsertEmployerProfile(userID uint64, input EmployerProfileInput) (*models.EmployerProfile, error) {
	if err := s.requireRole(userID, models.RoleEmployer, ErrNotEmployer); err != nil {
		return nil, err
	}

	input.CompanyName = strings.TrimSpace(input.CompanyName)
	input.Industry = strings.TrimSpace(input.Industry)
	input.Website = strings.TrimSpace(input.Website)
	if err := validateStruct("invalid employer profile", input); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindEmployerProfile(userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		profile = &models.EmployerProfile{UserID: userID}
	case err != nil:
		return nil, fmt.Errorf("failed to find employer profile: %w", err)
	}

	profile.CompanyName = input.CompanyName
	profile.Industry = input.Industry
	profile.Website = input.Website

	if profile.ID == 0 {
		err = s.profileRepo.CreateEmployerProfile(profile)
	} else {
		err = s.profileRepo.UpdateEmployerProfile(profile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save employer profile: %w", err)
	}
	return profile, nil
}

func (s *ProfileService) requireRole(userID uint64, role models.UserRole, denied error) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return notFoundOr(err, ErrUserNotFound, "find user")
	}
	if user.Role != role {
		return denied
	}
	return nil
}

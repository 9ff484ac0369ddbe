package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/workmatch-api/internal/models"
	"github.com/yukikurage/workmatch-api/internal/repository"
)

// candidateStatuses are the job statuses a worker can still be matched against
var candidateStatuses = []models.JobStatus{models.JobStatusOpen, models.JobStatusInProgress}

// MatchingService pairs workers with jobs by shared skills
type MatchingService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	jobRepo     repository.JobRepository
}

// NewMatchingService creates a new MatchingService
func NewMatchingService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, jobRepo repository.JobRepository) *MatchingService {
	return &MatchingService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		jobRepo:     jobRepo,
	}
}

// MatchJobs returns every open or in-progress job sharing at least one skill with the worker, in store order.
// A worker without a profile matches nothing.
func (s *MatchingService) MatchJobs(workerID uint64) ([]models.Job, error) {
	if _, err := s.userRepo.FindByID(workerID); err != nil {
		return nil, notFoundOr(err, ErrUserNotFound, "find worker")
	}

	profile, err := s.profileRepo.FindWorkerProfile(workerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []models.Job{}, nil
		}
		return nil, fmt.Errorf("failed to find worker profile: %w", err)
	}
	if len(profile.Skills) == 0 {
		return []models.Job{}, nil
	}

	candidates, _, err := s.jobRepo.List(repository.JobFilter{Statuses: candidateStatuses})
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	matches := make([]models.Job, 0, len(candidates))
	for _, job := range candidates {
		if SkillsOverlap(profile.Skills, job.RequiredSkills) {
			matches = append(matches, job)
		}
	}
	return matches, nil
}

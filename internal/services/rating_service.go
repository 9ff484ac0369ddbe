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
	ErrRatingOutOfRange = apierrors.Validation(
		fmt.Sprintf("rating must be between %d and %d", models.MinRatingValue, models.MaxRatingValue), "rating")
	ErrSelfRating        = apierrors.Validation("cannot rate yourself", "to_user_id")
	ErrJobNotCompleted   = apierrors.Ineligible("job must be completed before it can be rated")
	ErrNotJobParticipant = apierrors.ForbiddenError("only the employer and an accepted worker can rate each other for this job")
	ErrAlreadyRated      = apierrors.Duplicate("already rated this user for this job")
)

// RatingService records ratings and keeps each user's average current
type RatingService struct {
	ratingRepo repository.RatingRepository
	userRepo   repository.UserRepository
	jobRepo    repository.JobRepository
	appRepo    repository.ApplicationRepository
}

// NewRatingService creates a new RatingService
func NewRatingService(
	ratingRepo repository.RatingRepository,
	userRepo repository.UserRepository,
	jobRepo repository.JobRepository,
	appRepo repository.ApplicationRepository,
) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		userRepo:   userRepo,
		jobRepo:    jobRepo,
		appRepo:    appRepo,
	}
}

// SubmitRatingInput represents a rating one user gives another
type SubmitRatingInput struct {
	FromUserID uint64
	ToUserID   uint64
	JobID      *uint64
	Value      int
	Review     string `json:"review" validate:"max=5000"`
}

// SubmitRating stores a rating and returns it together with the recipient's new average
func (s *RatingService) SubmitRating(input SubmitRatingInput) (*models.Rating, float64, error) {
	if input.Value < models.MinRatingValue || input.Value > models.MaxRatingValue {
		return nil, 0, ErrRatingOutOfRange
	}
	if input.FromUserID == input.ToUserID {
		return nil, 0, ErrSelfRating
	}
	input.Review = strings.TrimSpace(input.Review)
	if err := validateStruct("invalid rating", input); err != nil {
		return nil, 0, err
	}

	if _, err := s.userRepo.FindByID(input.ToUserID); err != nil {
		return nil, 0, notFoundOr(err, ErrUserNotFound, "find rated user")
	}

	if input.JobID != nil {
		if err := s.checkJobRating(input.FromUserID, input.ToUserID, *input.JobID); err != nil {
			return nil, 0, err
		}
	}

	rating := &models.Rating{
		FromUserID: input.FromUserID,
		ToUserID:   input.ToUserID,
		JobID:      input.JobID,
		Value:      input.Value,
		Review:     input.Review,
	}

	average, err := s.ratingRepo.CreateAndRecompute(rating)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, 0, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, 0, ErrAlreadyRated
		}
		return nil, 0, fmt.Errorf("failed to store rating: %w", err)
	}
	return rating, average, nil
}

// checkJobRating enforces the completed-job and participant rules for job-scoped ratings.
// The employer may rate a worker whose application was accepted, and that worker may rate the employer.
func (s *RatingService) checkJobRating(fromID, toID, jobID uint64) error {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return notFoundOr(err, ErrJobNotFound, "find job")
	}
	if job.Status != models.JobStatusCompleted {
		return ErrJobNotCompleted
	}

	var workerID uint64
	switch {
	case fromID == job.EmployerID:
		workerID = toID
	case toID == job.EmployerID:
		workerID = fromID
	default:
		return ErrNotJobParticipant
	}

	accepted, err := s.hasAcceptedApplication(jobID, workerID)
	if err != nil {
		return err
	}
	if !accepted {
		return ErrNotJobParticipant
	}

	exists, err := s.ratingRepo.Exists(fromID, toID, jobID)
	if err != nil {
		return fmt.Errorf("failed to check existing rating: %w", err)
	}
	if exists {
		return ErrAlreadyRated
	}
	return nil
}

func (s *RatingService) hasAcceptedApplication(jobID, workerID uint64) (bool, error) {
	app, err := s.appRepo.FindByJobAndWorker(jobID, workerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to find application: %w", err)
	}
	return app.Status == models.ApplicationStatusAccepted, nil
}

// ListUserRatings returns the ratings a user has received, newest first
func (s *RatingService) ListUserRatings(userID uint64) ([]models.Rating, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, notFoundOr(err, ErrUserNotFound, "find user")
	}

	ratings, err := s.ratingRepo.ListByRecipient(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return ratings, nil
}

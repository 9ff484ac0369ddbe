package repository

import (
	"errors"

	"github.com/yukikurage/workmatch-api/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicate is returned when a write violates a uniqueness constraint
	ErrDuplicate = errors.New("repository: duplicate record")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByIDs returns the users that exist among ids, keyed by ID
	FindByIDs(ids []uint64) (map[uint64]models.User, error)

	// Update saves mutable profile fields of a user
	Update(user *models.User) error
}

// ProfileRepository defines the interface for worker and employer profile data access
type ProfileRepository interface {
	// FindWorkerProfile finds the worker profile owned by userID
	FindWorkerProfile(userID uint64) (*models.WorkerProfile, error)

	// CreateWorkerProfile creates a worker profile
	CreateWorkerProfile(profile *models.WorkerProfile) error

	// UpdateWorkerProfile updates a worker profile
	UpdateWorkerProfile(profile *models.WorkerProfile) error

	// FindEmployerProfile finds the employer profile owned by userID
	FindEmployerProfile(userID uint64) (*models.EmployerProfile, error)

	// FindEmployerProfiles returns the employer profiles that exist for userIDs, keyed by user ID
	FindEmployerProfiles(userIDs []uint64) (map[uint64]models.EmployerProfile, error)

	// CreateEmployerProfile creates an employer profile
	CreateEmployerProfile(profile *models.EmployerProfile) error

	// UpdateEmployerProfile updates an employer profile
	UpdateEmployerProfile(profile *models.EmployerProfile) error
}

// JobFilter holds filtering options for listing jobs
type JobFilter struct {
	Statuses []models.JobStatus
	Page     int
	PageSize int
}

// JobRepository defines the interface for job data access
type JobRepository interface {
	// Create creates a new job
	Create(job *models.Job) error

	// FindByID finds a job by ID
	FindByID(id uint64) (*models.Job, error)

	// FindByIDs returns the jobs that exist among ids, keyed by ID
	FindByIDs(ids []uint64) (map[uint64]models.Job, error)

	// List retrieves jobs ordered by ID with optional filtering and pagination
	List(filter JobFilter) ([]models.Job, int64, error)

	// ListByEmployer lists jobs owned by an employer, newest first
	ListByEmployer(employerID uint64) ([]models.Job, error)

	// Update updates a job
	Update(job *models.Job) error

	// Delete deletes a job together with all of its applications
	Delete(id uint64) error
}

// ApplicationRepository defines the interface for application data access
type ApplicationRepository interface {
	// Create creates a new application, returning ErrDuplicate for a repeated (job, worker) pair
	Create(app *models.Application) error

	// FindByID finds an application by ID
	FindByID(id uint64) (*models.Application, error)

	// FindByJobAndWorker finds the application a worker submitted for a job
	FindByJobAndWorker(jobID, workerID uint64) (*models.Application, error)

	// ListByWorker lists a worker's applications, newest first
	ListByWorker(workerID uint64) ([]models.Application, error)

	// ListByJob lists applications for a job, newest first
	ListByJob(jobID uint64) ([]models.Application, error)

	// ListByEmployer lists applications on every job owned by employerID, newest first
	ListByEmployer(employerID uint64) ([]models.Application, error)

	// Update updates an application
	Update(app *models.Application) error
}

// RatingRepository defines the interface for rating data access
type RatingRepository interface {
	// CreateAndRecompute stores a rating and refreshes the recipient's average.
	// Stores that support transactions do both atomically.
	CreateAndRecompute(rating *models.Rating) (float64, error)

	// Exists reports whether from already rated to for the given job
	Exists(fromUserID, toUserID, jobID uint64) (bool, error)

	// ListByRecipient lists ratings addressed to a user, newest first
	ListByRecipient(toUserID uint64) ([]models.Rating, error)
}

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	// Create stores a new message
	Create(msg *models.Message) error

	// FindByID finds a message by ID
	FindByID(id uint64) (*models.Message, error)

	// ListByUser lists messages sent or received by a user, newest first
	ListByUser(userID uint64) ([]models.Message, error)

	// ListConversation lists messages exchanged between two users, oldest first
	ListConversation(userA, userB uint64) ([]models.Message, error)

	// MarkRead sets the read flag of a message
	MarkRead(id uint64) error
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create stores a new notification
	Create(n *models.Notification) error

	// FindByID finds a notification by ID
	FindByID(id uint64) (*models.Notification, error)

	// ListByUser lists a user's notifications, newest first
	ListByUser(userID uint64) ([]models.Notification, error)

	// CountUnread counts a user's unread notifications
	CountUnread(userID uint64) (int64, error)

	// MarkRead sets the read flag of a notification
	MarkRead(id uint64) error
}

// Store bundles every repository a running service needs
type Store struct {
	Users         UserRepository
	Profiles      ProfileRepository
	Jobs          JobRepository
	Applications  ApplicationRepository
	Ratings       RatingRepository
	Messages      MessageRepository
	Notifications NotificationRepository
}

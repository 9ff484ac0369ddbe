package services

import (
	"errors"
	"fmt"
	"time"

	apierrors "github.com/yukikurage/workmatch-api/internal/errors"
	"github.com/yukikurage/workmatch-api/internal/models"
	"github.com/yukikurage/workmatch-api/internal/repository"
)

var (
	ErrJobClosed               = apierrors.Ineligible("job is not accepting applications")
	ErrAlreadyApplied          = apierrors.Duplicate("already applied to this job")
	ErrNotApplicationOwner     = apierrors.ForbiddenError("application belongs to another worker")
	ErrNotApplicationJobOwner  = apierrors.ForbiddenError("application is for a job you do not own")
	ErrApplicationFinalized    = apierrors.Ineligible("application has already been accepted or rejected")
	ErrInvalidApplicationState = apierrors.Validation("invalid application status", "status")
	ErrRoleNotAllowed          = apierrors.ForbiddenError("role is not allowed to perform this action")
)

// Patchable application fields as they appear in request bodies
const (
	FieldStatus      = "status"
	FieldCoverLetter = "cover_letter"
	FieldResumeURL   = "resume_url"
)

// editableFields lists what each role may change on an application; admins may change anything known
var editableFields = map[models.UserRole]map[string]bool{
	models.RoleWorker:   {FieldCoverLetter: true},
	models.RoleEmployer: {FieldStatus: true, FieldCoverLetter: true},
	models.RoleAdmin:    {FieldStatus: true, FieldCoverLetter: true, FieldResumeURL: true},
}

// ApplicationService manages the application lifecycle between workers and employers
type ApplicationService struct {
	appRepo     repository.ApplicationRepository
	jobRepo     repository.JobRepository
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	now         func() time.Time
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	appRepo repository.ApplicationRepository,
	jobRepo repository.JobRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
) *ApplicationService {
	return &ApplicationService{
		appRepo:     appRepo,
		jobRepo:     jobRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		now:         time.Now,
	}
}

// ApplicationPayload holds what a worker submits with an application
type ApplicationPayload struct {
	CoverLetter string `json:"cover_letter" validate:"max=5000"`
	ResumeURL   string `json:"resume_url" validate:"omitempty,url,max=512"`
}

// ApplicationPatch is a partial application update.
// Present names the known fields sent in the request, including explicit nulls.
// Unknown carries any other field names present in the request so they can be rejected by name.
type ApplicationPatch struct {
	Status      *models.ApplicationStatus `json:"status"`
	CoverLetter *string                   `json:"cover_letter" validate:"omitempty,max=5000"`
	ResumeURL   *string                   `json:"resume_url" validate:"omitempty,url,max=512"`
	Present     []string                  `json:"-"`
	Unknown     []string                  `json:"-"`
}

// Fields lists the field names present in the patch
func (p ApplicationPatch) Fields() []string {
	sent := make(map[string]bool, len(p.Present))
	for _, f := range p.Present {
		sent[f] = true
	}

	fields := make([]string, 0, 3+len(p.Unknown))
	for _, f := range []struct {
		name string
		set  bool
	}{
		{FieldStatus, p.Status != nil},
		{FieldCoverLetter, p.CoverLetter != nil},
		{FieldResumeURL, p.ResumeURL != nil},
	} {
		if f.set || sent[f.name] {
			fields = append(fields, f.name)
		}
	}
	return append(fields, p.Unknown...)
}

// EnrichedApplication is an application joined with the details its viewer needs
type EnrichedApplication struct {
	models.Application
	JobTitle     string
	JobStatus    models.JobStatus
	EmployerID   uint64
	EmployerName string
	WorkerName   string
	WorkerRating float64
}

// SubmitApplication records a worker's application to a job
func (s *ApplicationService) SubmitApplication(workerID, jobID uint64, payload ApplicationPayload) (*models.Application, error) {
	if err := validateStruct("invalid application", payload); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, notFoundOr(err, ErrJobNotFound, "find job")
	}
	if !job.Status.AcceptsApplications() {
		return nil, ErrJobClosed
	}

	if _, err := s.appRepo.FindByJobAndWorker(jobID, workerID); err == nil {
		return nil, ErrAlreadyApplied
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}

	now := s.now()
	app := &models.Application{
		JobID:       jobID,
		WorkerID:    workerID,
		Status:      models.ApplicationStatusPending,
		CoverLetter: payload.CoverLetter,
		ResumeURL:   payload.ResumeURL,
		AppliedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.appRepo.Create(app); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return app, nil
}

// UpdateApplication applies patch on behalf of the actor.
// Authorization and field restrictions are checked before the terminal-state rule.
func (s *ApplicationService) UpdateApplication(actorID uint64, actorRole models.UserRole, applicationID uint64, patch ApplicationPatch) (*models.Application, error) {
	app, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		return nil, notFoundOr(err, ErrApplicationNotFound, "find application")
	}

	if err := s.authorizeUpdate(actorID, actorRole, app); err != nil {
		return nil, err
	}

	allowed := editableFields[actorRole]
	var denied []string
	for _, field := range patch.Fields() {
		if !allowed[field] {
			denied = append(denied, field)
		}
	}
	if len(denied) > 0 {
		if actorRole == models.RoleAdmin {
			return nil, apierrors.Validation("unknown application fields", denied...)
		}
		return nil, apierrors.ForbiddenError("not allowed to modify these fields", denied...)
	}

	if app.Status.Terminal() {
		return nil, ErrApplicationFinalized
	}

	if patch.Status != nil && !patch.Status.Valid() {
		return nil, ErrInvalidApplicationState
	}
	if err := validateStruct("invalid application update", patch); err != nil {
		return nil, err
	}

	if patch.Status != nil {
		app.Status = *patch.Status
	}
	if patch.CoverLetter != nil {
		app.CoverLetter = *patch.CoverLetter
	}
	if patch.ResumeURL != nil {
		app.ResumeURL = *patch.ResumeURL
	}
	app.UpdatedAt = s.now()

	if err := s.appRepo.Update(app); err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return app, nil
}

func (s *ApplicationService) authorizeUpdate(actorID uint64, actorRole models.UserRole, app *models.Application) error {
	switch actorRole {
	case models.RoleAdmin:
		return nil
	case models.RoleWorker:
		if app.WorkerID != actorID {
			return ErrNotApplicationOwner
		}
		return nil
	case models.RoleEmployer:
		job, err := s.jobRepo.FindByID(app.JobID)
		if err != nil {
			return notFoundOr(err, ErrJobNotFound, "find job")
		}
		if job.EmployerID != actorID {
			return ErrNotApplicationJobOwner
		}
		return nil
	}
	return ErrRoleNotAllowed
}

// ListMyApplications returns a worker's own applications or the applications on an employer's jobs
func (s *ApplicationService) ListMyApplications(actorID uint64, actorRole models.UserRole) ([]EnrichedApplication, error) {
	switch actorRole {
	case models.RoleWorker:
		apps, err := s.appRepo.ListByWorker(actorID)
		if err != nil {
			return nil, fmt.Errorf("failed to list applications: %w", err)
		}
		return s.enrichForWorker(apps)
	case models.RoleEmployer:
		apps, err := s.appRepo.ListByEmployer(actorID)
		if err != nil {
			return nil, fmt.Errorf("failed to list applications: %w", err)
		}
		return s.enrichForEmployer(apps)
	}
	return nil, ErrRoleNotAllowed
}

func (s *ApplicationService) enrichForWorker(apps []models.Application) ([]EnrichedApplication, error) {
	jobIDs := make([]uint64, 0, len(apps))
	for _, app := range apps {
		jobIDs = append(jobIDs, app.JobID)
	}
	jobs, err := s.jobRepo.FindByIDs(jobIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}

	employerIDs := make([]uint64, 0, len(jobs))
	for _, job := range jobs {
		employerIDs = append(employerIDs, job.EmployerID)
	}
	employers, err := s.userRepo.FindByIDs(employerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load employers: %w", err)
	}
	companies, err := s.profileRepo.FindEmployerProfiles(employerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load employer profiles: %w", err)
	}

	out := make([]EnrichedApplication, 0, len(apps))
	for _, app := range apps {
		view := EnrichedApplication{Application: app}
		if job, ok := jobs[app.JobID]; ok {
			view.JobTitle = job.Title
			view.JobStatus = job.Status
			view.EmployerID = job.EmployerID
			if company, ok := companies[job.EmployerID]; ok && company.CompanyName != "" {
				view.EmployerName = company.CompanyName
			} else if employer, ok := employers[job.EmployerID]; ok {
				view.EmployerName = employer.DisplayName()
			}
		}
		out = append(out, view)
	}
	return out, nil
}

func (s *ApplicationService) enrichForEmployer(apps []models.Application) ([]EnrichedApplication, error) {
	jobIDs := make([]uint64, 0, len(apps))
	workerIDs := make([]uint64, 0, len(apps))
	for _, app := range apps {
		jobIDs = append(jobIDs, app.JobID)
		workerIDs = append(workerIDs, app.WorkerID)
	}
	jobs, err := s.jobRepo.FindByIDs(jobIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}
	workers, err := s.userRepo.FindByIDs(workerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load workers: %w", err)
	}

	out := make([]EnrichedApplication, 0, len(apps))
	for _, app := range apps {
		view := EnrichedApplication{Application: app}
		if job, ok := jobs[app.JobID]; ok {
			view.JobTitle = job.Title
			view.JobStatus = job.Status
			view.EmployerID = job.EmployerID
		}
		if worker, ok := workers[app.WorkerID]; ok {
			view.WorkerName = worker.DisplayName()
			view.WorkerRating = worker.Rating
		}
		out = append(out, view)
	}
	return out, nil
}

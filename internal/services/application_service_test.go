package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	apierrors "github.com/yukikurage/workmatch-api/internal/errors"
	"github.com/yukikurage/workmatch-api/internal/models"
	"github.com/yukikurage/workmatch-api/internal/repository"
)

type ApplicationServiceTestSuite struct {
	suite.Suite
	store    *repository.Store
	svc      *ApplicationService
	employer *models.User
	worker   *models.User
	job      *models.Job
}

func (suite *ApplicationServiceTestSuite) SetupTest() {
	suite.store = newStore(suite.T())
	suite.svc = NewApplicationService(suite.store.Applications, suite.store.Jobs, suite.store.Users, suite.store.Profiles)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var ticks int
	suite.svc.now = func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Minute)
	}

	suite.employer = seedUser(suite.T(), suite.store, "acme", models.RoleEmployer)
	suite.worker = seedUser(suite.T(), suite.store, "wendy", models.RoleWorker)
	suite.job = seedJob(suite.T(), suite.store, suite.employer.ID, "Fix pipes", models.JobStatusOpen, "plumbing")
}

func (suite *ApplicationServiceTestSuite) submit() *models.Application {
	app, err := suite.svc.SubmitApplication(suite.worker.ID, suite.job.ID, ApplicationPayload{CoverLetter: "hire me"})
	suite.Require().NoError(err)
	return app
}

func (suite *ApplicationServiceTestSuite) TestSubmit_StartsPending() {
	app := suite.submit()

	suite.Equal(models.ApplicationStatusPending, app.Status)
	suite.Equal("hire me", app.CoverLetter)
	suite.False(app.AppliedAt.IsZero())
}

func (suite *ApplicationServiceTestSuite) TestSubmit_Duplicate() {
	suite.submit()

	_, err := suite.svc.SubmitApplication(suite.worker.ID, suite.job.ID, ApplicationPayload{})
	suite.ErrorIs(err, ErrAlreadyApplied)
	kind, _ := apierrors.KindOf(err)
	suite.Equal(apierrors.KindDuplicate, kind)
}

func (suite *ApplicationServiceTestSuite) TestSubmit_ClosedJob() {
	closed := seedJob(suite.T(), suite.store, suite.employer.ID, "Done", models.JobStatusCompleted)

	_, err := suite.svc.SubmitApplication(suite.worker.ID, closed.ID, ApplicationPayload{})
	suite.ErrorIs(err, ErrJobClosed)
}

func (suite *ApplicationServiceTestSuite) TestSubmit_UnknownJob() {
	_, err := suite.svc.SubmitApplication(suite.worker.ID, 404, ApplicationPayload{})
	suite.ErrorIs(err, ErrJobNotFound)
}

func (suite *ApplicationServiceTestSuite) TestSubmit_InvalidResumeURL() {
	_, err := suite.svc.SubmitApplication(suite.worker.ID, suite.job.ID, ApplicationPayload{ResumeURL: "not a url"})

	var de *apierrors.DomainError
	suite.Require().ErrorAs(err, &de)
	suite.Equal(apierrors.KindValidation, de.Kind)
	suite.Equal([]string{"resume_url"}, de.Fields)
}

func (suite *ApplicationServiceTestSuite) TestUpdate_WorkerMayOnlyEditCoverLetter() {
	app := suite.submit()

	updated, err := suite.svc.UpdateApplication(suite.worker.ID, models.RoleWorker, app.ID, ApplicationPatch{CoverLetter: strPtr("revised")})
	suite.Require().NoError(err)
	suite.Equal("revised", updated.CoverLetter)

	_, err = suite.svc.UpdateApplication(suite.worker.ID, models.RoleWorker, app.ID, ApplicationPatch{
		Status:    statusPtr(models.ApplicationStatusAccepted),
		ResumeURL: strPtr("https://example.com/cv.pdf"),
	})
	var de *apierrors.DomainError
	suite.Require().ErrorAs(err, &de)
	suite.Equal(apierrors.KindForbidden, de.Kind)
	suite.Equal([]string{FieldStatus, FieldResumeURL}, de.Fields)

	stored, err := suite.store.Applications.FindByID(app.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ApplicationStatusPending, stored.Status)
}

func (suite *ApplicationServiceTestSuite) TestUpdate_WorkerExplicitNullStatusIsForbidden() {
	app := suite.submit()

	_, err := suite.svc.UpdateApplication(suite.worker.ID, models.RoleWorker, app.ID, ApplicationPatch{
		Present: []string{FieldStatus},
	})
	var de *apierrors.DomainError
	suite.Require().ErrorAs(err, &de)
	suite.Equal(apierrors.KindForbidden, de.Kind)
	suite.Equal([]string{FieldStatus}, de.Fields)
}

func (suite *ApplicationServiceTestSuite) TestUpdate_EmployerMovesStatus() {
	app := suite.submit()

	updated, err := suite.svc.UpdateApplication(suite.employer.ID, models.RoleEmployer, app.ID, ApplicationPatch{
		Status: statusPtr(models.ApplicationStatusInterview),
	})
	suite.Require().NoError(err)
	suite.Equal(models.ApplicationStatusInterview, updated.Status)
	suite.True(updated.UpdatedAt.After(app.AppliedAt))
}

func (suite *ApplicationServiceTestSuite) TestUpdate_ForeignEmployerRejected() {
	app := suite.submit()
	rival := seedUser(suite.T(), suite.store, "rival", models.RoleEmployer)

	_, err := suite.svc.UpdateApplication(rival.ID, models.RoleEmployer, app.ID, ApplicationPatch{
		Status: statusPtr(models.ApplicationStatusRejected),
	})
	suite.ErrorIs(err, ErrNotApplicationJobOwner)
}

func (suite *ApplicationServiceTestSuite) TestUpdate_OtherWorkerRejected() {
	app := suite.submit()
	other := seedUser(suite.T(), suite.store, "other", models.RoleWorker)

	_, err := suite.svc.UpdateApplication(other.ID, models.RoleWorker, app.ID, ApplicationPatch{CoverLetter: strPtr("mine now")})
	suite.ErrorIs(err, ErrNotApplicationOwner)
}

func (suite *ApplicationServiceTestSuite) TestUpdate_TerminalStatusIsFinal() {
	app := suite.submit()

	_, err := suite.svc.UpdateApplication(suite.employer.ID, models.RoleEmployer, app.ID, ApplicationPatch{
		Status: statusPtr(models.ApplicationStatusAccepted),
	})
	suite.Require().NoError(err)

	_, err = suite.svc.UpdateApplication(suite.employer.ID, models.RoleEmployer, app.ID, ApplicationPatch{
		Status: statusPtr(models.ApplicationStatusPending),
	})
	suite.ErrorIs(err, ErrApplicationFinalized)

	_, err = suite.svc.UpdateApplication(suite.worker.ID, models.RoleWorker, app.ID, ApplicationPatch{CoverLetter: strPtr("late edit")})
	suite.ErrorIs(err, ErrApplicationFinalized)
}

func (suite *ApplicationServiceTestSuite) TestUpdate_InvalidStatus() {
	app := suite.submit()

	_, err := suite.svc.UpdateApplication(suite.employer.ID, models.RoleEmployer, app.ID, ApplicationPatch{
		Status: statusPtr("hired"),
	})
	suite.ErrorIs(err, ErrInvalidApplicationState)
}

func (suite *ApplicationServiceTestSuite) TestUpdate_AdminUnknownFieldIsValidation() {
	app := suite.submit()
	admin := seedUser(suite.T(), suite.store, "root", models.RoleAdmin)

	_, err := suite.svc.UpdateApplication(admin.ID, models.RoleAdmin, app.ID, ApplicationPatch{Unknown: []string{"salary"}})
	var de *apierrors.DomainError
	suite.Require().ErrorAs(err, &de)
	suite.Equal(apierrors.KindValidation, de.Kind)
	suite.Equal([]string{"salary"}, de.Fields)

	updated, err := suite.svc.UpdateApplication(admin.ID, models.RoleAdmin, app.ID, ApplicationPatch{
		ResumeURL: strPtr("https://example.com/cv.pdf"),
	})
	suite.Require().NoError(err)
	suite.Equal("https://example.com/cv.pdf", updated.ResumeURL)
}

func (suite *ApplicationServiceTestSuite) TestUpdate_UnknownApplication() {
	_, err := suite.svc.UpdateApplication(suite.worker.ID, models.RoleWorker, 404, ApplicationPatch{})
	suite.ErrorIs(err, ErrApplicationNotFound)
}

func (suite *ApplicationServiceTestSuite) TestListMine_WorkerSeesEmployerName() {
	suite.Require().NoError(suite.store.Profiles.CreateEmployerProfile(&models.EmployerProfile{
		UserID:      suite.employer.ID,
		CompanyName: "Acme Plumbing",
	}))
	suite.submit()

	views, err := suite.svc.ListMyApplications(suite.worker.ID, models.RoleWorker)
	suite.Require().NoError(err)
	suite.Require().Len(views, 1)
	suite.Equal("Fix pipes", views[0].JobTitle)
	suite.Equal("Acme Plumbing", views[0].EmployerName)
	suite.Equal(suite.employer.ID, views[0].EmployerID)
}

func (suite *ApplicationServiceTestSuite) TestListMine_EmployerSeesWorkers() {
	suite.submit()
	second := seedUser(suite.T(), suite.store, "second", models.RoleWorker)
	_, err := suite.svc.SubmitApplication(second.ID, suite.job.ID, ApplicationPayload{})
	suite.Require().NoError(err)

	views, err := suite.svc.ListMyApplications(suite.employer.ID, models.RoleEmployer)
	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.Equal("second", views[0].WorkerName)
	suite.Equal("wendy", views[1].WorkerName)
}

func (suite *ApplicationServiceTestSuite) TestListMine_AdminRejected() {
	_, err := suite.svc.ListMyApplications(1, models.RoleAdmin)
	suite.ErrorIs(err, ErrRoleNotAllowed)
}

func TestApplicationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApplicationServiceTestSuite))
}

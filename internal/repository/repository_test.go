package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/workmatch-api/internal/database"
	"github.com/yukikurage/workmatch-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormStoreTestSuite exercises the GORM repositories against SQLite
type GormStoreTestSuite struct {
	suite.Suite
	db    *gorm.DB
	store *Store
}

func (suite *GormStoreTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	suite.Require().NoError(err)

	// every pooled connection to :memory: would otherwise see its own empty database
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	database.SetDB(suite.db)
	suite.Require().NoError(database.Migrate())

	suite.store = NewGormStore(suite.db)
}

func (suite *GormStoreTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *GormStoreTestSuite) createUser(username string, role models.UserRole) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	suite.Require().NoError(suite.store.Users.Create(user))
	return user
}

func (suite *GormStoreTestSuite) createJob(employerID uint64, title string, status models.JobStatus) *models.Job {
	job := &models.Job{
		EmployerID:     employerID,
		Title:          title,
		RequiredSkills: []string{"go"},
		Status:         status,
	}
	suite.Require().NoError(suite.store.Jobs.Create(job))
	return job
}

func (suite *GormStoreTestSuite) apply(jobID, workerID uint64, at time.Time) *models.Application {
	app := &models.Application{
		JobID:     jobID,
		WorkerID:  workerID,
		Status:    models.ApplicationStatusPending,
		AppliedAt: at,
		UpdatedAt: at,
	}
	suite.Require().NoError(suite.store.Applications.Create(app))
	return app
}

func (suite *GormStoreTestSuite) TestUsers_DuplicateUsername() {
	suite.createUser("alice", models.RoleWorker)

	err := suite.store.Users.Create(&models.User{
		Username:     "alice",
		Email:        "other@example.com",
		PasswordHash: "x",
		Role:         models.RoleWorker,
	})
	suite.ErrorIs(err, ErrDuplicate)

	_, err = suite.store.Users.FindByUsername("nobody")
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *GormStoreTestSuite) TestUsers_FindByIDs() {
	a := suite.createUser("alice", models.RoleWorker)
	b := suite.createUser("bob", models.RoleEmployer)

	found, err := suite.store.Users.FindByIDs([]uint64{a.ID, b.ID, 999})
	suite.Require().NoError(err)
	suite.Len(found, 2)
	suite.Equal("bob", found[b.ID].Username)

	empty, err := suite.store.Users.FindByIDs(nil)
	suite.Require().NoError(err)
	suite.Empty(empty)
}

func (suite *GormStoreTestSuite) TestJobs_SkillsRoundTrip() {
	employer := suite.createUser("acme", models.RoleEmployer)
	job := &models.Job{EmployerID: employer.ID, Title: "Welder", RequiredSkills: []string{"welding", "Blueprints"}}
	suite.Require().NoError(suite.store.Jobs.Create(job))

	found, err := suite.store.Jobs.FindByID(job.ID)
	suite.Require().NoError(err)
	suite.Equal([]string{"welding", "Blueprints"}, []string(found.RequiredSkills))
	suite.Equal(models.JobStatusOpen, found.Status)
}

func (suite *GormStoreTestSuite) TestJobs_ListFiltersAndPaginates() {
	employer := suite.createUser("acme", models.RoleEmployer)
	suite.createJob(employer.ID, "A", models.JobStatusOpen)
	suite.createJob(employer.ID, "B", models.JobStatusCompleted)
	suite.createJob(employer.ID, "C", models.JobStatusInProgress)
	suite.createJob(employer.ID, "D", models.JobStatusOpen)

	jobs, total, err := suite.store.Jobs.List(JobFilter{
		Statuses: []models.JobStatus{models.JobStatusOpen, models.JobStatusInProgress},
		Page:     1,
		PageSize: 2,
	})
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Require().Len(jobs, 2)
	suite.Equal("A", jobs[0].Title)
	suite.Equal("C", jobs[1].Title)

	jobs, _, err = suite.store.Jobs.List(JobFilter{
		Statuses: []models.JobStatus{models.JobStatusOpen, models.JobStatusInProgress},
		Page:     2,
		PageSize: 2,
	})
	suite.Require().NoError(err)
	suite.Require().Len(jobs, 1)
	suite.Equal("D", jobs[0].Title)
}

func (suite *GormStoreTestSuite) TestJobs_DeleteCascadesApplications() {
	employer := suite.createUser("acme", models.RoleEmployer)
	worker := suite.createUser("wendy", models.RoleWorker)
	doomed := suite.createJob(employer.ID, "Doomed", models.JobStatusOpen)
	kept := suite.createJob(employer.ID, "Kept", models.JobStatusOpen)

	now := time.Now()
	suite.apply(doomed.ID, worker.ID, now)
	survivor := suite.apply(kept.ID, worker.ID, now.Add(time.Second))

	suite.Require().NoError(suite.store.Jobs.Delete(doomed.ID))

	_, err := suite.store.Jobs.FindByID(doomed.ID)
	suite.ErrorIs(err, ErrNotFound)

	apps, err := suite.store.Applications.ListByWorker(worker.ID)
	suite.Require().NoError(err)
	suite.Require().Len(apps, 1)
	suite.Equal(survivor.ID, apps[0].ID)

	suite.ErrorIs(suite.store.Jobs.Delete(doomed.ID), ErrNotFound)
}

func (suite *GormStoreTestSuite) TestApplications_DuplicatePair() {
	employer := suite.createUser("acme", models.RoleEmployer)
	worker := suite.createUser("wendy", models.RoleWorker)
	job := suite.createJob(employer.ID, "Painter", models.JobStatusOpen)

	suite.apply(job.ID, worker.ID, time.Now())

	err := suite.store.Applications.Create(&models.Application{
		JobID:     job.ID,
		WorkerID:  worker.ID,
		Status:    models.ApplicationStatusPending,
		AppliedAt: time.Now(),
	})
	suite.ErrorIs(err, ErrDuplicate)
}

func (suite *GormStoreTestSuite) TestApplications_ListByEmployer() {
	acme := suite.createUser("acme", models.RoleEmployer)
	rival := suite.createUser("rival", models.RoleEmployer)
	w1 := suite.createUser("w1", models.RoleWorker)
	w2 := suite.createUser("w2", models.RoleWorker)
	mine := suite.createJob(acme.ID, "Mine", models.JobStatusOpen)
	theirs := suite.createJob(rival.ID, "Theirs", models.JobStatusOpen)

	base := time.Now()
	older := suite.apply(mine.ID, w1.ID, base)
	suite.apply(theirs.ID, w1.ID, base.Add(time.Second))
	newer := suite.apply(mine.ID, w2.ID, base.Add(2*time.Second))

	apps, err := suite.store.Applications.ListByEmployer(acme.ID)
	suite.Require().NoError(err)
	suite.Require().Len(apps, 2)
	suite.Equal(newer.ID, apps[0].ID)
	suite.Equal(older.ID, apps[1].ID)
}

func (suite *GormStoreTestSuite) TestRatings_CreateAndRecompute() {
	rated := suite.createUser("rated", models.RoleWorker)
	r1 := suite.createUser("r1", models.RoleEmployer)
	r2 := suite.createUser("r2", models.RoleEmployer)
	r3 := suite.createUser("r3", models.RoleEmployer)

	avg, err := suite.store.Ratings.CreateAndRecompute(&models.Rating{FromUserID: r1.ID, ToUserID: rated.ID, Value: 5})
	suite.Require().NoError(err)
	suite.Equal(5.0, avg)

	avg, err = suite.store.Ratings.CreateAndRecompute(&models.Rating{FromUserID: r2.ID, ToUserID: rated.ID, Value: 4})
	suite.Require().NoError(err)
	suite.Equal(4.5, avg)

	avg, err = suite.store.Ratings.CreateAndRecompute(&models.Rating{FromUserID: r3.ID, ToUserID: rated.ID, Value: 4})
	suite.Require().NoError(err)
	suite.Equal(4.3, avg)

	user, err := suite.store.Users.FindByID(rated.ID)
	suite.Require().NoError(err)
	suite.Equal(4.3, user.Rating)

	ratings, err := suite.store.Ratings.ListByRecipient(rated.ID)
	suite.Require().NoError(err)
	suite.Len(ratings, 3)
}

func (suite *GormStoreTestSuite) TestRatings_ExistsIsJobScoped() {
	a := suite.createUser("a", models.RoleEmployer)
	b := suite.createUser("b", models.RoleWorker)
	jobID := uint64(7)

	_, err := suite.store.Ratings.CreateAndRecompute(&models.Rating{FromUserID: a.ID, ToUserID: b.ID, Value: 3})
	suite.Require().NoError(err)

	exists, err := suite.store.Ratings.Exists(a.ID, b.ID, jobID)
	suite.Require().NoError(err)
	suite.False(exists)

	_, err = suite.store.Ratings.CreateAndRecompute(&models.Rating{FromUserID: a.ID, ToUserID: b.ID, JobID: &jobID, Value: 4})
	suite.Require().NoError(err)

	exists, err = suite.store.Ratings.Exists(a.ID, b.ID, jobID)
	suite.Require().NoError(err)
	suite.True(exists)

	exists, err = suite.store.Ratings.Exists(b.ID, a.ID, jobID)
	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *GormStoreTestSuite) TestRatings_JobScopedPairIsUnique() {
	a := suite.createUser("a", models.RoleEmployer)
	b := suite.createUser("b", models.RoleWorker)
	jobID := uint64(7)

	_, err := suite.store.Ratings.CreateAndRecompute(&models.Rating{FromUserID: a.ID, ToUserID: b.ID, JobID: &jobID, Value: 5})
	suite.Require().NoError(err)

	_, err = suite.store.Ratings.CreateAndRecompute(&models.Rating{FromUserID: a.ID, ToUserID: b.ID, JobID: &jobID, Value: 1})
	suite.ErrorIs(err, ErrDuplicate)

	// unscoped ratings carry a NULL job_id and may repeat
	for i := 0; i < 2; i++ {
		_, err = suite.store.Ratings.CreateAndRecompute(&models.Rating{FromUserID: a.ID, ToUserID: b.ID, Value: 3})
		suite.Require().NoError(err)
	}

	user, err := suite.store.Users.FindByID(b.ID)
	suite.Require().NoError(err)
	suite.Equal(3.7, user.Rating)

	ratings, err := suite.store.Ratings.ListByRecipient(b.ID)
	suite.Require().NoError(err)
	suite.Len(ratings, 3)
}

func (suite *GormStoreTestSuite) TestMessages_Ordering() {
	a := suite.createUser("a", models.RoleWorker)
	b := suite.createUser("b", models.RoleEmployer)
	c := suite.createUser("c", models.RoleEmployer)

	send := func(from, to uint64, content string) uint64 {
		msg := &models.Message{FromUserID: from, ToUserID: to, Content: content}
		suite.Require().NoError(suite.store.Messages.Create(msg))
		return msg.ID
	}
	m1 := send(a.ID, b.ID, "hello")
	m2 := send(b.ID, a.ID, "hi")
	m3 := send(a.ID, c.ID, "elsewhere")

	convo, err := suite.store.Messages.ListConversation(b.ID, a.ID)
	suite.Require().NoError(err)
	suite.Require().Len(convo, 2)
	suite.Equal(m1, convo[0].ID)
	suite.Equal(m2, convo[1].ID)

	all, err := suite.store.Messages.ListByUser(a.ID)
	suite.Require().NoError(err)
	suite.Require().Len(all, 3)
	suite.Equal(m3, all[0].ID)
	suite.Equal(m1, all[2].ID)

	suite.Require().NoError(suite.store.Messages.MarkRead(m1))
	suite.Require().NoError(suite.store.Messages.MarkRead(m1))
	read, err := suite.store.Messages.FindByID(m1)
	suite.Require().NoError(err)
	suite.True(read.IsRead)

	suite.ErrorIs(suite.store.Messages.MarkRead(9999), ErrNotFound)
}

func (suite *GormStoreTestSuite) TestNotifications_UnreadCount() {
	user := suite.createUser("a", models.RoleWorker)

	first := &models.Notification{UserID: user.ID, Type: models.NotificationTypeMessage, Content: "one"}
	suite.Require().NoError(suite.store.Notifications.Create(first))
	suite.Require().NoError(suite.store.Notifications.Create(&models.Notification{UserID: user.ID, Type: models.NotificationTypeMessage, Content: "two"}))

	count, err := suite.store.Notifications.CountUnread(user.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)

	suite.Require().NoError(suite.store.Notifications.MarkRead(first.ID))
	count, err = suite.store.Notifications.CountUnread(user.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)

	list, err := suite.store.Notifications.ListByUser(user.ID)
	suite.Require().NoError(err)
	suite.Require().Len(list, 2)
	suite.Equal("two", list[0].Content)
}

func (suite *GormStoreTestSuite) TestProfiles_EmployerLookup() {
	acme := suite.createUser("acme", models.RoleEmployer)
	suite.Require().NoError(suite.store.Profiles.CreateEmployerProfile(&models.EmployerProfile{UserID: acme.ID, CompanyName: "Acme"}))

	profiles, err := suite.store.Profiles.FindEmployerProfiles([]uint64{acme.ID, 404})
	suite.Require().NoError(err)
	suite.Len(profiles, 1)
	suite.Equal("Acme", profiles[acme.ID].CompanyName)

	_, err = suite.store.Profiles.FindWorkerProfile(acme.ID)
	suite.ErrorIs(err, ErrNotFound)
}

func TestGormStoreTestSuite(t *testing.T) {
	suite.Run(t, new(GormStoreTestSuite))
}

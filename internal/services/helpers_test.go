package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workmatch-api/internal/models"
	"github.com/yukikurage/workmatch-api/internal/repository"
	"github.com/yukikurage/workmatch-api/internal/repository/memory"
)

func newStore(t *testing.T) *repository.Store {
	t.Helper()
	return memory.NewStore()
}

func seedUser(t *testing.T, store *repository.Store, username string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	require.NoError(t, store.Users.Create(user))
	return user
}

func seedJob(t *testing.T, store *repository.Store, employerID uint64, title string, status models.JobStatus, skills ...string) *models.Job {
	t.Helper()
	job := &models.Job{
		EmployerID:     employerID,
		Title:          title,
		RequiredSkills: skills,
		Status:         status,
	}
	require.NoError(t, store.Jobs.Create(job))
	return job
}

func seedWorkerProfile(t *testing.T, store *repository.Store, userID uint64, skills ...string) {
	t.Helper()
	require.NoError(t, store.Profiles.CreateWorkerProfile(&models.WorkerProfile{UserID: userID, Skills: skills}))
}

func strPtr(s string) *string { return &s }

func statusPtr(s models.ApplicationStatus) *models.ApplicationStatus { return &s }

func jobStatusPtr(s models.JobStatus) *models.JobStatus { return &s }

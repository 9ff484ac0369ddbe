package memory

import (
	"github.com/yukikurage/workmatch-api/internal/models"
	"github.com/yukikurage/workmatch-api/internal/repository"
)

// profileRepo keys both profile tables by owning user id
type profileRepo struct{ db *DB }

func (r *profileRepo) FindWorkerProfile(userID uint64) (*models.WorkerProfile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.workerProfiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = cloneWorkerProfile(p)
	return &p, nil
}

func (r *profileRepo) CreateWorkerProfile(profile *models.WorkerProfile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.workerProfiles[profile.UserID]; ok {
		return repository.ErrDuplicate
	}
	now := r.db.now()
	profile.ID = r.db.next("worker_profiles")
	profile.CreatedAt = now
	profile.UpdatedAt = now
	r.db.workerProfiles[profile.UserID] = cloneWorkerProfile(*profile)
	return nil
}

func (r *profileRepo) UpdateWorkerProfile(profile *models.WorkerProfile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.workerProfiles[profile.UserID]
	if !ok || stored.ID != profile.ID {
		return repository.ErrNotFound
	}
	profile.CreatedAt = stored.CreatedAt
	profile.UpdatedAt = r.db.now()
	r.db.workerProfiles[profile.UserID] = cloneWorkerProfile(*profile)
	return nil
}

func (r *profileRepo) FindEmployerProfile(userID uint64) (*models.EmployerProfile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.employerProfiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *profileRepo) FindEmployerProfiles(userIDs []uint64) (map[uint64]models.EmployerProfile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	found := make(map[uint64]models.EmployerProfile, len(userIDs))
	for _, id := range userIDs {
		if p, ok := r.db.employerProfiles[id]; ok {
			found[id] = p
		}
	}
	return found, nil
}

func (r *profileRepo) CreateEmployerProfile(profile *models.EmployerProfile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.employerProfiles[profile.UserID]; ok {
		return repository.ErrDuplicate
	}
	now := r.db.now()
	profile.ID = r.db.next("employer_profiles")
	profile.CreatedAt = now
	profile.UpdatedAt = now
	r.db.employerProfiles[profile.UserID] = *profile
	return nil
}

func (r *profileRepo) UpdateEmployerProfile(profile *models.EmployerProfile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.employerProfiles[profile.UserID]
	if !ok || stored.ID != profile.ID {
		return repository.ErrNotFound
	}
	profile.CreatedAt = stored.CreatedAt
	profile.UpdatedAt = r.db.now()
	r.db.employerProfiles[profile.UserID] = *profile
	return nil
}

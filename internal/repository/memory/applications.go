package memory

import (
	"sort"

	"github.com/yukikurage/workmatch-api/internal/models"
	"github.com/yukikurage/workmatch-api/internal/repository"
)

type applicationRepo struct{ db *DB }

func (r *applicationRepo) Create(app *models.Application) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, a := range r.db.applications {
		if a.JobID == app.JobID && a.WorkerID == app.WorkerID {
			return repository.ErrDuplicate
		}
	}

	now := r.db.now()
	app.ID = r.db.next("applications")
	if app.AppliedAt.IsZero() {
		app.AppliedAt = now
	}
	app.UpdatedAt = app.AppliedAt
	r.db.applications[app.ID] = *app
	return nil
}

func (r *applicationRepo) FindByID(id uint64) (*models.Application, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	a, ok := r.db.applications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *applicationRepo) FindByJobAndWorker(jobID, workerID uint64) (*models.Application, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, a := range r.db.applications {
		if a.JobID == jobID && a.WorkerID == workerID {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *applicationRepo) ListByWorker(workerID uint64) ([]models.Application, error) {
	return r.filter(func(a models.Application) bool { return a.WorkerID == workerID }), nil
}

func (r *applicationRepo) ListByJob(jobID uint64) ([]models.Application, error) {
	return r.filter(func(a models.Application) bool { return a.JobID == jobID }), nil
}

func (r *applicationRepo) ListByEmployer(employerID uint64) ([]models.Application, error) {
	r.db.mu.RLock()
	owned := make(map[uint64]bool)
	for id, j := range r.db.jobs {
		if j.EmployerID == employerID {
			owned[id] = true
		}
	}
	r.db.mu.RUnlock()

	return r.filter(func(a models.Application) bool { return owned[a.JobID] }), nil
}

func (r *applicationRepo) Update(app *models.Application) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.applications[app.ID]; !ok {
		return repository.ErrNotFound
	}
	r.db.applications[app.ID] = *app
	return nil
}

// filter returns matching applications, newest first
func (r *applicationRepo) filter(keep func(models.Application) bool) []models.Application {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	apps := []models.Application{}
	for _, a := range r.db.applications {
		if keep(a) {
			apps = append(apps, a)
		}
	}
	sort.Slice(apps, func(i, j int) bool {
		return newestFirst(apps[i].AppliedAt, apps[j].AppliedAt, apps[i].ID, apps[j].ID)
	})
	return apps
}

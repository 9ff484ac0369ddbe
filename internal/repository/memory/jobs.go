package memory

import (
	"sort"

	"github.com/yukikurage/workmatch-api/internal/models"
	"github.com/yukikurage/workmatch-api/internal/repository"
)

type jobRepo struct{ db *DB }

func (r *jobRepo) Create(job *models.Job) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	now := r.db.now()
	job.ID = r.db.next("jobs")
	if job.Status == "" {
		job.Status = models.JobStatusOpen
	}
	job.CreatedAt = now
	job.UpdatedAt = now
	r.db.jobs[job.ID] = cloneJob(*job)
	return nil
}

func (r *jobRepo) FindByID(id uint64) (*models.Job, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	j, ok := r.db.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	j = cloneJob(j)
	return &j, nil
}

func (r *jobRepo) FindByIDs(ids []uint64) (map[uint64]models.Job, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	found := make(map[uint64]models.Job, len(ids))
	for _, id := range ids {
		if j, ok := r.db.jobs[id]; ok {
			found[id] = cloneJob(j)
		}
	}
	return found, nil
}

func (r *jobRepo) List(filter repository.JobFilter) ([]models.Job, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	wanted := make(map[models.JobStatus]bool, len(filter.Statuses))
	for _, s := range filter.Statuses {
		wanted[s] = true
	}

	matched := []models.Job{}
	for _, id := range sortedIDs(r.db.jobs) {
		j := r.db.jobs[id]
		if len(wanted) > 0 && !wanted[j.Status] {
			continue
		}
		matched = append(matched, cloneJob(j))
	}

	total := int64(len(matched))
	if filter.Page > 0 && filter.PageSize > 0 {
		start := (filter.Page - 1) * filter.PageSize
		if start >= len(matched) {
			return []models.Job{}, total, nil
		}
		end := start + filter.PageSize
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (r *jobRepo) ListByEmployer(employerID uint64) ([]models.Job, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	jobs := []models.Job{}
	for _, j := range r.db.jobs {
		if j.EmployerID == employerID {
			jobs = append(jobs, cloneJob(j))
		}
	}
	sort.Slice(jobs, func(i, k int) bool {
		return newestFirst(jobs[i].CreatedAt, jobs[k].CreatedAt, jobs[i].ID, jobs[k].ID)
	})
	return jobs, nil
}

func (r *jobRepo) Update(job *models.Job) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.jobs[job.ID]
	if !ok {
		return repository.ErrNotFound
	}
	job.CreatedAt = stored.CreatedAt
	job.UpdatedAt = r.db.now()
	r.db.jobs[job.ID] = cloneJob(*job)
	return nil
}

// Delete removes the job and its applications under one write lock
func (r *jobRepo) Delete(id uint64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.jobs[id]; !ok {
		return repository.ErrNotFound
	}
	for appID, app := range r.db.applications {
		if app.JobID == id {
			delete(r.db.applications, appID)
		}
	}
	delete(r.db.jobs, id)
	return nil
}

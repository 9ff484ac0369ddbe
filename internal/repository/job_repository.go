package repository

import (
	"github.com/yukikurage/workmatch-api/internal/models"
	"gorm.io/gorm"
)

// GormJobRepository is a GORM implementation of JobRepository
type GormJobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &GormJobRepository{db: db}
}

// Create creates a new job
func (r *GormJobRepository) Create(job *models.Job) error {
	return translate(r.db.Create(job).Error)
}

// FindByID finds a job by ID
func (r *GormJobRepository) FindByID(id uint64) (*models.Job, error) {
	var job models.Job
	if err := r.db.First(&job, id).Error; err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

// FindByIDs returns the jobs that exist among ids, keyed by ID
func (r *GormJobRepository) FindByIDs(ids []uint64) (map[uint64]models.Job, error) {
	found := make(map[uint64]models.Job, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var jobs []models.Job
	if err := r.db.Where("id IN ?", ids).Find(&jobs).Error; err != nil {
		return nil, err
	}
	for _, j := range jobs {
		found[j.ID] = j
	}
	return found, nil
}

// List retrieves jobs with filtering and pagination
func (r *GormJobRepository) List(filter JobFilter) ([]models.Job, int64, error) {
	var jobs []models.Job

	query := r.db.Model(&models.Job{})
	if len(filter.Statuses) > 0 {
		query = query.Where("jobs.status IN ?", filter.Statuses)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("jobs.id ASC").Scopes(paginate(filter.Page, filter.PageSize))
	if err := listQuery.Find(&jobs).Error; err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// ListByEmployer lists jobs owned by an employer, newest first
func (r *GormJobRepository) ListByEmployer(employerID uint64) ([]models.Job, error) {
	var jobs []models.Job
	if err := r.db.Where("employer_id = ?", employerID).Order("created_at DESC, id DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Update updates a job
func (r *GormJobRepository) Update(job *models.Job) error {
	return translate(r.db.Save(job).Error)
}

// Delete deletes a job and its applications in a transaction
func (r *GormJobRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Job{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

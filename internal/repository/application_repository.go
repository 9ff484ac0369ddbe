package repository

import (
	"github.com/yukikurage/workmatch-api/internal/models"
	"gorm.io/gorm"
)

// GormApplicationRepository is a GORM implementation of ApplicationRepository
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// Create creates a new application
func (r *GormApplicationRepository) Create(app *models.Application) error {
	return translate(r.db.Create(app).Error)
}

// FindByID finds an application by ID
func (r *GormApplicationRepository) FindByID(id uint64) (*models.Application, error) {
	var app models.Application
	if err := r.db.First(&app, id).Error; err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

// FindByJobAndWorker finds the application a worker submitted for a job
func (r *GormApplicationRepository) FindByJobAndWorker(jobID, workerID uint64) (*models.Application, error) {
	var app models.Application
	if err := r.db.Where("job_id = ? AND worker_id = ?", jobID, workerID).First(&app).Error; err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

// ListByWorker lists a worker's applications, newest first
func (r *GormApplicationRepository) ListByWorker(workerID uint64) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Where("worker_id = ?", workerID).Order("applied_at DESC, id DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// ListByJob lists applications for a job, newest first
func (r *GormApplicationRepository) ListByJob(jobID uint64) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Where("job_id = ?", jobID).Order("applied_at DESC, id DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// ListByEmployer lists applications on every job owned by employerID, newest first
func (r *GormApplicationRepository) ListByEmployer(employerID uint64) ([]models.Application, error) {
	var apps []models.Application

	ownedJobs := r.db.Model(&models.Job{}).Select("id").Where("employer_id = ?", employerID)
	err := r.db.Where("job_id IN (?)", ownedJobs).
		Order("applied_at DESC, id DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// Update updates an application
func (r *GormApplicationRepository) Update(app *models.Application) error {
	return translate(r.db.Save(app).Error)
}

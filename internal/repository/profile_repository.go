package repository

import (
	"github.com/yukikurage/workmatch-api/internal/models"
	"gorm.io/gorm"
)

// GormProfileRepository is a GORM implementation of ProfileRepository
type GormProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindWorkerProfile finds the worker profile owned by userID
func (r *GormProfileRepository) FindWorkerProfile(userID uint64) (*models.WorkerProfile, error) {
	var profile models.WorkerProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

// CreateWorkerProfile creates a worker profile
func (r *GormProfileRepository) CreateWorkerProfile(profile *models.WorkerProfile) error {
	return translate(r.db.Create(profile).Error)
}

// UpdateWorkerProfile updates a worker profile
func (r *GormProfileRepository) UpdateWorkerProfile(profile *models.WorkerProfile) error {
	return translate(r.db.Save(profile).Error)
}

// FindEmployerProfile finds the employer profile owned by userID
func (r *GormProfileRepository) FindEmployerProfile(userID uint64) (*models.EmployerProfile, error) {
	var profile models.EmployerProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

// FindEmployerProfiles returns the employer profiles that exist for userIDs, keyed by user ID
func (r *GormProfileRepository) FindEmployerProfiles(userIDs []uint64) (map[uint64]models.EmployerProfile, error) {
	found := make(map[uint64]models.EmployerProfile, len(userIDs))
	if len(userIDs) == 0 {
		return found, nil
	}

	var profiles []models.EmployerProfile
	if err := r.db.Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, p := range profiles {
		found[p.UserID] = p
	}
	return found, nil
}

// CreateEmployerProfile creates an employer profile
func (r *GormProfileRepository) CreateEmployerProfile(profile *models.EmployerProfile) error {
	return translate(r.db.Create(profile).Error)
}

// UpdateEmployerProfile updates an employer profile
func (r *GormProfileRepository) UpdateEmployerProfile(profile *models.EmployerProfile) error {
	return translate(r.db.Save(profile).Error)
}

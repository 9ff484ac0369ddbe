package repository

import (
	"fmt"
	"math"

	"github.com/yukikurage/workmatch-api/internal/models"
	"gorm.io/gorm"
)

// GormRatingRepository is a GORM implementation of RatingRepository
type GormRatingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new RatingRepository
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &GormRatingRepository{db: db}
}

// RoundRating rounds an average to one decimal place
func RoundRating(mean float64) float64 {
	return math.Round(mean*10) / 10
}

// CreateAndRecompute inserts the rating and rewrites the recipient's average in one transaction
func (r *GormRatingRepository) CreateAndRecompute(rating *models.Rating) (float64, error) {
	var average float64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rating).Error; err != nil {
			return translate(err)
		}

		var mean struct {
			Avg   float64
			Count int64
		}
		err := tx.Model(&models.Rating{}).
			Select("COALESCE(AVG(value), 0) AS avg, COUNT(*) AS count").
			Where("to_user_id = ?", rating.ToUserID).
			Scan(&mean).Error
		if err != nil {
			return fmt.Errorf("compute average: %w", err)
		}

		average = RoundRating(mean.Avg)
		if err := tx.Model(&models.User{}).Where("id = ?", rating.ToUserID).Update("rating", average).Error; err != nil {
			return fmt.Errorf("update user rating: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return average, nil
}

// Exists reports whether from already rated to for the given job
func (r *GormRatingRepository) Exists(fromUserID, toUserID, jobID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Rating{}).
		Where("from_user_id = ? AND to_user_id = ? AND job_id = ?", fromUserID, toUserID, jobID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByRecipient lists ratings addressed to a user, newest first
func (r *GormRatingRepository) ListByRecipient(toUserID uint64) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.Where("to_user_id = ?", toUserID).Order("created_at DESC, id DESC").Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

package dto

import (
	"time"

	"github.com/yukikurage/workmatch-api/internal/models"
)

// RatingDTO represents a rating in API responses
type RatingDTO struct {
	ID         uint64    `json:"id"`
	FromUserID uint64    `json:"from_user_id"`
	ToUserID   uint64    `json:"to_user_id"`
	JobID      *uint64   `json:"job_id,omitempty"`
	Rating     int       `json:"rating"`
	Review     string    `json:"review,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RatingCreatedResponse is returned after a rating is stored
type RatingCreatedResponse struct {
	Rating        RatingDTO `json:"rating"`
	AverageRating float64   `json:"average_rating"`
}

// ToRatingDTO converts a rating to DTO
func ToRatingDTO(r models.Rating) RatingDTO {
	return RatingDTO{
		ID:         r.ID,
		FromUserID: r.FromUserID,
		ToUserID:   r.ToUserID,
		JobID:      r.JobID,
		Rating:     r.Value,
		Review:     r.Review,
		CreatedAt:  r.CreatedAt,
	}
}

// ToRatingDTOs converts a slice of ratings
func ToRatingDTOs(ratings []models.Rating) []RatingDTO {
	out := make([]RatingDTO, len(ratings))
	for i, r := range ratings {
		out[i] = ToRatingDTO(r)
	}
	return out
}

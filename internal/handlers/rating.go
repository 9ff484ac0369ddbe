package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workmatch-api/internal/dto"
	apierrors "github.com/yukikurage/workmatch-api/internal/errors"
	"github.com/yukikurage/workmatch-api/internal/services"
)

// RatingHandler serves ratings between users
type RatingHandler struct {
	ratingService *services.RatingService
}

// NewRatingHandler creates a new RatingHandler
func NewRatingHandler(ratingService *services.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// SubmitRating rates another user, optionally for a completed job
func (h *RatingHandler) SubmitRating(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	type RatingRequest struct {
		ToUserID uint64  `json:"to_user_id" binding:"required"`
		JobID    *uint64 `json:"job_id"`
		Rating   int     `json:"rating"`
		Review   string  `json:"review"`
	}

	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	rating, average, err := h.ratingService.SubmitRating(services.SubmitRatingInput{
		FromUserID: userID,
		ToUserID:   req.ToUserID,
		JobID:      req.JobID,
		Value:      req.Rating,
		Review:     req.Review,
	})
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RatingCreatedResponse{
		Rating:        dto.ToRatingDTO(*rating),
		AverageRating: average,
	})
}

// ListUserRatings returns the ratings a user received
func (h *RatingHandler) ListUserRatings(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "user ID")
	if !ok {
		return
	}

	ratings, err := h.ratingService.ListUserRatings(userID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ratings": dto.ToRatingDTOs(ratings)})
}

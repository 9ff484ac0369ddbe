package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workmatch-api/internal/dto"
	apierrors "github.com/yukikurage/workmatch-api/internal/errors"
	"github.com/yukikurage/workmatch-api/internal/services"
)

// ProfileHandler serves the caller's worker or employer profile
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetWorkerProfile returns the caller's worker profile
func (h *ProfileHandler) GetWorkerProfile(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetWorkerProfile(userID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkerProfileDTO(*profile))
}

// PutWorkerProfile creates or replaces the caller's worker profile
func (h *ProfileHandler) PutWorkerProfile(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.WorkerProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.profileService.UpsertWorkerProfile(userID, req)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkerProfileDTO(*profile))
}

// GetEmployerProfile returns the caller's employer profile
func (h *ProfileHandler) GetEmployerProfile(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetEmployerProfile(userID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployerProfileDTO(*profile))
}

// PutEmployerProfile creates or replaces the caller's employer profile
func (h *ProfileHandler) PutEmployerProfile(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.EmployerProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.profileService.UpsertEmployerProfile(userID, req)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployerProfileDTO(*profile))
}

package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workmatch-api/internal/dto"
	apierrors "github.com/yukikurage/workmatch-api/internal/errors"
	"github.com/yukikurage/workmatch-api/internal/services"
)

// ApplicationHandler serves job applications
type ApplicationHandler struct {
	appService *services.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(appService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

// ListApplications returns the caller's applications, shaped by role
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}

	apps, err := h.appService.ListMyApplications(userID, role)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": dto.ToApplicationListItems(apps, role)})
}

// SubmitApplication applies the calling worker to a job
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	type SubmitRequest struct {
		JobID       uint64 `json:"job_id" binding:"required"`
		CoverLetter string `json:"cover_letter"`
		ResumeURL   string `json:"resume_url"`
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	app, err := h.appService.SubmitApplication(userID, req.JobID, services.ApplicationPayload{
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
	})
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToApplicationDTO(*app))
}

// UpdateApplication patches an application
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}
	appID, ok := parseIDParam(c, "id", "application ID")
	if !ok {
		return
	}

	patch, err := decodeApplicationPatch(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	app, err := h.appService.UpdateApplication(userID, role, appID, patch)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToApplicationDTO(*app))
}

// decodeApplicationPatch reads the body into a patch and records which keys were sent, known or not
func decodeApplicationPatch(c *gin.Context) (services.ApplicationPatch, error) {
	var patch services.ApplicationPatch

	body, err := c.GetRawData()
	if err != nil {
		return patch, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return patch, err
	}
	if err := json.Unmarshal(body, &patch); err != nil {
		return patch, err
	}

	for key := range raw {
		switch key {
		case services.FieldStatus, services.FieldCoverLetter, services.FieldResumeURL:
			patch.Present = append(patch.Present, key)
		default:
			patch.Unknown = append(patch.Unknown, key)
		}
	}
	sort.Strings(patch.Present)
	sort.Strings(patch.Unknown)
	return patch, nil
}

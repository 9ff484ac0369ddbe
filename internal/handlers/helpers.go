package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/workmatch-api/internal/errors"
	"github.com/yukikurage/workmatch-api/internal/middleware"
	"github.com/yukikurage/workmatch-api/internal/models"
)

// currentUser returns the session user, responding 401 when there is none
func currentUser(c *gin.Context) (uint64, models.UserRole, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, "", false
	}
	role, _ := middleware.GetUserRole(c)
	return userID, role, true
}

// parseIDParam reads a positive numeric path parameter, responding 400 when it is malformed
func parseIDParam(c *gin.Context, name, label string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+label)
		return 0, false
	}
	return id, true
}

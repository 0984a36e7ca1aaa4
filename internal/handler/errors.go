package handler

import (
	"errors"
	"log"
	"net/http"

	"supportdesk/internal/model"
	"supportdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// abortWithServiceError maps service sentinel errors onto the HTTP
// taxonomy: validation 400, bad credentials or stale session 401,
// forbidden 403, missing resources 404, duplicate email 409.
// Anything unclassified is logged and returned as a generic 500.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Invalid credentials", ""))
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Invalid token", ""))
	case errors.Is(err, service.ErrAdminCapReached), errors.Is(err, service.ErrNotEndUser):
		c.JSON(http.StatusForbidden, model.NewErrorResponse(err.Error(), ""))
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, model.NewErrorResponse("User already exists", ""))
	case errors.Is(err, service.ErrStaffNotFound), errors.Is(err, service.ErrMemberNotFound):
		c.JSON(http.StatusNotFound, model.NewErrorResponse(err.Error(), ""))
	case errors.Is(err, service.ErrOrgNotFound):
		// Callers that treat a missing org as 404 handle it before
		// reaching here; on write paths it means bad input.
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Organization not found", ""))
	default:
		log.Printf("[http] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Server error", ""))
	}
}

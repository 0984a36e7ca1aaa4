package handler

import (
	"net/http"

	"supportdesk/internal/middleware"
	"supportdesk/internal/model"

	"github.com/gin-gonic/gin"
)

// StaffHandler handles the staff surface.
type StaffHandler struct{}

func NewStaffHandler() *StaffHandler {
	return &StaffHandler{}
}

// Dashboard handles GET /api/staff/dashboard.
func (h *StaffHandler) Dashboard(c *gin.Context) {
	claims, _ := middleware.GetClaims(c)
	c.JSON(http.StatusOK, model.NewSuccessResponse("Welcome to staff dashboard", gin.H{
		"email": claims.Email,
		"role":  claims.Role,
		"orgId": claims.OrgID,
	}))
}

package handler

import (
	"net/http"

	"supportdesk/internal/middleware"
	"supportdesk/internal/model"
	"supportdesk/internal/service"
	"supportdesk/pkg/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrgAdminHandler handles the organization-admin surface. Every
// operation is scoped to the orgId embedded in the caller's token.
type OrgAdminHandler struct {
	members *service.MemberService
}

func NewOrgAdminHandler(members *service.MemberService) *OrgAdminHandler {
	return &OrgAdminHandler{members: members}
}

// callerOrg extracts the org scope from the authenticated claims.
// Org admins without an org claim cannot operate.
func callerOrg(c *gin.Context) (primitive.ObjectID, bool) {
	claims, ok := middleware.GetClaims(c)
	if !ok || claims.OrgID == "" {
		c.JSON(http.StatusForbidden, model.NewErrorResponse("No organization scope on token", ""))
		return primitive.NilObjectID, false
	}
	orgID, err := util.ParseObjectID(claims.OrgID)
	if err != nil {
		c.JSON(http.StatusForbidden, model.NewErrorResponse("No organization scope on token", ""))
		return primitive.NilObjectID, false
	}
	return orgID, true
}

// Dashboard handles GET /api/org-admin/dashboard.
func (h *OrgAdminHandler) Dashboard(c *gin.Context) {
	claims, _ := middleware.GetClaims(c)
	c.JSON(http.StatusOK, model.NewSuccessResponse("Welcome to organization admin dashboard", gin.H{
		"email": claims.Email,
		"role":  claims.Role,
		"orgId": claims.OrgID,
	}))
}

// ListUsers handles GET /api/org-admin/users.
func (h *OrgAdminHandler) ListUsers(c *gin.Context) {
	orgID, ok := callerOrg(c)
	if !ok {
		return
	}
	users, err := h.members.ListOrgUsers(c.Request.Context(), orgID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	out := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Users", gin.H{"users": out}))
}

// RemoveUser handles DELETE /api/org-admin/users/:id.
func (h *OrgAdminHandler) RemoveUser(c *gin.Context) {
	orgID, ok := callerOrg(c)
	if !ok {
		return
	}
	userID, err := util.ParseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid user id", ""))
		return
	}
	if err := h.members.RemoveOrgUser(c.Request.Context(), orgID, userID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("User removed from organization", nil))
}

// ListStaff handles GET /api/org-admin/staff.
func (h *OrgAdminHandler) ListStaff(c *gin.Context) {
	orgID, ok := callerOrg(c)
	if !ok {
		return
	}
	staff, err := h.members.ListStaff(c.Request.Context(), orgID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Staff", gin.H{"staff": staff}))
}

// CreateStaff handles POST /api/org-admin/staff.
func (h *OrgAdminHandler) CreateStaff(c *gin.Context) {
	orgID, ok := callerOrg(c)
	if !ok {
		return
	}
	var req model.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid request body", err.Error()))
		return
	}
	staff, err := h.members.CreateStaff(c.Request.Context(), orgID, &req)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Staff member created", gin.H{"staff": staff}))
}

// UpdateStaff handles PATCH /api/org-admin/staff/:id.
func (h *OrgAdminHandler) UpdateStaff(c *gin.Context) {
	orgID, ok := callerOrg(c)
	if !ok {
		return
	}
	staffID, err := util.ParseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid staff id", ""))
		return
	}
	var req model.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid request body", err.Error()))
		return
	}
	staff, err := h.members.UpdateStaff(c.Request.Context(), orgID, staffID, &req)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Staff member updated", gin.H{"staff": staff}))
}

// DeleteStaff handles DELETE /api/org-admin/staff/:id.
func (h *OrgAdminHandler) DeleteStaff(c *gin.Context) {
	orgID, ok := callerOrg(c)
	if !ok {
		return
	}
	staffID, err := util.ParseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid staff id", ""))
		return
	}
	if err := h.members.DeleteStaff(c.Request.Context(), orgID, staffID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Staff member deleted", nil))
}

package handler

import (
	"errors"
	"net/http"

	"supportdesk/internal/middleware"
	"supportdesk/internal/model"
	"supportdesk/internal/service"
	"supportdesk/pkg/util"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles the platform-admin organization surface.
type AdminHandler struct {
	orgs *service.OrgService
}

func NewAdminHandler(orgs *service.OrgService) *AdminHandler {
	return &AdminHandler{orgs: orgs}
}

// Dashboard handles GET /api/admin/dashboard.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	claims, _ := middleware.GetClaims(c)
	c.JSON(http.StatusOK, model.NewSuccessResponse("Welcome to admin dashboard", gin.H{
		"email": claims.Email,
		"role":  claims.Role,
	}))
}

// RegisterOrg handles POST /api/admin/register-org.
func (h *AdminHandler) RegisterOrg(c *gin.Context) {
	var req model.RegisterOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid request body", err.Error()))
		return
	}

	result, err := h.orgs.RegisterOrganization(c.Request.Context(), &req)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.NewSuccessResponse("Organization registered successfully", gin.H{
		"organization": result.Organization,
		"admin":        result.Admin.ToResponse(),
	}))
}

// ListOrgs handles GET /api/admin/organizations.
func (h *AdminHandler) ListOrgs(c *gin.Context) {
	orgs, err := h.orgs.List(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Organizations", gin.H{"organizations": orgs}))
}

// UpdateOrg handles PATCH /api/admin/organizations/:id.
func (h *AdminHandler) UpdateOrg(c *gin.Context) {
	id, err := util.ParseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid organization id", ""))
		return
	}

	var req model.UpdateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid request body", err.Error()))
		return
	}

	org, err := h.orgs.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrOrgNotFound) {
			c.JSON(http.StatusNotFound, model.NewErrorResponse("Organization not found", ""))
			return
		}
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Organization updated successfully", gin.H{"organization": org}))
}

// DeleteOrg handles DELETE /api/admin/organizations/:id.
func (h *AdminHandler) DeleteOrg(c *gin.Context) {
	id, err := util.ParseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid organization id", ""))
		return
	}

	if err := h.orgs.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrOrgNotFound) {
			c.JSON(http.StatusNotFound, model.NewErrorResponse("Organization not found", ""))
			return
		}
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Organization deleted successfully", nil))
}

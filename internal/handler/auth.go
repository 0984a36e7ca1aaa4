package handler

import (
	"net/http"

	"supportdesk/internal/middleware"
	"supportdesk/internal/model"
	"supportdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login, session, and org selection.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid request body", err.Error()))
		return
	}

	result, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	data := gin.H{"user": result.User.ToResponse()}
	if result.Organization != nil {
		data["organization"] = result.Organization
	}
	if result.OrgAdmin != nil {
		data["roleRecord"] = result.OrgAdmin
	}
	if result.Staff != nil {
		data["roleRecord"] = result.Staff
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("User registered successfully", data))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid request body", err.Error()))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Logged in", gin.H{
		"token":         result.Token,
		"expiresAt":     result.ExpiresAt,
		"user":          result.User.ToResponse(),
		"organizations": result.Organizations,
		"redirectPath":  result.RedirectPath,
	}))
}

// Logout handles POST /api/auth/logout. Tokens are stateless; the
// client drops its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, model.NewSuccessResponse("Logged out", nil))
}

// Session handles GET /api/auth/session.
func (h *AuthHandler) Session(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("No token provided", ""))
		return
	}

	result, err := h.auth.Session(c.Request.Context(), claims)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Session", gin.H{
		"user":          result.User.ToResponse(),
		"organizations": result.Organizations,
	}))
}

// SelectOrg handles POST /api/auth/select-org.
func (h *AuthHandler) SelectOrg(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("No token provided", ""))
		return
	}

	var req model.SelectOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrgID == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("orgId is required", ""))
		return
	}

	token, expiresAt, err := h.auth.SelectOrg(c.Request.Context(), claims, req.OrgID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Organization selected", gin.H{
		"token":     token,
		"expiresAt": expiresAt,
	}))
}

// Organizations handles GET /api/auth/organizations: orgs the caller
// has not joined yet, for the picker.
func (h *AuthHandler) Organizations(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("No token provided", ""))
		return
	}

	orgs, err := h.auth.AvailableOrgs(c.Request.Context(), claims)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Organizations", gin.H{"organizations": orgs}))
}

package model

// RegisterRequest is the body of POST /api/auth/register.
// OrgID selects an existing organization; OrgName asks for a new one
// (organization_admin only).
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	OrgID    string `json:"orgId"`
	OrgName  string `json:"orgName"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SelectOrgRequest is the body of POST /api/auth/select-org.
type SelectOrgRequest struct {
	OrgID string `json:"orgId"`
}

// RegisterOrgRequest is the body of POST /api/admin/register-org.
type RegisterOrgRequest struct {
	OrgName       string       `json:"orgName"`
	AdminUsername string       `json:"adminUsername"`
	AdminPassword string       `json:"adminPassword"`
	Services      ServiceFlags `json:"services"`
}

// UpdateOrgRequest is the body of PATCH /api/admin/organizations/:id.
// Nil fields are left unchanged.
type UpdateOrgRequest struct {
	Name       *string       `json:"name"`
	AdminEmail *string       `json:"adminEmail"`
	Services   *ServiceFlags `json:"services"`
}

// CreateStaffRequest is the body of POST /api/org-admin/staff.
type CreateStaffRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateStaffRequest is the body of PATCH /api/org-admin/staff/:id.
type UpdateStaffRequest struct {
	Name *string `json:"name"`
}

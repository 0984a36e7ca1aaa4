package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Platform roles. Role drives route access and the post-login redirect.
const (
	RoleUser      = "user"
	RoleStaff     = "organization_staff"
	RoleOrgAdmin  = "organization_admin"
	RolePlatAdmin = "admin"
)

// ValidRole reports whether role is one of the platform roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleStaff, RoleOrgAdmin, RolePlatAdmin:
		return true
	}
	return false
}

// User is any platform principal. Org-scoped roles (staff, org admin)
// always carry an OrgID; end users never do on the document itself.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // bcrypt hash - never expose
	Role      string             `bson:"role" json:"role"`
	OrgID     primitive.ObjectID `bson:"orgId,omitempty" json:"orgId,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserResponse is the wire representation of a User (hash is omitted).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	OrgID     string    `json:"orgId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToResponse converts User to UserResponse (excludes password hash).
func (u *User) ToResponse() UserResponse {
	resp := UserResponse{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
	if !u.OrgID.IsZero() {
		resp.OrgID = u.OrgID.Hex()
	}
	return resp
}

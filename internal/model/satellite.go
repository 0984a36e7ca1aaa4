package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrgAdmin is the role-scoped projection of an organization_admin user.
// Name/email/org are denormalized from the User record and created in
// lockstep with it.
type OrgAdmin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AdminName string             `bson:"adminName" json:"adminName"`
	Email     string             `bson:"email" json:"email"`
	OrgID     primitive.ObjectID `bson:"orgId" json:"orgId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Staff is the role-scoped projection of an organization_staff user.
type Staff struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	OrgID     primitive.ObjectID `bson:"orgId" json:"orgId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserOrg is a membership edge linking an end user to an organization
// they can access. Unique on (userId, orgId).
type UserOrg struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	OrgID     primitive.ObjectID `bson:"orgId" json:"orgId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceFlags records which AI services are enabled for a tenant.
type ServiceFlags struct {
	AIChat     bool `bson:"aiChat" json:"aiChat"`
	AIVoice    bool `bson:"aiVoice" json:"aiVoice"`
	AIInsights bool `bson:"aiInsights" json:"aiInsights"`
}

// Organization is a tenant with its own admin contact and service flags.
type Organization struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	AdminName  string             `bson:"adminName" json:"adminName"`
	AdminEmail string             `bson:"adminEmail" json:"adminEmail"`
	Services   ServiceFlags       `bson:"services" json:"services"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

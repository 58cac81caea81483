package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SuperAdminRoleName is the sentinel role that bypasses permission checks
// and cannot be renamed or deleted.
const SuperAdminRoleName = "Super Admin"

// Role groups a set of permissions. Permission maps page or resource
// identifiers to the actions a holder may perform on them, e.g.
// {"blogs": ["create", "edit"]}.
type Role struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string              `bson:"name" json:"name"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Permission  map[string][]string `bson:"permission" json:"permission"`
	Status      string              `bson:"status" json:"status"`
	CreatedAt   time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updatedAt"`
}

// IsSuperAdmin reports whether this is the sentinel administrator role.
func (r *Role) IsSuperAdmin() bool { return r.Name == SuperAdminRoleName }

// Allows reports whether the role grants action on resource. The Super Admin
// role allows everything.
func (r *Role) Allows(resource, action string) bool {
	if r.IsSuperAdmin() {
		return true
	}
	for _, a := range r.Permission[resource] {
		if a == action {
			return true
		}
	}
	return false
}

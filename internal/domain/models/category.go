package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel blog category names. The "Common" category is created at seed time
// and cannot be deleted; blogs whose category is removed are reassigned to it
// and demoted to draft.
const (
	CommonCategoryEN = "Common"
	CommonCategoryVI = "Chung"
)

// Category is a blog category with a bilingual name and a unique URL slug.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        Lang               `bson:"name" json:"name"`
	Description Lang               `bson:"description" json:"description"`
	Slug        string             `bson:"slug" json:"slug"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// IsCommon reports whether this is the protected fallback category. The name
// matches case-insensitively in either locale.
func (c *Category) IsCommon() bool {
	return strings.EqualFold(c.Name.EN, CommonCategoryEN) ||
		strings.EqualFold(c.Name.VI, CommonCategoryVI)
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PageDocument is a keyed singleton page: one document per PageType in the
// page_documents collection. Sections holds the page content keyed by section
// name; a section is either a map or, for record lists like company history,
// a list. The shape of each section is defined by the page's schema in the
// pages feature.
type PageDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PageType  string             `bson:"page_type" json:"pageType"`
	Sections  map[string]any     `bson:"sections" json:"sections"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

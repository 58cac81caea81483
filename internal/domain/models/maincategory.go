package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is a stored image URL plus optional alt text.
type Image struct {
	URL string `bson:"url,omitempty" json:"url,omitempty"`
	Alt string `bson:"alt,omitempty" json:"alt,omitempty"`
}

// MainCategory is a top-level product area (cotton, fiber, machines). Machine
// categories and blogs hang off it.
type MainCategory struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      Lang               `bson:"name" json:"name"`
	Slug      string             `bson:"slug" json:"slug"`
	BgImage   Image              `bson:"bg_image,omitempty" json:"bgImage,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

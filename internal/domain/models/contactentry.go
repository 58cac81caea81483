package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product lines an enquiry can reference.
const (
	ProductCotton    = "cotton"
	ProductViscose   = "viscose"
	ProductMachinery = "machinery"
)

// IsValidProduct checks a contact-form product value.
func IsValidProduct(p string) bool {
	return p == ProductCotton || p == ProductViscose || p == ProductMachinery
}

// ContactEntry is one submission of the public contact form.
type ContactEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Company   string             `bson:"company,omitempty" json:"company,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Product   string             `bson:"product" json:"product"`
	Message   string             `bson:"message" json:"message"`
	FileURL   string             `bson:"file_url,omitempty" json:"fileUrl,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Package contactstore persists public contact-form submissions.
package contactstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/normalize"
	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
)

// Validation errors surfaced to the public form with 400.
var (
	ErrNameTooShort    = errors.New("Name must be at least 2 characters")
	ErrInvalidEmail    = errors.New("Invalid email format")
	ErrPhoneRequired   = errors.New("Phone is required")
	ErrInvalidProduct  = errors.New("Product must be cotton, viscose, or machinery")
	ErrMessageTooShort = errors.New("Message must be at least 20 characters")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("contact_entries")}
}

// GetByID loads an entry by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ContactEntry, error) {
	var e models.ContactEntry
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns all entries, newest first.
func (s *Store) List(ctx context.Context) ([]models.ContactEntry, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var entries []models.ContactEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func validate(e models.ContactEntry) error {
	if len(strings.TrimSpace(e.Name)) < 2 {
		return ErrNameTooShort
	}
	at := strings.Index(e.Email, "@")
	dot := strings.LastIndex(e.Email, ".")
	if at < 1 || dot < at+2 || dot >= len(e.Email)-2 {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(e.Phone) == "" {
		return ErrPhoneRequired
	}
	if !models.IsValidProduct(e.Product) {
		return ErrInvalidProduct
	}
	if len(strings.TrimSpace(e.Message)) < 20 {
		return ErrMessageTooShort
	}
	return nil
}

// Create validates and inserts a new entry.
func (s *Store) Create(ctx context.Context, e models.ContactEntry) (models.ContactEntry, error) {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = normalize.Email(e.Email)
	e.Product = strings.ToLower(strings.TrimSpace(e.Product))

	if err := validate(e); err != nil {
		return models.ContactEntry{}, err
	}

	e.ID = primitive.NewObjectID()
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.ContactEntry{}, err
	}
	return e, nil
}

// Delete removes an entry by ID and returns it so the caller can also remove
// the attached file from storage.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (*models.ContactEntry, error) {
	var e models.ContactEntry
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

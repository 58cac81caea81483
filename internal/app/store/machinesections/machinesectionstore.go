// Package machinesectionstore persists reusable machine section templates.
package machinesectionstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("machine_sections")}
}

// GetByID loads a section template by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MachineSection, error) {
	var sec models.MachineSection
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sec); err != nil {
		return nil, err
	}
	return &sec, nil
}

// List returns all section templates in display order.
func (s *Store) List(ctx context.Context) ([]models.MachineSection, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var secs []models.MachineSection
	if err := cur.All(ctx, &secs); err != nil {
		return nil, err
	}
	return secs, nil
}

// Create inserts a new section template.
func (s *Store) Create(ctx context.Context, sec models.MachineSection) (models.MachineSection, error) {
	sec.ID = primitive.NewObjectID()
	now := time.Now()
	sec.CreatedAt = now
	sec.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, sec); err != nil {
		return models.MachineSection{}, err
	}
	return sec, nil
}

// Update replaces a section template's content.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, content models.MachineSectionContent) (*models.MachineSection, error) {
	var updated models.MachineSection
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"type":        content.Type,
			"title":       content.Title,
			"description": content.Description,
			"image":       content.Image,
			"order":       content.Order,
			"is_active":   content.IsActive,
			"richtext":    content.RichText,
			"table":       content.Table,
			"list_items":  content.ListItems,
			"blocks":      content.Blocks,
			"button":      content.Button,
			"tabs":        content.Tabs,
			"updated_at":  time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a section template by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

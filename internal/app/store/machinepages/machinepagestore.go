// Package machinepagestore persists machine detail pages.
package machinepagestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/slugify"
	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
)

// ErrDuplicateSlug is returned on update when the slug is taken.
var ErrDuplicateSlug = errors.New("Slug already in use")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("machine_pages")}
}

// GetByIDOrSlug resolves a 24-hex parameter as an ObjectID and anything else
// as a slug, the way the public site links to machine pages.
func (s *Store) GetByIDOrSlug(ctx context.Context, param string) (*models.MachinePage, error) {
	filter := bson.M{"slug": param}
	if id, err := primitive.ObjectIDFromHex(param); err == nil {
		filter = bson.M{"_id": id}
	}
	var p models.MachinePage
	if err := s.c.FindOne(ctx, filter).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all machine pages, optionally filtered by category.
func (s *Store) List(ctx context.Context, category primitive.ObjectID) ([]models.MachinePage, error) {
	filter := bson.M{}
	if category != primitive.NilObjectID {
		filter["category"] = category
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var pages []models.MachinePage
	if err := cur.All(ctx, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

func (s *Store) slugTaken(ctx context.Context, slug string, exclude primitive.ObjectID) bool {
	filter := bson.M{"slug": slug}
	if exclude != primitive.NilObjectID {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	return s.c.FindOne(ctx, filter).Err() == nil
}

// Create inserts a new machine page, auto-suffixing a taken slug.
func (s *Store) Create(ctx context.Context, p models.MachinePage) (models.MachinePage, error) {
	p.ID = primitive.NewObjectID()

	base := p.Slug
	if base == "" {
		base = slugify.Make(p.Title.EN)
	}
	p.Slug = slugify.WithSuffix(base, func(slug string) bool {
		return s.slugTaken(ctx, slug, primitive.NilObjectID)
	})

	p.IsActive = true
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.MachinePage{}, ErrDuplicateSlug
		}
		return models.MachinePage{}, err
	}
	return p, nil
}

// Replace stores the fully merged page the handler built from the incoming
// payload and the existing document.
func (s *Store) Replace(ctx context.Context, id primitive.ObjectID, p models.MachinePage) (*models.MachinePage, error) {
	if p.Slug != "" && s.slugTaken(ctx, p.Slug, id) {
		return nil, ErrDuplicateSlug
	}

	var updated models.MachinePage
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"category":    p.Category,
			"title":       p.Title,
			"description": p.Description,
			"slug":        p.Slug,
			"sections":    p.Sections,
			"seo":         p.SEO,
			"banner":      p.Banner,
			"is_active":   p.IsActive,
			"updated_at":  time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}
	return &updated, nil
}

// Delete removes a machine page by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

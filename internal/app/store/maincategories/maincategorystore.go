// Package maincategorystore persists the top-level product areas.
package maincategorystore

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
	return &Store{c: db.Collection("main_categories")}
}

// GetByID loads a main category by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MainCategory, error) {
	var mc models.MainCategory
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&mc); err != nil {
		return nil, err
	}
	return &mc, nil
}

// GetBySlug loads a main category by slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*models.MainCategory, error) {
	var mc models.MainCategory
	if err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&mc); err != nil {
		return nil, err
	}
	return &mc, nil
}

// List returns all main categories by name.
func (s *Store) List(ctx context.Context) ([]models.MainCategory, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name.en", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var mcs []models.MainCategory
	if err := cur.All(ctx, &mcs); err != nil {
		return nil, err
	}
	return mcs, nil
}

func (s *Store) slugTaken(ctx context.Context, slug string, exclude primitive.ObjectID) bool {
	filter := bson.M{"slug": slug}
	if exclude != primitive.NilObjectID {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	return s.c.FindOne(ctx, filter).Err() == nil
}

// Create inserts a new main category, auto-suffixing a taken slug.
func (s *Store) Create(ctx context.Context, mc models.MainCategory) (models.MainCategory, error) {
	mc.ID = primitive.NewObjectID()

	base := mc.Slug
	if base == "" {
		base = slugify.Make(mc.Name.EN)
	}
	mc.Slug = slugify.WithSuffix(base, func(slug string) bool {
		return s.slugTaken(ctx, slug, primitive.NilObjectID)
	})

	now := time.Now()
	mc.CreatedAt = now
	mc.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, mc); err != nil {
		if wafflemongo.IsDup(err) {
			return models.MainCategory{}, ErrDuplicateSlug
		}
		return models.MainCategory{}, err
	}
	return mc, nil
}

// Update replaces name, slug, and background image. A conflicting slug is an
// error on update.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mc models.MainCategory) (*models.MainCategory, error) {
	if mc.Slug != "" && s.slugTaken(ctx, mc.Slug, id) {
		return nil, ErrDuplicateSlug
	}

	set := bson.M{"updated_at": time.Now()}
	if mc.Name.EN != "" || mc.Name.VI != "" {
		set["name"] = mc.Name
	}
	if mc.Slug != "" {
		set["slug"] = mc.Slug
	}
	if mc.BgImage.URL != "" || mc.BgImage.Alt != "" {
		set["bg_image"] = mc.BgImage
	}

	var updated models.MainCategory
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
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

// Delete removes a main category by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

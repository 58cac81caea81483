// Package categorystore persists blog categories, including the protected
// "Common" fallback category and the cascade that keeps blogs consistent
// when a category is removed.
package categorystore

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

var (
	// ErrDuplicateName is returned when another category holds the same
	// English or Vietnamese name.
	ErrDuplicateName = errors.New("Another category with this name already exists")
	// ErrDuplicateSlug is returned on update when the slug is taken.
	ErrDuplicateSlug = errors.New("Slug already in use")
	// ErrCommonCategory is returned on attempts to delete the fallback
	// category.
	ErrCommonCategory = errors.New("The Common category cannot be deleted")
)

type Store struct {
	c     *mongo.Collection
	blogs *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("categories"),
		blogs: db.Collection("blogs"),
	}
}

// GetByID loads a category by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var c models.Category
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories, newest first.
func (s *Store) List(ctx context.Context) ([]models.Category, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var cats []models.Category
	if err := cur.All(ctx, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (s *Store) slugTaken(ctx context.Context, slug string, exclude primitive.ObjectID) bool {
	filter := bson.M{"slug": slug}
	if exclude != primitive.NilObjectID {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	return s.c.FindOne(ctx, filter).Err() == nil
}

// Create inserts a new category. An already-taken slug gets a numeric suffix
// (x, x-1, x-2, ...) rather than failing.
func (s *Store) Create(ctx context.Context, c models.Category) (models.Category, error) {
	c.ID = primitive.NewObjectID()

	base := c.Slug
	if base == "" {
		base = slugify.Make(c.Name.EN)
	}
	c.Slug = slugify.WithSuffix(base, func(slug string) bool {
		return s.slugTaken(ctx, slug, primitive.NilObjectID)
	})

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Category{}, ErrDuplicateSlug
		}
		return models.Category{}, err
	}
	return c, nil
}

// Update replaces a category's name, description, and slug. Unlike Create,
// a conflicting name or slug is an error here: silently renaming an edited
// category would surprise the editor.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, c models.Category) (*models.Category, error) {
	if c.Name.EN != "" || c.Name.VI != "" {
		err := s.c.FindOne(ctx, bson.M{
			"_id": bson.M{"$ne": id},
			"$or": []bson.M{
				{"name.en": c.Name.EN},
				{"name.vi": c.Name.VI},
			},
		}).Err()
		if err == nil {
			return nil, ErrDuplicateName
		}
		if err != mongo.ErrNoDocuments {
			return nil, err
		}
	}
	if c.Slug != "" && s.slugTaken(ctx, c.Slug, id) {
		return nil, ErrDuplicateSlug
	}

	set := bson.M{"updated_at": time.Now()}
	if c.Name.EN != "" || c.Name.VI != "" {
		set["name"] = c.Name
	}
	set["description"] = c.Description
	if c.Slug != "" {
		set["slug"] = c.Slug
	}

	var updated models.Category
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

// EnsureCommon finds or creates the "Common"/"Chung" fallback category.
func (s *Store) EnsureCommon(ctx context.Context) (*models.Category, error) {
	var c models.Category
	err := s.c.FindOne(ctx, bson.M{"$or": []bson.M{
		{"name.en": models.CommonCategoryEN},
		{"name.vi": models.CommonCategoryVI},
	}}).Decode(&c)
	if err == nil {
		return &c, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	now := time.Now()
	c = models.Category{
		ID:        primitive.NewObjectID(),
		Name:      models.Lang{EN: models.CommonCategoryEN, VI: models.CommonCategoryVI},
		Slug:      "common",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			// Raced another instance; read theirs.
			if ferr := s.c.FindOne(ctx, bson.M{"name.en": models.CommonCategoryEN}).Decode(&c); ferr == nil {
				return &c, nil
			}
		}
		return nil, err
	}
	return &c, nil
}

// Delete removes a category. The Common category is protected; for any
// other, blogs referencing it are first reassigned to Common and flipped to
// draft so nothing stays published under a dangling category. Returns the
// number of blogs reassigned.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	target, err := s.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if target.IsCommon() {
		return 0, ErrCommonCategory
	}

	common, err := s.EnsureCommon(ctx)
	if err != nil {
		return 0, err
	}

	res, err := s.blogs.UpdateMany(ctx,
		bson.M{"category": id},
		bson.M{"$set": bson.M{
			"category":   common.ID,
			"status":     models.BlogDraft,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return 0, err
	}

	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return res.ModifiedCount, err
	}
	return res.ModifiedCount, nil
}

// Package blogstore persists blog posts.
package blogstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/htmlsanitize"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/slugify"
	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
)

// ErrDuplicateSlug is returned on update when the slug is taken.
var ErrDuplicateSlug = errors.New("Slug already in use")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("blogs")}
}

// Filter narrows List results. Zero values mean "any".
type Filter struct {
	Status       string
	Category     primitive.ObjectID
	MainCategory primitive.ObjectID
	Tag          string
	Author       string
}

// List returns blogs matching filter, newest published first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Blog, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Category != primitive.NilObjectID {
		filter["category"] = f.Category
	}
	if f.MainCategory != primitive.NilObjectID {
		filter["main_category"] = f.MainCategory
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}
	if f.Author != "" {
		filter["author"] = f.Author
	}

	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var blogs []models.Blog
	if err := cur.All(ctx, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// GetBySlug loads a blog by slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var b models.Blog
	if err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByID loads a blog by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	var b models.Blog
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) slugTaken(ctx context.Context, slug string, exclude primitive.ObjectID) bool {
	filter := bson.M{"slug": slug}
	if exclude != primitive.NilObjectID {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	return s.c.FindOne(ctx, filter).Err() == nil
}

// sanitizeBlocks cleans the HTML inside rich-text content blocks before they
// reach storage.
func sanitizeBlocks(blocks []models.BlogBlock) []models.BlogBlock {
	for i, blk := range blocks {
		if blk.Content == nil {
			continue
		}
		blocks[i].Content = htmlsanitize.SanitizeLangMap(blk.Content)
	}
	return blocks
}

// Create inserts a new blog, auto-suffixing a taken slug and stamping
// publishedAt. Drafts keep a publishedAt too so sorting stays stable.
func (s *Store) Create(ctx context.Context, b models.Blog) (models.Blog, error) {
	b.ID = primitive.NewObjectID()

	base := b.Slug
	if base == "" {
		base = slugify.Make(b.Title.EN)
	}
	b.Slug = slugify.WithSuffix(base, func(slug string) bool {
		return s.slugTaken(ctx, slug, primitive.NilObjectID)
	})

	if b.Status == "" {
		b.Status = models.BlogDraft
	}
	b.Blocks = sanitizeBlocks(b.Blocks)

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	if b.PublishedAt == nil {
		b.PublishedAt = &now
	}

	if _, err := s.c.InsertOne(ctx, b); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Blog{}, ErrDuplicateSlug
		}
		return models.Blog{}, err
	}
	return b, nil
}

// Update replaces a blog's editable fields. Moving a draft to published
// stamps publishedAt when it was never published before.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, b models.Blog) (*models.Blog, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Slug != "" && s.slugTaken(ctx, b.Slug, id) {
		return nil, ErrDuplicateSlug
	}

	set := bson.M{"updated_at": time.Now()}
	if b.Title.EN != "" || b.Title.VI != "" {
		set["title"] = b.Title
	}
	if b.Slug != "" {
		set["slug"] = b.Slug
	}
	if !b.Excerpt.IsEmpty() {
		set["excerpt"] = b.Excerpt
	}
	if b.CoverImage.URL != "" || b.CoverImage.Alt != "" {
		set["cover_image"] = b.CoverImage
	}
	if b.Blocks != nil {
		set["blocks"] = sanitizeBlocks(b.Blocks)
	}
	if b.Author != "" {
		set["author"] = b.Author
	}
	if b.Category != primitive.NilObjectID {
		set["category"] = b.Category
	}
	if b.MainCategory != primitive.NilObjectID {
		set["main_category"] = b.MainCategory
	}
	if b.Tags != nil {
		set["tags"] = b.Tags
	}
	if b.SEO != (models.BlogSEO{}) {
		set["seo"] = b.SEO
	}
	if b.Status != "" {
		set["status"] = b.Status
		if b.Status == models.BlogPublished && existing.Status != models.BlogPublished {
			set["published_at"] = time.Now()
		}
	}

	var updated models.Blog
	err = s.c.FindOneAndUpdate(ctx,
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

// Delete removes a blog by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

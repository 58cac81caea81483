package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog status values.
const (
	BlogDraft     = "draft"
	BlogPublished = "published"
)

// BlogBlock is one content block of a blog post. Content is free-form and
// front-end defined; rich-text blocks are sanitized before storage.
type BlogBlock struct {
	Type     string         `bson:"type" json:"type"`
	Content  map[string]any `bson:"content" json:"content"`
	Position int            `bson:"position" json:"position"`
}

// BlogSEO holds bilingual SEO metadata for a post.
type BlogSEO struct {
	Title       Lang `bson:"title,omitempty" json:"title,omitempty"`
	Description Lang `bson:"description,omitempty" json:"description,omitempty"`
	Keywords    Lang `bson:"keywords,omitempty" json:"keywords,omitempty"`
}

// Blog is a published article under a main category and blog category.
type Blog struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title        Lang               `bson:"title" json:"title"`
	Slug         string             `bson:"slug" json:"slug"`
	Excerpt      Lang               `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	CoverImage   Image              `bson:"cover_image,omitempty" json:"coverImage,omitempty"`
	Blocks       []BlogBlock        `bson:"blocks" json:"blocks"`
	Status       string             `bson:"status" json:"status"`
	Author       string             `bson:"author,omitempty" json:"author,omitempty"`
	Category     primitive.ObjectID `bson:"category" json:"category"`
	MainCategory primitive.ObjectID `bson:"main_category" json:"mainCategory"`
	Tags         []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	SEO          BlogSEO            `bson:"seo,omitempty" json:"seo,omitempty"`
	PublishedAt  *time.Time         `bson:"published_at,omitempty" json:"publishedAt,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

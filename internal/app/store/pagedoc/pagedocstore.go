// Package pagedocstore persists the keyed singleton page documents: one
// document per page type in the page_documents collection.
package pagedocstore

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
	return &Store{c: db.Collection("page_documents")}
}

// Get returns the document for pageType, or (nil, nil) when none has been
// saved yet. Callers shape an empty shell from the page schema in that case.
func (s *Store) Get(ctx context.Context, pageType string) (*models.PageDocument, error) {
	var doc models.PageDocument
	err := s.c.FindOne(ctx, bson.M{"page_type": pageType}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	normalize(&doc)
	return &doc, nil
}

// Replace upserts the full document for pageType, stamping updated_at. The
// merge layer works on whole documents, so last write wins by design of the
// single-editor admin UI.
func (s *Store) Replace(ctx context.Context, pageType string, sections map[string]any) (*models.PageDocument, error) {
	now := time.Now()
	var doc models.PageDocument
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"page_type": pageType},
		bson.M{
			"$set": bson.M{
				"sections":   sections,
				"updated_at": now,
			},
			"$setOnInsert": bson.M{
				"_id":        primitive.NewObjectID(),
				"page_type":  pageType,
				"created_at": now,
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, err
	}
	normalize(&doc)
	return &doc, nil
}

// DeleteSectionKey unsets one key of a keyed-map section (team removal) and
// returns the updated document, or (nil, nil) when the page has never been
// saved.
func (s *Store) DeleteSectionKey(ctx context.Context, pageType, section, key string) (*models.PageDocument, error) {
	var doc models.PageDocument
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"page_type": pageType},
		bson.M{
			"$unset": bson.M{"sections." + section + "." + key: ""},
			"$set":   bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	normalize(&doc)
	return &doc, nil
}

// normalize converts the bson decode shapes (primitive.M/A/D) inside
// Sections into plain maps and slices so the merge layer and JSON encoding
// see ordinary values.
func normalize(doc *models.PageDocument) {
	if doc.Sections == nil {
		doc.Sections = map[string]any{}
		return
	}
	doc.Sections = plain(doc.Sections).(map[string]any)
}

func plain(v any) any {
	switch t := v.(type) {
	case primitive.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = plain(e.Value)
		}
		return m
	case primitive.M:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = plain(val)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = plain(val)
		}
		return m
	case primitive.A:
		l := make([]any, len(t))
		for i, val := range t {
			l[i] = plain(val)
		}
		return l
	case []any:
		l := make([]any, len(t))
		for i, val := range t {
			l[i] = plain(val)
		}
		return l
	default:
		return v
	}
}

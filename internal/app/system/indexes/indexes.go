// Package indexes ensures the MongoDB indexes the CMS relies on.
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureRoles(ctx, db); err != nil {
		problems = append(problems, "roles: "+err.Error())
	}
	if err := ensurePageDocuments(ctx, db); err != nil {
		problems = append(problems, "page_documents: "+err.Error())
	}
	if err := ensureCategories(ctx, db); err != nil {
		problems = append(problems, "categories: "+err.Error())
	}
	if err := ensureMainCategories(ctx, db); err != nil {
		problems = append(problems, "main_categories: "+err.Error())
	}
	if err := ensureMachineCategories(ctx, db); err != nil {
		problems = append(problems, "machine_categories: "+err.Error())
	}
	if err := ensureMachinePages(ctx, db); err != nil {
		problems = append(problems, "machine_pages: "+err.Error())
	}
	if err := ensureBlogs(ctx, db); err != nil {
		problems = append(problems, "blogs: "+err.Error())
	}
	if err := ensureContactEntries(ctx, db); err != nil {
		problems = append(problems, "contact_entries: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var name string
		if m.Options != nil && m.Options.Name != nil {
			name = *m.Options.Name
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isOptionsConflictErr(err) {
				// An older index with the same keys exists under different
				// options. Drop by name and recreate.
				if _, dropErr := coll.Indexes().DropOne(ctx, name); dropErr == nil {
					if _, err = coll.Indexes().CreateOne(ctx, m); err == nil {
						zap.L().Info("index dropped and recreated",
							zap.String("collection", coll.Name()),
							zap.String("name", name))
						continue
					}
				}
			}
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", name),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			continue
		}

		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", name))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                             */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("uniq_users_employee_id"),
		},
		// Role-in-use checks and user lists by role
		{
			Keys:    bson.D{{Key: "role_id", Value: 1}},
			Options: options.Index().SetName("idx_users_role_id"),
		},
	})
}

func ensureRoles(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("roles")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_roles_name"),
		},
	})
}

func ensurePageDocuments(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("page_documents")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One document per page type (keyed singleton)
		{
			Keys:    bson.D{{Key: "page_type", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_pagedocs_page_type"),
		},
	})
}

func ensureCategories(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("categories")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_categories_slug"),
		},
	})
}

func ensureMainCategories(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("main_categories")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_maincategories_slug"),
		},
	})
}

func ensureMachineCategories(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("machine_categories")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_machinecategories_slug"),
		},
		{
			Keys:    bson.D{{Key: "main_category", Value: 1}},
			Options: options.Index().SetName("idx_machinecategories_main"),
		},
	})
}

func ensureMachinePages(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("machine_pages")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_machinepages_slug"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_machinepages_category"),
		},
	})
}

func ensureBlogs(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("blogs")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_blogs_slug"),
		},
		// Public listing: published posts, newest first
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "published_at", Value: -1},
			},
			Options: options.Index().SetName("idx_blogs_status_published"),
		},
		// Cascade reassignment on category delete
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_blogs_category"),
		},
		{
			Keys:    bson.D{{Key: "main_category", Value: 1}},
			Options: options.Index().SetName("idx_blogs_main_category"),
		},
	})
}

func ensureContactEntries(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("contact_entries")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Enquiry inbox, newest first
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_contactentries_created"),
		},
	})
}

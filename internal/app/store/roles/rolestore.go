// Package rolestore persists roles and their permission maps.
package rolestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/normalize"
	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
)

var (
	// ErrDuplicateName is returned when a role with the same name exists.
	ErrDuplicateName = errors.New("A role with this name already exists")
	// ErrSuperAdmin is returned on attempts to modify or delete the Super
	// Admin role.
	ErrSuperAdmin = errors.New("The Super Admin role cannot be modified")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("roles")}
}

// GetByID loads a role by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Role, error) {
	var r models.Role
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetByName looks up a role by exact name.
func (s *Store) GetByName(ctx context.Context, name string) (*models.Role, error) {
	var r models.Role
	if err := s.c.FindOne(ctx, bson.M{"name": normalize.Name(name)}).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns all roles, Super Admin first then by name.
func (s *Store) List(ctx context.Context) ([]models.Role, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var roles []models.Role
	if err := cur.All(ctx, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// Create inserts a new role. Creating another role named "Super Admin" is
// rejected; the sentinel exists once, created by seeding.
func (s *Store) Create(ctx context.Context, r models.Role) (models.Role, error) {
	r.ID = primitive.NewObjectID()
	r.Name = normalize.Name(r.Name)
	if r.Name == models.SuperAdminRoleName {
		return models.Role{}, ErrSuperAdmin
	}
	if r.Permission == nil {
		r.Permission = map[string][]string{}
	}
	if r.Status == "" {
		r.Status = models.StatusActive
	}

	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Role{}, ErrDuplicateName
		}
		return models.Role{}, err
	}
	return r, nil
}

// Update replaces a role's name, description, permissions, and status. The
// Super Admin role is immutable.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, r models.Role) (*models.Role, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.IsSuperAdmin() {
		return nil, ErrSuperAdmin
	}

	r.Name = normalize.Name(r.Name)
	if r.Name == models.SuperAdminRoleName {
		return nil, ErrSuperAdmin
	}
	if r.Permission == nil {
		r.Permission = map[string][]string{}
	}

	set := bson.M{
		"name":        r.Name,
		"description": r.Description,
		"permission":  r.Permission,
		"updated_at":  time.Now(),
	}
	if r.Status != "" {
		set["status"] = normalize.Status(r.Status)
	}

	var updated models.Role
	err = s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return &updated, nil
}

// Delete removes a role by ID. The Super Admin role cannot be deleted; the
// caller is responsible for checking the role is not referenced by users.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, err
	}
	if existing.IsSuperAdmin() {
		return 0, ErrSuperAdmin
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureSuperAdmin creates the Super Admin role if it does not exist and
// returns it. Called from seeding.
func (s *Store) EnsureSuperAdmin(ctx context.Context) (*models.Role, error) {
	var r models.Role
	err := s.c.FindOne(ctx, bson.M{"name": models.SuperAdminRoleName}).Decode(&r)
	if err == nil {
		return &r, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	now := time.Now()
	r = models.Role{
		ID:          primitive.NewObjectID(),
		Name:        models.SuperAdminRoleName,
		Description: "Full access to every resource",
		Permission:  map[string][]string{},
		Status:      models.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			// Lost a race with another instance; read theirs.
			if ferr := s.c.FindOne(ctx, bson.M{"name": models.SuperAdminRoleName}).Decode(&r); ferr == nil {
				return &r, nil
			}
		}
		return nil, err
	}
	return &r, nil
}

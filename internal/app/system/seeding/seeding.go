// Package seeding creates the records the CMS cannot run without: the Super
// Admin role, the optional seed admin account, and the Common blog category.
package seeding

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Foragefoxoffice/Cotco-backend/internal/app/store/categories"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/store/roles"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/store/users"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/authutil"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/normalize"
	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
)

// Admin describes the seed administrator account, taken from config. Empty
// email means no admin is seeded.
type Admin struct {
	Email    string
	Password string
}

// SeedAll seeds default data if not already present.
func SeedAll(ctx context.Context, db *mongo.Database, admin Admin, logger *zap.Logger) error {
	superAdmin, err := seedSuperAdminRole(ctx, db, logger)
	if err != nil {
		return err
	}
	if err := seedAdminUser(ctx, db, superAdmin, admin, logger); err != nil {
		return err
	}
	return seedCommonCategory(ctx, db, logger)
}

func seedSuperAdminRole(ctx context.Context, db *mongo.Database, logger *zap.Logger) (*models.Role, error) {
	role, err := rolestore.New(db).EnsureSuperAdmin(ctx)
	if err != nil {
		logger.Error("failed to seed Super Admin role", zap.Error(err))
		return nil, err
	}
	logger.Info("Super Admin role present", zap.String("role_id", role.ID.Hex()))
	return role, nil
}

func seedAdminUser(ctx context.Context, db *mongo.Database, superAdmin *models.Role, admin Admin, logger *zap.Logger) error {
	if admin.Email == "" || admin.Password == "" {
		return nil
	}

	store := userstore.New(db)
	if _, err := store.GetByEmail(ctx, admin.Email); err == nil {
		return nil // already seeded
	} else if err != mongo.ErrNoDocuments {
		return err
	}

	hash, err := authutil.HashPassword(admin.Password)
	if err != nil {
		return err
	}

	_, err = store.Create(ctx, models.User{
		FirstName:    models.Lang{EN: "Admin"},
		LastName:     models.Lang{EN: "User"},
		Email:        normalize.Email(admin.Email),
		PasswordHash: hash,
		RoleID:       superAdmin.ID,
		Status:       models.StatusActive,
		IsVerified:   true,
	})
	if err != nil {
		logger.Error("failed to seed admin user",
			zap.String("email", admin.Email),
			zap.Error(err))
		return err
	}
	logger.Info("seeded admin user", zap.String("email", admin.Email))
	return nil
}

func seedCommonCategory(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	cat, err := categorystore.New(db).EnsureCommon(ctx)
	if err != nil {
		logger.Error("failed to seed Common category", zap.Error(err))
		return err
	}
	logger.Info("Common category present", zap.String("slug", cat.Slug))
	return nil
}

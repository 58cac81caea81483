package userstore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Foragefoxoffice/Cotco-backend/internal/app/store/roles"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/auth"
	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
)

// Fetcher resolves verified token claims into a live principal. It
// implements auth.Principals for the Protect middleware.
type Fetcher struct {
	Users *Store
	Roles *rolestore.Store
}

// Principal loads the user and role behind a token, rejecting tokens for
// deleted or deactivated accounts.
func (f *Fetcher) Principal(ctx context.Context, userID, roleID primitive.ObjectID) (*auth.Principal, error) {
	u, err := f.Users.GetByID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("user no longer exists")
		}
		return nil, err
	}
	if u.Status != models.StatusActive {
		return nil, errors.New("user is inactive")
	}

	// The role in the token may have been swapped since issuance; trust the
	// user record over the claim.
	if u.RoleID != primitive.NilObjectID {
		roleID = u.RoleID
	}
	role, err := f.Roles.GetByID(ctx, roleID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("role no longer exists")
		}
		return nil, err
	}

	return &auth.Principal{User: u, Role: role}, nil
}
